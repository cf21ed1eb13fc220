package world

import (
	"log/slog"
	"math"

	"github.com/dan-garden/2dcraft-sub000/internal/world/gen"
)

// Direction is the dominant travel axis of the viewpoint.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// offset returns the chunk-coordinate unit step of the direction.
func (d Direction) offset() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// lookAhead is how many chunks ahead of travel the prioritized 3×3 block
// is centered.
const lookAhead = 2

// dirEpsilon is the speed below which movement counts as standing still.
const dirEpsilon = 0.01

// Manager owns the set of loaded chunks, the generation queue, and the
// visible set, and prioritizes generation ahead of travel. All methods
// run on the single per-frame update path; there is exactly one writer.
type Manager struct {
	log       *slog.Logger
	generator Generator
	size      int

	// Viewport extent in blocks and the streaming margins in chunks.
	viewW, viewH float64
	margin       int

	chunks  map[ChunkPos]*Chunk
	queue   []ChunkPos
	queued  map[ChunkPos]struct{}
	visible map[ChunkPos]struct{}

	dir       Direction
	lastChunk ChunkPos
	hasLast   bool

	camX, camY float64
	hasCam     bool
}

// NewManager creates a streaming manager over the generator. viewW and
// viewH are the viewport extent in blocks; margin is the extra ring of
// chunks loaded around the viewport.
func NewManager(generator Generator, viewW, viewH float64, margin int, log *slog.Logger) *Manager {
	return &Manager{
		log:       log,
		generator: generator,
		size:      generator.Size(),
		viewW:     viewW,
		viewH:     viewH,
		margin:    margin,
		chunks:    make(map[ChunkPos]*Chunk),
		queued:    make(map[ChunkPos]struct{}),
		visible:   make(map[ChunkPos]struct{}),
	}
}

// QueueChunk enqueues a chunk coordinate for generation unless it is
// already generated or already queued.
func (m *Manager) QueueChunk(cx, cy int) {
	pos := ChunkPos{cx, cy}
	if ch, ok := m.chunks[pos]; ok && ch.generated {
		return
	}
	if _, ok := m.queued[pos]; ok {
		return
	}
	m.queue = append(m.queue, pos)
	m.queued[pos] = struct{}{}
}

// ProcessChunkQueue dequeues up to n pending coordinates and generates
// them, attaching each for rendering when it falls inside the current
// visibility bounds. Coordinates that turn out already generated are
// silently skipped.
func (m *Manager) ProcessChunkQueue(n int) {
	for i := 0; i < n && len(m.queue) > 0; i++ {
		pos := m.queue[0]
		m.queue = m.queue[1:]
		delete(m.queued, pos)

		ch := m.ensureChunk(pos)
		if ch.generated {
			continue
		}
		m.generate(ch)

		if m.hasCam {
			minC, maxC := m.viewRect(m.camX, m.camY)
			if inRect(pos, minC, maxC) {
				m.attach(ch)
			}
		}
	}
}

// UpdatePlayerDirection classifies the dominant movement axis and, on a
// chunk-boundary crossing, reprioritizes the queue toward travel.
func (m *Manager) UpdatePlayerDirection(x, y, vx, vy float64) {
	switch {
	case math.Abs(vx) < dirEpsilon && math.Abs(vy) < dirEpsilon:
		m.dir = DirNone
	case math.Abs(vx) >= math.Abs(vy):
		if vx > 0 {
			m.dir = DirRight
		} else {
			m.dir = DirLeft
		}
	default:
		if vy > 0 {
			m.dir = DirUp
		} else {
			m.dir = DirDown
		}
	}

	cur := ChunkPos{m.chunkCoord(x), m.chunkCoord(y)}
	if !m.hasLast || cur != m.lastChunk {
		m.hasLast = true
		m.lastChunk = cur
		m.prioritizeChunksInDirection(cur.X, cur.Y)
	}
}

// prioritizeChunksInDirection moves the 3×3 block of coordinates two
// chunks ahead of travel to the front of the queue. A look-ahead
// heuristic: the player keeps moving while those chunks generate.
func (m *Manager) prioritizeChunksInDirection(cx, cy int) {
	dx, dy := m.dir.offset()
	if dx == 0 && dy == 0 {
		return
	}

	ahead := make(map[ChunkPos]struct{}, 9)
	for ox := -1; ox <= 1; ox++ {
		for oy := -1; oy <= 1; oy++ {
			pos := ChunkPos{cx + dx*lookAhead + ox, cy + dy*lookAhead + oy}
			if ch, ok := m.chunks[pos]; ok && ch.generated {
				continue
			}
			ahead[pos] = struct{}{}
		}
	}
	if len(ahead) == 0 {
		return
	}

	// Splice matching queued coordinates to the front, keeping relative
	// order within both halves.
	front := make([]ChunkPos, 0, len(ahead))
	rest := make([]ChunkPos, 0, len(m.queue))
	for _, pos := range m.queue {
		if _, ok := ahead[pos]; ok {
			front = append(front, pos)
		} else {
			rest = append(rest, pos)
		}
	}
	if len(front) == 0 {
		return
	}
	m.queue = append(front, rest...)
	m.log.Debug("prioritized chunks ahead of travel",
		"direction", m.dir.String(), "count", len(front))
}

// UpdateVisibleChunks recomputes the visible set for a camera position:
// every coordinate in the viewport rectangle plus margin is queued or
// attached, and chunks further than one chunk beyond that range are
// detached. Detaching only drops render attachment; grids are kept.
func (m *Manager) UpdateVisibleChunks(camX, camY float64) {
	m.camX, m.camY = camX, camY
	m.hasCam = true

	minC, maxC := m.viewRect(camX, camY)

	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			pos := ChunkPos{cx, cy}
			ch, ok := m.chunks[pos]
			if !ok || !ch.generated {
				if _, queued := m.queued[pos]; !queued {
					m.QueueChunk(cx, cy)
				}
				continue
			}
			if !ch.visible {
				m.attach(ch)
			}
		}
	}

	// Hysteresis: chunks stay attached until they are more than one
	// chunk outside the loaded range.
	for pos := range m.visible {
		if pos.X < minC.X-1 || pos.X > maxC.X+1 || pos.Y < minC.Y-1 || pos.Y > maxC.Y+1 {
			m.detach(m.chunks[pos])
		}
	}
}

// ForceLoadChunksAroundPosition synchronously generates and attaches
// every chunk within radius chunks of a world position, bypassing the
// queue. Used once at spawn to avoid visible pop-in.
func (m *Manager) ForceLoadChunksAroundPosition(x, y float64, radius int) {
	cx := m.chunkCoord(x)
	cy := m.chunkCoord(y)
	for oy := -radius; oy <= radius; oy++ {
		for ox := -radius; ox <= radius; ox++ {
			ch := m.ensureChunk(ChunkPos{cx + ox, cy + oy})
			if !ch.generated {
				m.generate(ch)
			}
			m.attach(ch)
		}
	}
}

// Chunk returns the chunk at (cx, cy), generating it on demand. The
// returned chunk is always generated.
func (m *Manager) Chunk(cx, cy int) *Chunk {
	ch := m.ensureChunk(ChunkPos{cx, cy})
	if !ch.generated {
		m.generate(ch)
	}
	return ch
}

// Loaded returns the chunk at (cx, cy) without generating, or nil.
func (m *Manager) Loaded(cx, cy int) *Chunk {
	return m.chunks[ChunkPos{cx, cy}]
}

// Descriptors lists every referenced chunk's streaming state.
func (m *Manager) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(m.chunks))
	for _, ch := range m.chunks {
		out = append(out, Descriptor{Pos: ch.Pos, Generated: ch.generated, Visible: ch.visible})
	}
	return out
}

// QueueLen returns the number of pending generation requests.
func (m *Manager) QueueLen() int { return len(m.queue) }

// VisibleCount returns the number of chunks attached for rendering.
func (m *Manager) VisibleCount() int { return len(m.visible) }

// LoadedCount returns the number of chunks referenced so far.
func (m *Manager) LoadedCount() int { return len(m.chunks) }

// Direction returns the last classified travel direction.
func (m *Manager) Direction() Direction { return m.dir }

func (m *Manager) ensureChunk(pos ChunkPos) *Chunk {
	ch, ok := m.chunks[pos]
	if !ok {
		ch = newChunk(pos)
		m.chunks[pos] = ch
	}
	return ch
}

func (m *Manager) generate(ch *Chunk) {
	ch.Data = m.generator.Generate(ch.Pos.X, ch.Pos.Y)
	ch.generated = true
}

func (m *Manager) attach(ch *Chunk) {
	if !ch.generated {
		m.generate(ch)
	}
	if !ch.visible {
		ch.visible = true
		m.visible[ch.Pos] = struct{}{}
	}
}

func (m *Manager) detach(ch *Chunk) {
	if ch == nil {
		return
	}
	if ch.visible {
		ch.visible = false
		delete(m.visible, ch.Pos)
	}
}

// viewRect returns the inclusive chunk rectangle covering the viewport
// centered on the camera, expanded by the margin.
func (m *Manager) viewRect(camX, camY float64) (minC, maxC ChunkPos) {
	minC = ChunkPos{
		X: m.chunkCoord(camX-m.viewW/2) - m.margin,
		Y: m.chunkCoord(camY-m.viewH/2) - m.margin,
	}
	maxC = ChunkPos{
		X: m.chunkCoord(camX+m.viewW/2) + m.margin,
		Y: m.chunkCoord(camY+m.viewH/2) + m.margin,
	}
	return minC, maxC
}

func (m *Manager) chunkCoord(v float64) int {
	return gen.FloorDiv(int(math.Floor(v)), m.size)
}

func inRect(pos, minC, maxC ChunkPos) bool {
	return pos.X >= minC.X && pos.X <= maxC.X && pos.Y >= minC.Y && pos.Y <= maxC.Y
}
