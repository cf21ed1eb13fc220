package world

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dan-garden/2dcraft-sub000/internal/world/gen"
	"github.com/dan-garden/2dcraft-sub000/pkg/content"
)

// Options configures a World. Zero values are filled from the defaults
// below.
type Options struct {
	Seed            string
	ChunkSize       int
	MinSurface      int
	MaxSurface      int
	TransitionWidth int
	ViewWidth       float64
	ViewHeight      float64
	Margin          int
	QueueBudget     int
}

const (
	defaultChunkSize   = 16
	defaultMinSurface  = 48
	defaultMaxSurface  = 80
	defaultTransition  = 8
	defaultViewWidth   = 60
	defaultViewHeight  = 34
	defaultMargin      = 2
	defaultQueueBudget = 2
)

func (o *Options) fill() {
	if o.ChunkSize == 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.MinSurface == 0 {
		o.MinSurface = defaultMinSurface
	}
	if o.MaxSurface == 0 {
		o.MaxSurface = defaultMaxSurface
	}
	if o.TransitionWidth == 0 {
		o.TransitionWidth = defaultTransition
	}
	if o.ViewWidth == 0 {
		o.ViewWidth = defaultViewWidth
	}
	if o.ViewHeight == 0 {
		o.ViewHeight = defaultViewHeight
	}
	if o.Margin == 0 {
		o.Margin = defaultMargin
	}
	if o.QueueBudget == 0 {
		o.QueueBudget = defaultQueueBudget
	}
}

// World ties the generation pipeline and the streaming manager together
// and layers player edits on top of generated terrain. Reads may come
// from any goroutine; writes go through the mutex.
type World struct {
	log   *slog.Logger
	table *content.Table
	opts  Options

	classifier *gen.Classifier
	factory    *gen.Factory
	manager    *Manager

	mu        sync.RWMutex
	overrides map[BlockPos]content.BlockID

	queueBudget int
}

// New builds a world from frozen content and options. The seed string
// is hashed, so any human-readable seed works.
func New(table *content.Table, opts Options, log *slog.Logger) (*World, error) {
	opts.fill()

	fields := gen.NewFields(gen.SeedFromString(opts.Seed))
	profile := gen.NewHeightProfile(fields, opts.MinSurface, opts.MaxSurface, log)
	classifier, err := gen.NewClassifier(table, fields, opts.ChunkSize, float64(opts.TransitionWidth), log)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	index := gen.NewSpatialIndex(table, fields, log)
	factory := gen.NewFactory(profile, classifier, index, opts.ChunkSize)

	w := &World{
		log:         log,
		table:       table,
		opts:        opts,
		classifier:  classifier,
		factory:     factory,
		manager:     NewManager(factory, opts.ViewWidth, opts.ViewHeight, opts.Margin, log),
		overrides:   make(map[BlockPos]content.BlockID),
		queueBudget: opts.QueueBudget,
	}
	return w, nil
}

// Content returns the frozen content table the world was built with.
func (w *World) Content() *content.Table { return w.table }

// Seed returns the seed string the world was created from.
func (w *World) Seed() string { return w.opts.Seed }

// Manager exposes the streaming manager for the frame loop.
func (w *World) Manager() *Manager { return w.manager }

// BlockAt returns the block at a world position. Player edits shadow
// generated terrain; chunks are generated on demand.
func (w *World) BlockAt(x, y int) content.BlockID {
	w.mu.RLock()
	id, ok := w.overrides[BlockPos{x, y}]
	w.mu.RUnlock()
	if ok {
		return id
	}
	return w.generatedAt(x, y)
}

// generatedAt reads pristine terrain, forcing generation if needed.
func (w *World) generatedAt(x, y int) content.BlockID {
	size := w.opts.ChunkSize
	ch := w.manager.Chunk(gen.FloorDiv(x, size), gen.FloorDiv(y, size))
	return ch.Data.Get(gen.Mod(x, size), gen.Mod(y, size))
}

// SetBlock records a player edit. Setting a position back to its
// generated value removes the override instead of storing a redundant
// one, so ModifiedBlocks stays a minimal diff.
func (w *World) SetBlock(x, y int, id content.BlockID) {
	pos := BlockPos{x, y}
	generated := w.generatedAt(x, y)

	w.mu.Lock()
	defer w.mu.Unlock()
	if id == generated {
		delete(w.overrides, pos)
		return
	}
	w.overrides[pos] = id
}

// BreakBlock removes the block at a position, clearing any break
// progress tracked for it.
func (w *World) BreakBlock(x, y int) {
	w.SetBlock(x, y, content.Air)
	size := w.opts.ChunkSize
	if ch := w.manager.Loaded(gen.FloorDiv(x, size), gen.FloorDiv(y, size)); ch != nil {
		ch.clearCellState(gen.Mod(x, size), gen.Mod(y, size))
	}
}

// AdvanceBreak applies dt seconds of breaking effort to the block at a
// position and reports whether it broke. Unbreakable blocks and air
// report false without accumulating progress.
func (w *World) AdvanceBreak(x, y int, dt float64) bool {
	id := w.BlockAt(x, y)
	b := w.table.Block(id)
	if !b.Breakable() {
		return false
	}

	size := w.opts.ChunkSize
	ch := w.manager.Chunk(gen.FloorDiv(x, size), gen.FloorDiv(y, size))
	cs := ch.cellState(gen.Mod(x, size), gen.Mod(y, size))
	cs.BreakProgress += dt / b.BreakTime
	if cs.BreakProgress < 1 {
		return false
	}
	w.BreakBlock(x, y)
	return true
}

// BreakProgress returns the accumulated break fraction at a position,
// zero when untouched.
func (w *World) BreakProgress(x, y int) float64 {
	size := w.opts.ChunkSize
	ch := w.manager.Loaded(gen.FloorDiv(x, size), gen.FloorDiv(y, size))
	if ch == nil {
		return 0
	}
	if cs, ok := ch.cells[gen.Mod(y, size)*size+gen.Mod(x, size)]; ok {
		return cs.BreakProgress
	}
	return 0
}

// ModifiedBlocks snapshots the player-edit diff over pristine terrain.
func (w *World) ModifiedBlocks() map[BlockPos]content.BlockID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[BlockPos]content.BlockID, len(w.overrides))
	for pos, id := range w.overrides {
		out[pos] = id
	}
	return out
}

// HeightAt returns the integer surface height of a column, biome
// blending included.
func (w *World) HeightAt(x int) int {
	return w.factory.SurfaceHeightAt(x)
}

// BiomeAt returns the biome owning a world position.
func (w *World) BiomeAt(x, y int) *content.Biome {
	return w.classifier.BiomeAt(x, y)
}

// Chunks lists the streaming state of every referenced chunk.
func (w *World) Chunks() []Descriptor {
	return w.manager.Descriptors()
}

// Step runs one frame of streaming upkeep: direction classification,
// visibility update, and a bounded slice of queued generation work.
func (w *World) Step(camX, camY, vx, vy float64) {
	w.manager.UpdatePlayerDirection(camX, camY, vx, vy)
	w.manager.UpdateVisibleChunks(camX, camY)
	w.manager.ProcessChunkQueue(w.queueBudget)
}

// Spawn force-loads terrain around a position and returns a standing
// spot on the surface there.
func (w *World) Spawn(x float64, radius int) (float64, float64) {
	h := w.HeightAt(int(x))
	y := float64(h + 1)
	w.manager.ForceLoadChunksAroundPosition(x, y, radius)
	return x, y
}
