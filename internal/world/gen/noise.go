package gen

import "hash/fnv"

// Simplex noise after Ken Perlin's reference algorithm. Every Field owns
// a permutation table derived once from (seed, channel) and never
// mutated afterwards, so samples depend only on the inputs.

// grad2 are gradient vectors for 2D simplex noise.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Field is a deterministic continuous noise function of position,
// yielding values in [-1, 1].
type Field struct {
	perm [512]int
	freq float64
}

// NewField derives a noise field from the master seed, a channel name,
// and a sampling frequency. Distinct channels get independent
// permutation tables from the same seed.
func NewField(seed int64, channel string, frequency float64) *Field {
	f := &Field{freq: frequency}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates shuffle driven by an LCG over the channel seed.
	s := ChannelSeed(seed, channel)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		f.perm[i] = p[i&255]
	}
	return f
}

// ChannelSeed folds a channel name into the master seed.
func ChannelSeed(seed int64, channel string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(channel))
	return seed ^ int64(h.Sum64())
}

// At returns the noise value at (x, y), scaled by the field's frequency.
func (f *Field) At(x, y float64) float64 {
	return f.raw(x*f.freq, y*f.freq)
}

func (f *Field) raw(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	// Skew input space to determine the simplex cell.
	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := f.perm[ii+f.perm[jj]] & 7
	gi1 := f.perm[ii+i1+f.perm[jj+j1]] & 7
	gi2 := f.perm[ii+1+f.perm[jj+1]] & 7

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot2(grad2[gi0], x0, y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot2(grad2[gi1], x1, y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot2(grad2[gi2], x2, y2)
	}

	return 70.0 * (n0 + n1 + n2)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func dot2(g [2]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}
