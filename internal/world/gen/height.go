package gen

import (
	"log/slog"
	"math"
)

// Channel names for the terrain noise fields.
const (
	chanTerrainBase   = "terrain/base"
	chanTerrainDetail = "terrain/detail"
)

// detailWeight is the contribution of the detail octave relative to the
// base octave before normalization.
const detailWeight = 0.35

// HeightProfile derives the surface height of a world column from a
// low-frequency base octave and a higher-frequency, lower-amplitude
// detail octave. Pure function of x for a fixed seed: safe to call from
// any subsystem in any order.
type HeightProfile struct {
	base     Source
	detail   Source
	min, max int
}

// NewHeightProfile builds a profile whose surfaces fall inside
// [minSurface, maxSurface]. A nil fields factory degrades to fallback
// noise with a single warning.
func NewHeightProfile(fields *Fields, minSurface, maxSurface int, log *slog.Logger) *HeightProfile {
	var warned bool
	return &HeightProfile{
		base:   FieldOr(fields, chanTerrainBase, 1.0/96, log, &warned),
		detail: FieldOr(fields, chanTerrainDetail, 1.0/24, log, &warned),
		min:    minSurface,
		max:    maxSurface,
	}
}

// SurfaceAt returns the un-bucketed surface height at world column x,
// before any biome modification.
func (p *HeightProfile) SurfaceAt(x int) float64 {
	fx := float64(x)
	v := (p.base.At(fx, 0) + p.detail.At(fx, 0)*detailWeight) / (1 + detailWeight)
	return float64(p.min) + (v+1)/2*float64(p.max-p.min)
}

// HeightAt returns the integer surface height at world column x.
func (p *HeightProfile) HeightAt(x int) int {
	return int(math.Floor(p.SurfaceAt(x)))
}

// Bounds returns the vertical surface bounds the profile scales into.
func (p *HeightProfile) Bounds() (minSurface, maxSurface int) {
	return p.min, p.max
}
