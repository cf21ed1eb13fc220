package gen

import (
	"hash/fnv"
	"log/slog"
)

// SeedFromString hashes a world-seed string to the master seed. The
// session keeps the string immutable, so the hash is stable for its
// lifetime.
func SeedFromString(seed string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum64())
}

// Source is any deterministic noise function of position. *Field
// implements it; consumers that lose their factory fall back to a
// hash-based source so generation can proceed.
type Source interface {
	At(x, y float64) float64
}

// Fields hands out noise channels derived from one master seed. A nil
// *Fields is tolerated by every consumer: they log a single warning and
// degrade to fallback noise (see FieldOr).
type Fields struct {
	seed int64
}

// NewFields creates a channel factory for the master seed.
func NewFields(seed int64) *Fields {
	return &Fields{seed: seed}
}

// Seed returns the master seed.
func (f *Fields) Seed() int64 { return f.seed }

// Field returns the noise field for a channel at the given frequency.
// Fields are cheap enough to derive on demand; each call builds the same
// permutation table for the same channel.
func (f *Fields) Field(channel string, frequency float64) *Field {
	return NewField(f.seed, channel, frequency)
}

// FieldOr returns the channel's field, or a deterministic fallback when
// the factory is missing. The first degradation per warned-flag is
// logged; generation proceeds either way.
func FieldOr(f *Fields, channel string, frequency float64, log *slog.Logger, warned *bool) Source {
	if f != nil {
		return f.Field(channel, frequency)
	}
	if !*warned {
		*warned = true
		log.Warn("noise factory missing, using fallback noise", "channel", channel)
	}
	return fallbackField{seed: ChannelSeed(0, channel), freq: frequency}
}

// fallbackField is a value-noise stand-in used when no factory was
// injected. Coarser than simplex but deterministic, so degraded worlds
// stay reproducible.
type fallbackField struct {
	seed int64
	freq float64
}

func (f fallbackField) At(x, y float64) float64 {
	xi := fastFloor(x * f.freq)
	yi := fastFloor(y * f.freq)
	return hashUnit(f.seed, xi, yi)
}

// hashUnit maps an integer lattice point to [-1, 1].
func hashUnit(seed int64, x, y int) float64 {
	h := uint64(seed) ^ uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return float64(h%2000001)/1000000.0 - 1.0
}
