package core

import "github.com/chewxy/math32"

// SamplerState is the entire state of the per-invocation random stream: a
// single 32-bit word, seeded per pixel per frame and advanced by every draw.
// It is threaded through calls by pointer and never shared between
// invocations, which keeps every pixel's sequence reproducible.
type SamplerState uint32

// NewSamplerState seeds a sampler from a pixel index and frame counter.
// The frame multiplier decorrelates consecutive frames of the same pixel.
func NewSamplerState(pixelIndex, frame uint32) SamplerState {
	return SamplerState(pixelIndex + frame*745621)
}

// NextUniform advances the state and returns a uniform value in [0, 1).
// The step is a PCG-style multiply/xorshift hash; for a given seed the
// sequence is bit-reproducible.
//
// Only the top 24 bits of the hash word feed the mantissa. Converting the
// full 32-bit word and dividing would round words near 2^32 up to exactly
// 1.0 (the float32 ulp there is 512), and a 1.0 draw turns NextNormal's
// Log(1-u) into -Inf, which ends up as a NaN bounce direction that the
// accumulation blend can never wash out of a texel.
func NextUniform(state *SamplerState) float32 {
	s := uint32(*state)*747796405 + 2891336453
	*state = SamplerState(s)
	word := ((s >> ((s >> 28) + 4)) ^ s) * 277803737
	word = (word >> 22) ^ word
	return float32(word>>8) * (1.0 / 16777216.0)
}

// NextNormal returns a standard-normal value via the Box-Muller transform,
// consuming two uniform draws.
func NextNormal(state *SamplerState) float32 {
	theta := 2 * math32.Pi * NextUniform(state)
	rho := math32.Sqrt(-2 * math32.Log(1-NextUniform(state)))
	return rho * math32.Cos(theta)
}

// UnitDirection returns an approximately uniform direction on the unit
// sphere from three independent normal draws.
func UnitDirection(state *SamplerState) Vec3 {
	return Vec3{
		X: NextNormal(state),
		Y: NextNormal(state),
		Z: NextNormal(state),
	}.Normalize()
}

// HemisphereDirection returns a unit direction in the hemisphere around
// normal, by flipping a sphere sample that lands on the far side.
//
// The integrator's bounce step deliberately does not use this helper: it
// perturbs the normal with an unclamped sphere sample instead (see
// integrator.Trace).
func HemisphereDirection(normal Vec3, state *SamplerState) Vec3 {
	dir := UnitDirection(state)
	if dir.Dot(normal) < 0 {
		return dir.Negate()
	}
	return dir
}
