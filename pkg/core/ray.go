package core

import "github.com/chewxy/math32"

// Ray represents a ray with an origin and direction. Direction is expected to
// be unit-length before the ray is handed to an intersection test.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Material describes a flat surface response: diffuse albedo plus an emission
// term scaled by EmissionStrength.
type Material struct {
	Albedo           Vec3
	EmissionColor    Vec3
	EmissionStrength float32
}

// Emitted returns the radiance the material emits.
func (m Material) Emitted() Vec3 {
	return m.EmissionColor.Multiply(m.EmissionStrength)
}

// HitInfo is the result of an intersection test. Distance starts at +Inf as
// the "no closer hit yet" sentinel; comparisons against it are strict.
type HitInfo struct {
	Hit      bool
	Distance float32
	Point    Vec3
	Normal   Vec3
	Material Material
}

// NewHitInfo returns a miss with the +Inf distance sentinel.
func NewHitInfo() HitInfo {
	return HitInfo{Hit: false, Distance: math32.Inf(1)}
}

// Closer reports whether candidate distance t beats the current best hit.
func (h HitInfo) Closer(t float32) bool {
	return t < h.Distance
}
