package core

// AABB is an axis-aligned bounding box defined by per-axis min/max corners.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	minP := points[0]
	maxP := points[0]
	for _, p := range points[1:] {
		minP.X = min(minP.X, p.X)
		minP.Y = min(minP.Y, p.Y)
		minP.Z = min(minP.Z, p.Z)

		maxP.X = max(maxP.X, p.X)
		maxP.Y = max(maxP.Y, p.Y)
		maxP.Z = max(maxP.Z, p.Z)
	}
	return AABB{Min: minP, Max: maxP}
}

// Hit tests the ray against the box with the branchless slab method.
// Per-axis entry/exit parameters come from (min-origin)/dir and
// (max-origin)/dir; the hit condition is a non-empty interval whose far
// bound is in front of the origin.
//
// Axis-parallel rays divide by zero here on purpose: IEEE signed infinities
// make the slab comparisons come out right, so the zero components must not
// be special-cased.
func (b AABB) Hit(ray Ray) bool {
	tx1 := (b.Min.X - ray.Origin.X) / ray.Direction.X
	tx2 := (b.Max.X - ray.Origin.X) / ray.Direction.X
	ty1 := (b.Min.Y - ray.Origin.Y) / ray.Direction.Y
	ty2 := (b.Max.Y - ray.Origin.Y) / ray.Direction.Y
	tz1 := (b.Min.Z - ray.Origin.Z) / ray.Direction.Z
	tz2 := (b.Max.Z - ray.Origin.Z) / ray.Direction.Z

	tNear := max(max(min(tx1, tx2), min(ty1, ty2)), min(tz1, tz2))
	tFar := min(min(max(tx1, tx2), max(ty1, ty2)), max(tz1, tz2))

	return tNear <= tFar && tFar >= 0
}

// Union returns an AABB that bounds both this AABB and another
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: min(b.Min.X, other.Min.X),
			Y: min(b.Min.Y, other.Min.Y),
			Z: min(b.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: max(b.Max.X, other.Max.X),
			Y: max(b.Max.Y, other.Max.Y),
			Z: max(b.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if min <= max on all axes
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}
