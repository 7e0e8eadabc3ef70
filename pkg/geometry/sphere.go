package geometry

import (
	"github.com/chewxy/math32"

	"github.com/arvhn/go-tracekernel/pkg/core"
)

// Sphere is an implicit sphere primitive.
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, material core.Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: material}
}

// Hit solves the quadratic |origin + t*dir - center| = radius and returns the
// nearer intersection. Spheres fully behind the origin (negative near root)
// do not hit.
func (s Sphere) Hit(ray core.Ray) core.HitInfo {
	info := core.NewHitInfo()

	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return info
	}

	root := (-halfB - math32.Sqrt(discriminant)) / a
	if root < 0 {
		return info
	}

	info.Hit = true
	info.Distance = root
	info.Point = ray.At(root)
	info.Normal = info.Point.Subtract(s.Center).Normalize()
	info.Material = s.Material
	return info
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
