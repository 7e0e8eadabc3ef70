package geometry

import (
	"github.com/arvhn/go-tracekernel/pkg/core"
)

// determinantEpsilon rejects near-edge-on triangles and, because the test
// requires a positive determinant, culls back faces. Meshes are assumed to
// have consistent winding.
const determinantEpsilon = 1e-6

// Triangle is a mesh triangle with per-vertex normals and a precomputed
// centroid. The centroid is not used by the intersection test itself; the
// BVH builder partitions on it.
type Triangle struct {
	A, B, C    core.Vec3
	NA, NB, NC core.Vec3
	Centroid   core.Vec3
	Material   core.Material
}

// NewTriangle creates a triangle with flat shading (all vertex normals equal
// to the geometric normal) and a precomputed centroid.
func NewTriangle(a, b, c core.Vec3, material core.Material) Triangle {
	n := b.Subtract(a).Cross(c.Subtract(a)).Normalize()
	return NewTriangleWithNormals(a, b, c, n, n, n, material)
}

// NewTriangleWithNormals creates a triangle with explicit per-vertex normals.
func NewTriangleWithNormals(a, b, c, na, nb, nc core.Vec3, material core.Material) Triangle {
	return Triangle{
		A: a, B: b, C: c,
		NA: na, NB: nb, NC: nc,
		Centroid: a.Add(b).Add(c).Divide(3),
		Material: material,
	}
}

// Hit runs the Cramer's-rule form of the Moeller-Trumbore test. The shading
// normal is the barycentric blend of the vertex normals with weights
// (w, u, v) paired to vertices (A, B, C); that pairing must not be
// transposed or interpolated normals come out subtly wrong.
func (t Triangle) Hit(ray core.Ray) core.HitInfo {
	info := core.NewHitInfo()

	edgeAB := t.B.Subtract(t.A)
	edgeAC := t.C.Subtract(t.A)
	normal := edgeAB.Cross(edgeAC)
	ao := ray.Origin.Subtract(t.A)
	dao := ao.Cross(ray.Direction)

	determinant := -ray.Direction.Dot(normal)
	if determinant < determinantEpsilon {
		return info
	}
	invDet := 1 / determinant

	dst := ao.Dot(normal) * invDet
	u := edgeAC.Dot(dao) * invDet
	v := -edgeAB.Dot(dao) * invDet
	w := 1 - u - v

	if dst < 0 || u < 0 || v < 0 || w < 0 {
		return info
	}

	info.Hit = true
	info.Distance = dst
	info.Point = ray.At(dst)
	info.Normal = t.NA.Multiply(w).Add(t.NB.Multiply(u)).Add(t.NC.Multiply(v)).Normalize()
	info.Material = t.Material
	return info
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.A, t.B, t.C)
}
