// Package scene holds the read-only buffers one dispatch traces against and
// the nearest-hit query over them. The buffers follow the flat, index-based
// layout a GPU producer would upload: a fixed sphere set, a triangle buffer,
// and a flattened BVH node buffer whose root is node 0.
package scene

import (
	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/geometry"
)

// Scene is the immutable world for one dispatch. The host owns the buffers
// and must not mutate them while a dispatch is in flight.
type Scene struct {
	Spheres   []geometry.Sphere
	Triangles []geometry.Triangle
	Nodes     []geometry.BVHNode
}

// Query returns the nearest hit across the sphere set and the BVH-accelerated
// mesh, with strict closer-than-current-best semantics throughout. Spheres
// are few and fixed-count, so they are tested brute force; the mesh goes
// through bounded-stack traversal.
//
// dropped is the number of BVH stack pushes the traversal had to drop; see
// geometry.Traverse.
func (s *Scene) Query(ray core.Ray) (best core.HitInfo, dropped int) {
	best = core.NewHitInfo()

	for _, sphere := range s.Spheres {
		info := sphere.Hit(ray)
		if info.Hit && best.Closer(info.Distance) {
			best = info
		}
	}

	dropped = geometry.Traverse(ray, s.Nodes, s.Triangles, &best)
	return best, dropped
}
