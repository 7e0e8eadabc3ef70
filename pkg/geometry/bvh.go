package geometry

import (
	"github.com/arvhn/go-tracekernel/pkg/core"
)

// NoIndex marks an unused leaf-primitive slot or child link in a flat BVH
// node buffer.
const NoIndex int32 = -1

// LeafSize is the maximum number of primitive indices a leaf node holds.
const LeafSize = 2

// BVHNode is one node of a flattened bounding-volume hierarchy. Node 0 is
// always the root. A node is a leaf iff both child indices are NoIndex; a
// leaf stores up to LeafSize triangle indices, terminated early by NoIndex.
type BVHNode struct {
	Leaves [LeafSize]int32
	Min    core.Vec3
	Max    core.Vec3
	ChildA int32
	ChildB int32
}

// IsLeaf reports whether the node stores primitives rather than children.
func (n BVHNode) IsLeaf() bool {
	return n.ChildA == NoIndex && n.ChildB == NoIndex
}

// Bounds returns the node's box as an AABB.
func (n BVHNode) Bounds() core.AABB {
	return core.NewAABB(n.Min, n.Max)
}

// Traverse walks the node buffer iteratively, depth first, testing the ray
// against every leaf triangle it reaches and tightening best as it goes.
// Children are pushed in index order; there is no near/far ordering
// heuristic. Within a leaf, testing stops at the first accepted closer hit
// rather than also trying the remaining slot.
//
// dropped counts pushes that would have overflowed the fixed-capacity stack.
// A non-zero count means whole subtrees went unvisited and the returned best
// hit may be wrong; callers decide whether to surface that. Trees built with
// scene.BuildBVH stay within the bound and always traverse with dropped == 0.
func Traverse(ray core.Ray, nodes []BVHNode, triangles []Triangle, best *core.HitInfo) (dropped int) {
	if len(nodes) == 0 {
		return 0
	}

	var stack Stack
	stack.Push(0)

	for {
		index, ok := stack.Pop()
		if !ok {
			return dropped
		}
		node := nodes[index]

		if !node.Bounds().Hit(ray) {
			continue
		}

		if node.IsLeaf() {
			for _, leaf := range node.Leaves {
				if leaf == NoIndex {
					break
				}
				info := triangles[leaf].Hit(ray)
				if info.Hit && best.Closer(info.Distance) {
					*best = info
					break
				}
			}
			continue
		}

		if !stack.Push(node.ChildA) {
			dropped++
		}
		if !stack.Push(node.ChildB) {
			dropped++
		}
	}
}
