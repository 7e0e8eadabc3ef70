package geometry

import (
	"testing"

	"github.com/arvhn/go-tracekernel/pkg/core"
)

func leafNode(bounds core.AABB, indices ...int32) BVHNode {
	node := BVHNode{
		Min:    bounds.Min,
		Max:    bounds.Max,
		ChildA: NoIndex,
		ChildB: NoIndex,
	}
	for i := range node.Leaves {
		if i < len(indices) {
			node.Leaves[i] = indices[i]
		} else {
			node.Leaves[i] = NoIndex
		}
	}
	return node
}

func internalNode(bounds core.AABB, childA, childB int32) BVHNode {
	return BVHNode{
		Leaves: [LeafSize]int32{NoIndex, NoIndex},
		Min:    bounds.Min,
		Max:    bounds.Max,
		ChildA: childA,
		ChildB: childB,
	}
}

func zTriangle(z float32) Triangle {
	return NewTriangle(
		core.NewVec3(-1, -1, z),
		core.NewVec3(1, -1, z),
		core.NewVec3(0, 1, z),
		core.Material{},
	)
}

var wideBounds = core.NewAABB(core.NewVec3(-10, -10, -10), core.NewVec3(10, 10, 10))

func TestTraverse_EmptyBuffer(t *testing.T) {
	best := core.NewHitInfo()
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if dropped := Traverse(ray, nil, nil, &best); dropped != 0 {
		t.Errorf("dropped = %d on empty buffer", dropped)
	}
	if best.Hit {
		t.Error("hit reported with no nodes")
	}
}

func TestTraverse_SingleLeaf(t *testing.T) {
	triangles := []Triangle{zTriangle(0)}
	nodes := []BVHNode{leafNode(wideBounds, 0)}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	Traverse(ray, nodes, triangles, &best)

	if !best.Hit {
		t.Fatal("expected hit")
	}
	if best.Distance != 5 {
		t.Errorf("distance = %v, want 5", best.Distance)
	}
}

func TestTraverse_SkipsMissedBoxes(t *testing.T) {
	// Root with two children; the ray only enters one child's box, and the
	// other child's triangle must not be reported even though it is closer
	// along a different line.
	triangles := []Triangle{zTriangle(0), zTriangle(2)}
	left := core.NewAABB(core.NewVec3(-2, -2, -1), core.NewVec3(2, 2, 1))
	right := core.NewAABB(core.NewVec3(40, -2, 1), core.NewVec3(44, 2, 3))
	nodes := []BVHNode{
		internalNode(wideBounds, 1, 2),
		leafNode(left, 0),
		leafNode(right, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	Traverse(ray, nodes, triangles, &best)

	if !best.Hit {
		t.Fatal("expected hit")
	}
	if best.Distance != 5 {
		t.Errorf("distance = %v, want 5 (triangle at z=0)", best.Distance)
	}
}

func TestTraverse_LeafEarlyBreak(t *testing.T) {
	// A leaf stops testing its remaining slot as soon as one candidate
	// beats the current best: with the nearer triangle in the second slot,
	// the farther one wins. Deliberate; see the Traverse doc comment.
	triangles := []Triangle{zTriangle(2), zTriangle(0)}
	nodes := []BVHNode{leafNode(wideBounds, 0, 1)}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	Traverse(ray, nodes, triangles, &best)

	if !best.Hit {
		t.Fatal("expected hit")
	}
	if best.Distance != 3 {
		t.Errorf("distance = %v, want 3 (first slot tested, second skipped)", best.Distance)
	}
}

func TestTraverse_LeafSentinelStopsEarly(t *testing.T) {
	// Index NoIndex in the first slot means an empty leaf even if the
	// second slot holds garbage.
	triangles := []Triangle{zTriangle(0)}
	node := leafNode(wideBounds)
	node.Leaves[1] = 0
	nodes := []BVHNode{node}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	Traverse(ray, nodes, triangles, &best)

	if best.Hit {
		t.Error("sentinel-terminated leaf still tested its second slot")
	}
}

// buildDeepTree makes a perfect binary tree with internal nodes through
// depth internalDepth and empty leaves below, every box wide open so the ray
// enters all of them. It returns the node buffer and the index of the leaf
// at the all-ChildB path, which is the first push a bounded traversal drops.
func buildDeepTree(internalDepth int) (nodes []BVHNode, deepLeaf int32) {
	var build func(depth int) int32
	build = func(depth int) int32 {
		index := int32(len(nodes))
		if depth > internalDepth {
			nodes = append(nodes, leafNode(wideBounds))
			return index
		}
		nodes = append(nodes, internalNode(wideBounds, 0, 0))
		childA := build(depth + 1)
		childB := build(depth + 1)
		nodes[index].ChildA = childA
		nodes[index].ChildB = childB
		return index
	}
	build(1)

	// Follow ChildB from the root to the leaf.
	index := int32(0)
	for !nodes[index].IsLeaf() {
		index = nodes[index].ChildB
	}
	return nodes, index
}

// Trees deeper than the stack budget lose subtrees: the traversal drops the
// pushes it has no room for and reports how many. The lost subtree here
// holds the scene's only triangle, so the bounded traversal misses a hit
// brute force finds. Builders must bound depth so this cannot happen.
func TestTraverse_DeepTreeDropsSubtrees(t *testing.T) {
	nodes, deepLeaf := buildDeepTree(StackCapacity)
	triangles := []Triangle{zTriangle(0)}
	nodes[deepLeaf].Leaves[0] = 0

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	dropped := Traverse(ray, nodes, triangles, &best)

	if dropped == 0 {
		t.Fatal("expected dropped pushes on an over-deep tree")
	}
	if best.Hit {
		t.Error("triangle in the dropped subtree was reported hit")
	}

	// Brute force over the triangle buffer does find it.
	if info := triangles[0].Hit(ray); !info.Hit {
		t.Error("reference brute force missed the triangle")
	}
}

func TestTraverse_DepthWithinBudgetIsExact(t *testing.T) {
	// At the stack's depth budget nothing is dropped and the hit is found
	// wherever it hides.
	nodes, deepLeaf := buildDeepTree(StackCapacity - 1)
	triangles := []Triangle{zTriangle(0)}
	nodes[deepLeaf].Leaves[0] = 0

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	best := core.NewHitInfo()
	dropped := Traverse(ray, nodes, triangles, &best)

	if dropped != 0 {
		t.Fatalf("dropped = %d within depth budget", dropped)
	}
	if !best.Hit {
		t.Error("expected hit in deepest leaf")
	}
}
