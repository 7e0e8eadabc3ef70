package scene

import (
	"fmt"
	"sort"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/geometry"
)

// BuildBVH flattens a triangle list into the node buffer the traversal
// expects: median split on triangle centroids along the longest axis,
// at most geometry.LeafSize primitives per leaf, node 0 as the root.
//
// The resulting tree is depth-bounded so that traversal's fixed-capacity
// stack can never overflow; if the triangle set cannot be partitioned within
// that bound an error is returned instead of silently producing a tree the
// traversal would under-visit.
func BuildBVH(triangles []geometry.Triangle) ([]geometry.BVHNode, error) {
	if len(triangles) == 0 {
		return nil, nil
	}

	// Partition an index slice rather than the caller's triangle buffer.
	order := make([]int32, len(triangles))
	for i := range order {
		order[i] = int32(i)
	}

	b := &builder{triangles: triangles}
	if _, err := b.build(order, 1); err != nil {
		return nil, err
	}
	return b.nodes, nil
}

type builder struct {
	triangles []geometry.Triangle
	nodes     []geometry.BVHNode
}

// maxDepth keeps the finished tree traversable with the fixed stack: a
// depth-first walk of a binary tree of depth d holds at most d+1 pending
// node indices.
const maxDepth = geometry.StackCapacity - 1

func (b *builder) build(order []int32, depth int) (int32, error) {
	bounds := b.boundsOf(order)

	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, geometry.BVHNode{
		Min:    bounds.Min,
		Max:    bounds.Max,
		ChildA: geometry.NoIndex,
		ChildB: geometry.NoIndex,
	})

	if len(order) <= geometry.LeafSize {
		node := &b.nodes[index]
		for i := range node.Leaves {
			if i < len(order) {
				node.Leaves[i] = order[i]
			} else {
				node.Leaves[i] = geometry.NoIndex
			}
		}
		return index, nil
	}

	if depth >= maxDepth {
		return 0, fmt.Errorf("bvh: %d triangles need depth > %d", len(order), maxDepth)
	}

	axis := bounds.LongestAxis()
	sort.Slice(order, func(i, j int) bool {
		return axisValue(b.triangles[order[i]].Centroid, axis) <
			axisValue(b.triangles[order[j]].Centroid, axis)
	})
	mid := len(order) / 2

	childA, err := b.build(order[:mid], depth+1)
	if err != nil {
		return 0, err
	}
	childB, err := b.build(order[mid:], depth+1)
	if err != nil {
		return 0, err
	}

	b.nodes[index].ChildA = childA
	b.nodes[index].ChildB = childB
	return index, nil
}

func (b *builder) boundsOf(order []int32) core.AABB {
	bounds := b.triangles[order[0]].BoundingBox()
	for _, i := range order[1:] {
		bounds = bounds.Union(b.triangles[i].BoundingBox())
	}
	return bounds
}

func axisValue(v core.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
