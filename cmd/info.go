package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/arvhn/go-tracekernel/pkg/geometry"
	"github.com/arvhn/go-tracekernel/pkg/layout"
)

// InfoFlags are the options of the info command.
var InfoFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene",
		Value: "default",
		Usage: "scene to describe: 'default' or 'cornell'",
	},
}

// Info prints the buffer shapes a scene would upload: record counts, byte
// sizes in the 16-byte-aligned wire layout, and the BVH tree profile.
func Info(ctx *cli.Context) error {
	SetupLogging(ctx)

	world, _, _, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}

	leaves, maxDepth := bvhProfile(world.Nodes, 0, 1)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Buffer", "Records", "Record size", "Bytes"})
	table.Append(row("spheres", len(world.Spheres), layout.SphereSize))
	table.Append(row("triangles", len(world.Triangles), layout.TriangleSize))
	table.Append(row("bvh nodes", len(world.Nodes), layout.NodeSize))
	table.Render()

	fmt.Printf("bvh: %d leaves, depth %d (stack capacity %d)\n",
		leaves, maxDepth, geometry.StackCapacity)
	return nil
}

func row(name string, count, size int) []string {
	return []string{
		name,
		fmt.Sprintf("%d", count),
		fmt.Sprintf("%d", size),
		fmt.Sprintf("%d", count*size),
	}
}

// bvhProfile walks the node buffer and returns its leaf count and depth.
func bvhProfile(nodes []geometry.BVHNode, index int32, depth int) (leaves, maxDepth int) {
	if len(nodes) == 0 {
		return 0, 0
	}
	node := nodes[index]
	if node.IsLeaf() {
		return 1, depth
	}
	leavesA, depthA := bvhProfile(nodes, node.ChildA, depth+1)
	leavesB, depthB := bvhProfile(nodes, node.ChildB, depth+1)
	return leavesA + leavesB, max(depthA, depthB)
}
