package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/geometry"
)

// Camera is the viewpoint a demo scene suggests: everything the kernel needs
// to build primary rays. Transform rotates camera-local directions (+z
// forward) into world space; the demo scenes sit on -z, hence the half-turn
// about Y.
type Camera struct {
	Position    core.Vec3
	Transform   mgl32.Mat4
	FocalLength float32
}

// SkyColors is a demo scene's three-color gradient: zenith, horizon, ground.
type SkyColors struct {
	Zenith  core.Vec3
	Horizon core.Vec3
	Ground  core.Vec3
}

// NewDefaultScene builds a small open scene: a ground sphere, three test
// spheres, a strongly emissive sun sphere, and a four-triangle pyramid mesh
// so the BVH path is exercised.
func NewDefaultScene() (*Scene, Camera, SkyColors, error) {
	white := core.NewVec3(0.9, 0.9, 0.9)

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, -100.5, -2), 100, core.Material{
			Albedo: core.NewVec3(0.55, 0.55, 0.5),
		}),
		geometry.NewSphere(core.NewVec3(-1.1, 0, -2), 0.5, core.Material{
			Albedo: core.NewVec3(0.85, 0.25, 0.2),
		}),
		geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, core.Material{
			Albedo: white,
		}),
		geometry.NewSphere(core.NewVec3(1.1, 0, -2), 0.5, core.Material{
			Albedo: core.NewVec3(0.2, 0.3, 0.85),
		}),
		geometry.NewSphere(core.NewVec3(30, 40, 20), 10, core.Material{
			Albedo:           white,
			EmissionColor:    core.NewVec3(1, 0.95, 0.8),
			EmissionStrength: 25,
		}),
	}

	gray := core.Material{Albedo: core.NewVec3(0.7, 0.7, 0.7)}
	apex := core.NewVec3(0, 0.6, -3.2)
	base := [4]core.Vec3{
		core.NewVec3(-0.5, -0.5, -2.7),
		core.NewVec3(0.5, -0.5, -2.7),
		core.NewVec3(0.5, -0.5, -3.7),
		core.NewVec3(-0.5, -0.5, -3.7),
	}
	triangles := []geometry.Triangle{
		geometry.NewTriangle(base[0], base[1], apex, gray),
		geometry.NewTriangle(base[1], base[2], apex, gray),
		geometry.NewTriangle(base[2], base[3], apex, gray),
		geometry.NewTriangle(base[3], base[0], apex, gray),
	}

	nodes, err := BuildBVH(triangles)
	if err != nil {
		return nil, Camera{}, SkyColors{}, err
	}

	camera := Camera{
		Position:    core.NewVec3(0, 0.3, 1),
		Transform:   mgl32.HomogRotate3DY(math32.Pi),
		FocalLength: 1.4,
	}
	sky := SkyColors{
		Zenith:  core.NewVec3(0.33, 0.53, 0.97),
		Horizon: core.NewVec3(0.9, 0.95, 1),
		Ground:  core.NewVec3(0.35, 0.3, 0.27),
	}

	return &Scene{Spheres: spheres, Triangles: triangles, Nodes: nodes}, camera, sky, nil
}

// NewCornellScene builds a closed Cornell-style box out of mesh quads with an
// emissive ceiling panel and two diffuse spheres. The sky never shows, so
// all light comes from the panel.
func NewCornellScene() (*Scene, Camera, SkyColors, error) {
	white := core.Material{Albedo: core.NewVec3(0.73, 0.73, 0.73)}
	red := core.Material{Albedo: core.NewVec3(0.65, 0.05, 0.05)}
	green := core.Material{Albedo: core.NewVec3(0.12, 0.45, 0.15)}
	light := core.Material{
		Albedo:           core.NewVec3(1, 1, 1),
		EmissionColor:    core.NewVec3(1, 0.9, 0.7),
		EmissionStrength: 15,
	}

	var triangles []geometry.Triangle
	quad := func(a, b, c, d core.Vec3, m core.Material) {
		triangles = append(triangles,
			geometry.NewTriangle(a, b, c, m),
			geometry.NewTriangle(a, c, d, m),
		)
	}

	// Box interior spans [-1,1] on x/y with the open side facing +z.
	// Winding is chosen so geometric normals face into the box, keeping the
	// back-face cull from eating wall hits.
	quad(core.NewVec3(-1, -1, -2), core.NewVec3(1, -1, -2), core.NewVec3(1, -1, -4), core.NewVec3(-1, -1, -4), white) // floor
	quad(core.NewVec3(-1, 1, -4), core.NewVec3(1, 1, -4), core.NewVec3(1, 1, -2), core.NewVec3(-1, 1, -2), white)     // ceiling
	quad(core.NewVec3(-1, -1, -2), core.NewVec3(-1, -1, -4), core.NewVec3(-1, 1, -4), core.NewVec3(-1, 1, -2), red)   // left wall
	quad(core.NewVec3(1, -1, -4), core.NewVec3(1, -1, -2), core.NewVec3(1, 1, -2), core.NewVec3(1, 1, -4), green)     // right wall
	quad(core.NewVec3(-1, -1, -4), core.NewVec3(1, -1, -4), core.NewVec3(1, 1, -4), core.NewVec3(-1, 1, -4), white)   // back wall
	quad(core.NewVec3(-0.4, 0.99, -3.4), core.NewVec3(0.4, 0.99, -3.4), core.NewVec3(0.4, 0.99, -2.8), core.NewVec3(-0.4, 0.99, -2.8), light)

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(-0.45, -0.65, -3.3), 0.35, white),
		geometry.NewSphere(core.NewVec3(0.45, -0.7, -2.8), 0.3, core.Material{
			Albedo: core.NewVec3(0.8, 0.65, 0.25),
		}),
	}

	nodes, err := BuildBVH(triangles)
	if err != nil {
		return nil, Camera{}, SkyColors{}, err
	}

	camera := Camera{
		Position:    core.NewVec3(0, 0, 0.4),
		Transform:   mgl32.HomogRotate3DY(math32.Pi),
		FocalLength: 1.8,
	}
	// Dark gradient: the box is closed, so these barely matter.
	sky := SkyColors{
		Zenith:  core.NewVec3(0.01, 0.01, 0.02),
		Horizon: core.NewVec3(0.01, 0.01, 0.02),
		Ground:  core.NewVec3(0, 0, 0),
	}

	return &Scene{Spheres: spheres, Triangles: triangles, Nodes: nodes}, camera, sky, nil
}
