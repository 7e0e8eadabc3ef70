package integrator

import (
	"math"
	"testing"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/geometry"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

var testSky = scene.SkyColors{
	Zenith:  core.NewVec3(0.1, 0.3, 0.9),
	Horizon: core.NewVec3(0.9, 0.9, 1.0),
	Ground:  core.NewVec3(0.3, 0.25, 0.2),
}

func TestSkybox_ZenithExact(t *testing.T) {
	// Straight up: both smoothsteps saturate and the zenith color comes
	// back exactly.
	got := Skybox(core.NewVec3(0, 1, 0), testSky)
	if got != testSky.Zenith {
		t.Errorf("Skybox(up) = %v, want %v", got, testSky.Zenith)
	}
}

func TestSkybox_GroundExact(t *testing.T) {
	got := Skybox(core.NewVec3(0, -1, 0), testSky)
	if got != testSky.Ground {
		t.Errorf("Skybox(down) = %v, want %v", got, testSky.Ground)
	}
}

func TestSkybox_HorizonBlend(t *testing.T) {
	// Just above the horizon the color sits between horizon and zenith.
	got := Skybox(core.NewVec3(1, 0.05, 0).Normalize(), testSky)
	if got.X >= testSky.Horizon.X || got.Z <= testSky.Horizon.Z {
		t.Errorf("Skybox(near horizon) = %v, not between horizon and zenith", got)
	}
}

func TestSkybox_Deterministic(t *testing.T) {
	dir := core.NewVec3(0.3, 0.4, -0.5).Normalize()
	first := Skybox(dir, testSky)
	for i := 0; i < 10; i++ {
		if got := Skybox(dir, testSky); got != first {
			t.Fatal("skybox is not a pure function of direction")
		}
	}
}

// Empty scene: the integrator must return exactly the skybox term for the
// primary direction, with no emission mixed in.
func TestTrace_EmptySceneIsSkybox(t *testing.T) {
	world := &scene.Scene{}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	state := core.SamplerState(1)
	radiance, dropped := Trace(ray, world, testSky, 4, &state)

	if radiance != testSky.Zenith {
		t.Errorf("radiance = %v, want zenith %v exactly", radiance, testSky.Zenith)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d", dropped)
	}
	if state != 1 {
		t.Error("sampler consumed draws on a miss-only path")
	}
}

// One fully emissive sphere, bounce budget zero: a single hit, loop ends,
// and the output is the emission exactly with no attenuation.
func TestTrace_EmissiveSphereExact(t *testing.T) {
	emission := core.NewVec3(1, 1, 1)
	world := &scene.Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.Material{
				Albedo:           core.NewVec3(0.5, 0.5, 0.5),
				EmissionColor:    emission,
				EmissionStrength: 1,
			}),
		},
	}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	state := core.SamplerState(1)
	radiance, _ := Trace(ray, world, testSky, 0, &state)

	if radiance != emission {
		t.Errorf("radiance = %v, want %v exactly", radiance, emission)
	}
}

func TestTrace_EmissionScaledByStrength(t *testing.T) {
	world := &scene.Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.Material{
				EmissionColor:    core.NewVec3(1, 0.5, 0.25),
				EmissionStrength: 4,
			}),
		},
	}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	state := core.SamplerState(1)
	radiance, _ := Trace(ray, world, testSky, 0, &state)

	want := core.NewVec3(4, 2, 1)
	if radiance != want {
		t.Errorf("radiance = %v, want %v", radiance, want)
	}
}

// A black enclosure absorbs everything: radiance stays zero no matter the
// bounce budget, and the loop terminates by exhausting it.
func TestTrace_BlackEnclosureTerminates(t *testing.T) {
	world := &scene.Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 50, core.Material{}),
		},
	}
	// Origin inside would miss (near root negative), so start outside
	// aimed in; every bounce re-hits the big sphere from outside geometry
	// or escapes to the sky with zero throughput.
	ray := core.NewRay(core.NewVec3(0, 0, 60), core.NewVec3(0, 0, -1))

	state := core.SamplerState(3)
	radiance, _ := Trace(ray, world, testSky, 16, &state)

	if radiance != (core.Vec3{}) {
		t.Errorf("radiance = %v, want black", radiance)
	}
}

// One gray bounce caps every channel of the estimate at albedo times the
// strongest source in the scene, whatever direction the sampler picks.
func TestTrace_ThroughputAttenuation(t *testing.T) {
	gray := core.Material{Albedo: core.NewVec3(0.5, 0.5, 0.5)}
	world := &scene.Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, gray),
		},
	}

	brightest := math.Max(math.Max(float64(testSky.Zenith.X), float64(testSky.Horizon.X)), 1)
	limit := 0.5*brightest + 1e-5

	for seed := uint32(0); seed < 64; seed++ {
		state := core.SamplerState(seed)
		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
		radiance, _ := Trace(ray, world, testSky, 1, &state)

		for _, c := range []float32{radiance.X, radiance.Y, radiance.Z} {
			if float64(c) > limit {
				t.Fatalf("seed %d: channel %v exceeds one-bounce cap %v", seed, c, limit)
			}
		}
	}
}

func TestTrace_DrawsPerBounce(t *testing.T) {
	// Each hit consumes exactly one unit-direction sample: three normals
	// at two uniform draws apiece.
	world := &scene.Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -20), 15, core.Material{Albedo: core.NewVec3(0.9, 0.9, 0.9)}),
		},
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	state := core.SamplerState(42)
	Trace(ray, world, testSky, 0, &state)

	want := core.SamplerState(42)
	for i := 0; i < 6; i++ {
		core.NextUniform(&want)
	}
	if state != want {
		t.Errorf("single hit consumed an unexpected number of draws")
	}
}

func TestTrace_MissTerminatesEarly(t *testing.T) {
	// A miss is the only early exit: radiance picks up skybox*throughput
	// and the loop stops even with budget remaining.
	world := &scene.Scene{}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	state := core.SamplerState(17)
	radiance, _ := Trace(ray, world, testSky, 1000, &state)

	if radiance != testSky.Zenith {
		t.Errorf("radiance = %v, want single skybox term", radiance)
	}
}
