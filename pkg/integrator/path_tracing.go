// Package integrator implements the unidirectional path integrator: an
// iterative bounce loop that accumulates emitted radiance weighted by the
// path throughput.
package integrator

import (
	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

// Trace estimates incoming radiance along ray with up to bounces+1 scene
// queries. At each hit the ray is moved to the hit point, the new direction
// is the hit normal perturbed by a unit-sphere sample, the material's
// emission (scaled by throughput) is added, and throughput picks up the
// albedo. A miss adds the skybox term and ends the path; exhausting the
// bounce budget is the only other exit.
//
// The bounce direction is intentionally not clamped into the hemisphere of
// the normal, and there is no Russian roulette or importance-sampling weight;
// the estimator trades variance for a fixed per-path cost.
//
// dropped sums the BVH traversal stack drops over all queries of the path.
func Trace(ray core.Ray, world *scene.Scene, sky scene.SkyColors, bounces int, state *core.SamplerState) (radiance core.Vec3, dropped int) {
	throughput := core.NewVec3(1, 1, 1)

	for i := 0; i <= bounces; i++ {
		hit, d := world.Query(ray)
		dropped += d

		if !hit.Hit {
			radiance = radiance.Add(Skybox(ray.Direction, sky).MultiplyVec(throughput))
			break
		}

		ray.Origin = hit.Point
		ray.Direction = hit.Normal.Add(core.UnitDirection(state)).Normalize()

		radiance = radiance.Add(hit.Material.Emitted().MultiplyVec(throughput))
		throughput = throughput.MultiplyVec(hit.Material.Albedo)
	}

	return radiance, dropped
}
