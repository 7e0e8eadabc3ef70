package integrator

import (
	"github.com/chewxy/math32"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

// Skybox is the analytic miss term: a vertical three-color gradient. The
// horizon-to-zenith blend is sharpened with a 0.35 power and the result is
// cut against the ground color just below the horizon. Pure function of the
// ray direction.
func Skybox(direction core.Vec3, sky scene.SkyColors) core.Vec3 {
	skyT := math32.Pow(core.Smoothstep(0, 0.4, direction.Y), 0.35)
	gradient := sky.Horizon.Lerp(sky.Zenith, skyT)
	groundT := core.Smoothstep(-0.01, 0, direction.Y)
	return sky.Ground.Lerp(gradient, groundT)
}
