// internal/system/planner.go
package system

import (
	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/input"
	"go-ball-capture/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
)

// PlanThrow derives the throw from a completed drag. The ball flies away from
// the camera; the drag length sets the force.
func PlanThrow(req input.ThrowRequest, ball, camera mgl64.Vec3) component.ThrowPlan {
	direction := utils.SafeNormalize(ball.Sub(camera))
	force := req.End.Sub(req.Start).Len() * config.ThrowForceScale
	return component.ThrowPlan{
		Direction: direction,
		Force:     force,
		Target:    ball.Add(direction.Mul(force)),
	}
}
