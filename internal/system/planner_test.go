package system

import (
	"testing"

	"go-ball-capture/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPlanThrowFromDefaultLayout(t *testing.T) {
	ball := mgl64.Vec3{0, -0.5, 2}
	camera := mgl64.Vec3{0, 1, 5}
	req := input.ThrowRequest{Start: mgl64.Vec2{0, -0.5}, End: mgl64.Vec2{0, 0.1}}

	plan := PlanThrow(req, ball, camera)

	want := ball.Sub(camera).Normalize()
	assert.True(t, plan.Direction.ApproxEqual(want))
	assert.InDelta(t, 1.0, plan.Direction.Len(), 1e-12)
	assert.InDelta(t, 3.0, plan.Force, 1e-12)
	assert.True(t, plan.Target.ApproxEqual(ball.Add(want.Mul(3))))
}

func TestPlanThrowZeroDrag(t *testing.T) {
	p := mgl64.Vec2{0.3, 0.3}
	plan := PlanThrow(input.ThrowRequest{Start: p, End: p}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})

	assert.Equal(t, 0.0, plan.Force)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, plan.Target)
}

func TestPlanThrowBallAtCamera(t *testing.T) {
	at := mgl64.Vec3{0, 1, 5}
	plan := PlanThrow(input.ThrowRequest{End: mgl64.Vec2{1, 0}}, at, at)

	assert.Equal(t, mgl64.Vec3{}, plan.Direction)
	assert.Equal(t, at, plan.Target)
}
