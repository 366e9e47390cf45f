package system

import (
	"testing"
	"time"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/scheduler"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressSamples = []float64{0, 0.25, 0.5, 1}

func TestHorizontalDisplacementIsLinearInT(t *testing.T) {
	dir := mgl64.Vec3{0.6, -0.2, -0.8}.Normalize()
	for _, force := range []float64{0, 1, 5, 12.5} {
		plan := component.ThrowPlan{Direction: dir, Force: force}
		for _, p := range progressSamples {
			d := Displacement(plan, p, false)
			assert.InDelta(t, dir.X()*force*p, d.X(), 1e-12, "force %v t %v", force, p)
			assert.InDelta(t, dir.Z()*force*p, d.Z(), 1e-12, "force %v t %v", force, p)
		}
	}
}

func TestVerticalDisplacement(t *testing.T) {
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 1, 0}, Force: 100}
	for _, p := range progressSamples {
		assert.InDelta(t, 10*p-9.8*p*p, Displacement(plan, p, false).Y(), 1e-12, "t %v", p)
		assert.InDelta(t, 10*p-4.9*p*p, Displacement(plan, p, true).Y(), 1e-12, "t %v", p)
	}
	assert.Equal(t, 0.0, Displacement(plan, 0, false).Y())
}

func TestZeroForceStaysPutThenMisses(t *testing.T) {
	h := newHarness(t)
	start := mgl64.Vec3{0, -0.5, 2}
	ball := h.spawn("ball", start, 1)
	creature := h.spawn("creature", mgl64.Vec3{0, 0.5, -1}, 1)

	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, -0.3, -0.95}.Normalize()}
	require.NoError(t, h.trajectory.Launch(ball, creature, plan, h.session))

	for i := 0; i < 62; i++ {
		h.step(16 * time.Millisecond)
		pos := h.ecs.Transforms[ball].Position
		assert.Equal(t, start.X(), pos.X())
		assert.Equal(t, start.Z(), pos.Z())
	}
	assert.Equal(t, 0, h.count(event.BallMissed), "still flying at 992ms")
	assert.True(t, h.trajectory.InFlight(ball))

	h.step(16 * time.Millisecond)
	assert.Equal(t, 1, h.count(event.BallMissed))
	assert.Equal(t, 0, h.count(event.BallHit))
	assert.False(t, h.trajectory.InFlight(ball))
	assert.Equal(t, 1, h.logs.FilterMessage("ball reached its destination without hitting the creature").Len())

	final := h.ecs.Transforms[ball].Position
	assert.InDelta(t, start.Y()+10-9.8, final.Y(), 1e-9)
}

func TestHitFiresOnceAndStopsTicking(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{0, 0, 0}, 1)
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 0, -1}, Force: 4}
	// Where the ball is at t=0.5.
	creature := h.spawn("creature", Displacement(plan, 0.5, false), 1)

	require.NoError(t, h.trajectory.Launch(ball, creature, plan, h.session))
	assert.Equal(t, 0, h.count(event.BallHit))

	for i := 0; i < 100; i++ {
		h.step(10 * time.Millisecond)
		if h.count(event.BallHit) > 0 {
			break
		}
	}
	require.Equal(t, 1, h.count(event.BallHit))
	frozen := h.ecs.Transforms[ball].Position
	rotation := h.ecs.Transforms[ball].Rotation

	h.run(2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, h.count(event.BallHit))
	assert.Equal(t, 0, h.count(event.BallMissed))
	assert.Equal(t, frozen, h.ecs.Transforms[ball].Position)
	assert.Equal(t, rotation, h.ecs.Transforms[ball].Rotation)
}

func TestHitOnLastTickWinsOverMiss(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{0, 0, 0}, 1)
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 0, -1}, Force: 5}
	creature := h.spawn("creature", Displacement(plan, 1, false), 1)

	require.NoError(t, h.trajectory.Launch(ball, creature, plan, h.session))
	for i := 0; i < 4; i++ {
		h.step(250 * time.Millisecond)
	}

	assert.Equal(t, 1, h.count(event.BallHit))
	assert.Equal(t, 0, h.count(event.BallMissed))
}

func TestSpinIsAppliedEveryTick(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{}, 1)
	require.NoError(t, h.trajectory.Launch(ball, 0, component.ThrowPlan{}, h.session))

	h.step(10 * time.Millisecond)
	rot := h.ecs.Transforms[ball].Rotation
	assert.InDelta(t, 2*config.SpinPerTick, rot.X(), 1e-12)
	assert.InDelta(t, 2*config.SpinPerTick, rot.Y(), 1e-12)
	assert.Equal(t, 0.0, rot.Z())
}

func TestLaunchGuards(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{}, 1)
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 0, -1}, Force: 1}

	require.NoError(t, h.trajectory.Launch(ball, 0, plan, h.session))
	err := h.trajectory.Launch(ball, 0, plan, h.session)
	assert.True(t, errors.Is(err, ErrThrowInFlight))
	assert.Equal(t, 1, h.count(event.ThrowStarted))

	err = h.trajectory.Launch(99, 0, plan, h.session)
	assert.True(t, errors.Is(err, ErrMissingEntity))
}

func TestCancelledSessionDropsTrajectory(t *testing.T) {
	h := newHarness(t)
	start := mgl64.Vec3{0, -0.5, 2}
	ball := h.spawn("ball", start, 1)
	sess := scheduler.NewSession()
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 0, -1}, Force: 5}
	require.NoError(t, h.trajectory.Launch(ball, 0, plan, sess))
	before := h.ecs.Transforms[ball].Position

	sess.Cancel()
	h.run(time.Second, 16*time.Millisecond)

	assert.Equal(t, before, h.ecs.Transforms[ball].Position)
	assert.Empty(t, h.ecs.Trajectories)
	assert.Equal(t, 0, h.count(event.BallMissed))
}

func TestBallRemovedMidFlight(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{}, 1)
	require.NoError(t, h.trajectory.Launch(ball, 0, component.ThrowPlan{Force: 1}, h.session))

	h.ecs.RemoveEntity(ball)
	assert.NotPanics(t, func() { h.run(time.Second, 16*time.Millisecond) })
	assert.Equal(t, 0, h.count(event.BallMissed))
}

func TestProgressClamps(t *testing.T) {
	traj := &component.Trajectory{Duration: time.Second, Elapsed: 1500 * time.Millisecond}
	assert.Equal(t, 1.0, traj.Progress())
	traj.Elapsed = 250 * time.Millisecond
	assert.Equal(t, 0.25, traj.Progress())
	assert.Equal(t, 1.0, (&component.Trajectory{}).Progress())
}
