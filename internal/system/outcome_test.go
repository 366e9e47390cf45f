package system

import (
	"testing"
	"time"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/event"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightRestoresMaterialsByNodeID(t *testing.T) {
	for _, nodes := range []int{1, 2, 5} {
		h := newHarness(t)
		creature := h.spawn("creature", mgl64.Vec3{}, nodes)
		model := h.ecs.Models[creature]

		originals := make(map[uint64]*component.Material, nodes)
		for _, n := range model.Nodes {
			originals[n.ID] = n.Material
		}

		h.outcome.Highlight(creature, h.session)
		for _, n := range model.Nodes {
			assert.Equal(t, config.HighlightColor, n.Material.Emissive)
			assert.NotSame(t, originals[n.ID], n.Material)
		}

		// Reorder the nodes: restore must not depend on traversal order.
		for i, j := 0, len(model.Nodes)-1; i < j; i, j = i+1, j-1 {
			model.Nodes[i], model.Nodes[j] = model.Nodes[j], model.Nodes[i]
		}

		h.run(config.HighlightDuration-10*time.Millisecond, 10*time.Millisecond)
		assert.NotSame(t, originals[model.Nodes[0].ID], model.Nodes[0].Material, "%d nodes: restored early", nodes)

		h.step(10 * time.Millisecond)
		for _, n := range model.Nodes {
			assert.Same(t, originals[n.ID], n.Material, "%d nodes", nodes)
		}
	}
}

func TestHighlightRestoreSkipsDroppedNodes(t *testing.T) {
	h := newHarness(t)
	creature := h.spawn("creature", mgl64.Vec3{}, 3)
	model := h.ecs.Models[creature]
	kept := model.Nodes[0]
	original := kept.Material

	h.outcome.Highlight(creature, h.session)
	model.Nodes = model.Nodes[:1]
	h.run(config.HighlightDuration, 10*time.Millisecond)

	assert.Same(t, original, kept.Material)
	_, ok := model.Node(kept.ID)
	assert.True(t, ok)
}

func TestHighlightRestoreAfterRemovalIsNoop(t *testing.T) {
	h := newHarness(t)
	creature := h.spawn("creature", mgl64.Vec3{}, 3)
	h.outcome.Highlight(creature, h.session)
	h.ecs.RemoveEntity(creature)

	assert.NotPanics(t, func() { h.run(time.Second, 50*time.Millisecond) })
}

func TestSpawnBurst(t *testing.T) {
	h := newHarness(t)
	center := mgl64.Vec3{0, 0.5, -1}
	id := h.outcome.SpawnBurst(center, h.session)

	burst, ok := h.ecs.Particles[id]
	require.True(t, ok)
	require.Len(t, burst.Points, config.ParticleCount)
	for _, p := range burst.Points {
		d := p.Sub(center)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, d[axis], 0.25)
			assert.GreaterOrEqual(t, d[axis], -0.25)
		}
	}

	h.run(config.ParticleLifetime-10*time.Millisecond, 10*time.Millisecond)
	assert.Contains(t, h.ecs.Particles, id)
	h.step(10 * time.Millisecond)
	assert.NotContains(t, h.ecs.Particles, id)
}

func TestBlinkTogglesTenTimesThenNeutral(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{}, 2)
	timer := h.outcome.StartBlink(ball, h.session)

	var colors []bool
	h.dispatcher.Subscribe(event.BlinkToggled, event.ListenerFunc(func(e event.Event) {
		colors = append(colors, e.Data.(BlinkInfo).Alert)
	}))

	h.run(5*time.Second, 20*time.Millisecond)

	assert.Equal(t, 10, timer.Fired())
	assert.Equal(t, []bool{true, false, true, false, true, false, true, false, true, false}, colors)
	assert.Equal(t, 1, h.count(event.BlinkFinished))
	for _, n := range h.ecs.Models[ball].Nodes {
		assert.Equal(t, config.BlinkNeutralColor, n.Material.Emissive)
	}
}

func TestBlinkStopsWhenBallDisappears(t *testing.T) {
	h := newHarness(t)
	ball := h.spawn("ball", mgl64.Vec3{}, 1)
	timer := h.outcome.StartBlink(ball, h.session)

	h.run(450*time.Millisecond, 50*time.Millisecond)
	h.ecs.RemoveEntity(ball)
	h.run(time.Second, 50*time.Millisecond)

	assert.False(t, timer.Active())
	assert.Equal(t, 0, h.count(event.BlinkFinished))
}

// direction (0,0,-1), force 5, creature 0.4 away: hit on the first tick, then
// burst, highlight, capture slide and a 2000ms blink in 200ms steps.
func TestHitSequenceEndToEnd(t *testing.T) {
	h := newHarness(t)
	ballStart := mgl64.Vec3{0, 0, 0}
	ball := h.spawn("ball", ballStart, 2)
	creature := h.spawn("creature", mgl64.Vec3{0, 0, -0.4}, 3)
	plan := component.ThrowPlan{Direction: mgl64.Vec3{0, 0, -1}, Force: 5}

	require.NoError(t, h.trajectory.Launch(ball, creature, plan, h.session))

	require.Equal(t, 1, h.count(event.BallHit))
	assert.Equal(t, []time.Duration{0}, h.times(event.BallHit))
	assert.Equal(t, ballStart, h.ecs.Transforms[ball].Position)
	assert.Len(t, h.ecs.Particles, 1)
	assert.Contains(t, h.ecs.CaptureSlides, creature)
	for _, n := range h.ecs.Models[creature].Nodes {
		assert.Equal(t, config.HighlightColor, n.Material.Albedo)
	}

	h.run(500*time.Millisecond, 10*time.Millisecond)
	assert.Empty(t, h.ecs.Particles)
	for _, n := range h.ecs.Models[creature].Nodes {
		assert.NotEqual(t, config.HighlightColor, n.Material.Albedo)
	}
	halfway := h.ecs.Transforms[creature].Position
	assert.InDelta(t, -0.2, halfway.Z(), 1e-9)

	h.run(500*time.Millisecond, 10*time.Millisecond)
	assert.False(t, h.ecs.Exists(creature))
	require.Equal(t, []time.Duration{time.Second}, h.times(event.CreatureCaptured))

	h.run(3*time.Second, 10*time.Millisecond)
	toggles := h.times(event.BlinkToggled)
	require.Len(t, toggles, 10)
	for i, at := range toggles {
		assert.Equal(t, time.Second+time.Duration(i+1)*config.BlinkInterval, at)
	}
	assert.Equal(t, []time.Duration{3 * time.Second}, h.times(event.BlinkFinished))
	assert.Equal(t, 0, h.count(event.BallMissed))
}
