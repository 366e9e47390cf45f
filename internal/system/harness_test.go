package system

import (
	"image/color"
	"testing"
	"time"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/modeldata"
	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"
	"go-ball-capture/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorded struct {
	event.Event
	at time.Duration
}

type harness struct {
	ecs        *entity.ECS
	sched      *scheduler.Scheduler
	dispatcher *event.Dispatcher
	session    *scheduler.Session
	trajectory *TrajectorySystem
	outcome    *OutcomeSystem
	capture    *CaptureSystem
	logs       *observer.ObservedLogs
	events     []recorded
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	h := &harness{
		ecs:        entity.NewECS(),
		sched:      scheduler.New(),
		dispatcher: event.NewDispatcher(),
		session:    scheduler.NewSession(),
		logs:       logs,
	}
	h.trajectory = NewTrajectorySystem(h.ecs, h.dispatcher, logger, false)
	h.outcome = NewOutcomeSystem(h.ecs, h.sched, h.dispatcher, utils.NewPRNGService(1), logger)
	h.capture = NewCaptureSystem(h.ecs, h.dispatcher, logger)

	h.dispatcher.Subscribe(event.BallHit, h.outcome)
	h.dispatcher.Subscribe(event.BallMissed, h.outcome)
	h.dispatcher.Subscribe(event.CreatureCaptured, h.outcome)
	h.dispatcher.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		h.events = append(h.events, recorded{Event: e, at: h.sched.Now()})
	}))
	return h
}

func (h *harness) spawn(key string, pos mgl64.Vec3, nodes int) types.EntityID {
	id := h.ecs.NewEntity()
	h.ecs.Transforms[id] = &component.Transform{Position: pos, Scale: 1}
	h.ecs.Models[id] = &component.Model{
		Key:   key,
		Nodes: modeldata.Procedural(key, nodes, color.RGBA{R: 100, A: 255}),
	}
	return id
}

// step mirrors the frame order of the game loop.
func (h *harness) step(dt time.Duration) {
	h.sched.Advance(dt)
	h.trajectory.Update(dt)
	h.capture.Update(dt)
}

func (h *harness) run(total, dt time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += dt {
		h.step(dt)
	}
}

func (h *harness) count(typ event.EventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (h *harness) times(typ event.EventType) []time.Duration {
	var out []time.Duration
	for _, e := range h.events {
		if e.Type == typ {
			out = append(out, e.at)
		}
	}
	return out
}
