// internal/system/outcome.go
package system

import (
	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"
	"go-ball-capture/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// CaptureInfo is the payload of event.CreatureCaptured.
type CaptureInfo struct {
	Creature types.EntityID
	Ball     types.EntityID
	Session  *scheduler.Session
}

// BlinkInfo is the payload of event.BlinkToggled and event.BlinkFinished.
type BlinkInfo struct {
	Ball    types.EntityID
	Alert   bool
	Toggles int
}

// OutcomeSystem reacts to the end of a throw: on a hit it runs the particle
// burst, the highlight pulse and the capture slide, and once the creature is
// captured it blinks the ball.
type OutcomeSystem struct {
	ecs             *entity.ECS
	scheduler       *scheduler.Scheduler
	eventDispatcher *event.Dispatcher
	rng             *utils.PRNGService
	logger          *zap.Logger
}

// NewOutcomeSystem создает систему исхода броска.
func NewOutcomeSystem(ecs *entity.ECS, sched *scheduler.Scheduler, eventDispatcher *event.Dispatcher, rng *utils.PRNGService, logger *zap.Logger) *OutcomeSystem {
	return &OutcomeSystem{
		ecs:             ecs,
		scheduler:       sched,
		eventDispatcher: eventDispatcher,
		rng:             rng,
		logger:          logger,
	}
}

// OnEvent реализует event.Listener.
func (s *OutcomeSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.BallHit:
		if hit, ok := e.Data.(HitInfo); ok {
			s.onHit(hit)
		}
	case event.BallMissed:
		if miss, ok := e.Data.(MissInfo); ok {
			s.logger.Info("ball reached its destination without hitting the creature",
				zap.Float64("x", miss.At.X()),
				zap.Float64("y", miss.At.Y()),
				zap.Float64("z", miss.At.Z()))
		}
	case event.CreatureCaptured:
		if c, ok := e.Data.(CaptureInfo); ok {
			s.StartBlink(c.Ball, c.Session)
		}
	}
}

func (s *OutcomeSystem) onHit(hit HitInfo) {
	creature, ok := s.ecs.Transforms[hit.Creature]
	if !ok {
		return
	}
	s.SpawnBurst(creature.Position, hit.Session)
	s.Highlight(hit.Creature, hit.Session)

	// Существо тянется к позиции мяча в момент попадания
	s.ecs.CaptureSlides[hit.Creature] = &component.CaptureSlide{
		From:     creature.Position,
		To:       hit.At,
		Duration: config.CaptureSlideDuration,
		Ball:     hit.Ball,
		Session:  hit.Session,
	}
}

// SpawnBurst places ParticleCount particles around at and removes them after
// ParticleLifetime.
func (s *OutcomeSystem) SpawnBurst(at mgl64.Vec3, session *scheduler.Session) types.EntityID {
	points := make([]mgl64.Vec3, config.ParticleCount)
	for i := range points {
		points[i] = at.Add(s.rng.Offset(config.ParticleSpread))
	}

	id := s.ecs.NewEntity()
	s.ecs.Particles[id] = &component.ParticleBurst{
		Points: points,
		Color:  config.ParticleColor,
		Size:   config.ParticleSize,
	}
	s.scheduler.After(session, config.ParticleLifetime, func() {
		s.ecs.RemoveEntity(id)
	})
	return id
}

// Highlight swaps every node's material for a shared emissive one and puts the
// originals back after HighlightDuration, matched by node id.
func (s *OutcomeSystem) Highlight(id types.EntityID, session *scheduler.Session) {
	model, ok := s.ecs.Models[id]
	if !ok {
		return
	}

	highlight := &component.Material{
		Albedo:            config.HighlightColor,
		Emissive:          config.HighlightColor,
		EmissiveIntensity: config.HighlightIntensity,
	}
	saved := make(map[uint64]*component.Material, len(model.Nodes))
	for _, node := range model.Nodes {
		saved[node.ID] = node.Material
		node.Material = highlight
	}

	s.scheduler.After(session, config.HighlightDuration, func() {
		model, ok := s.ecs.Models[id]
		if !ok {
			return
		}
		for nodeID, original := range saved {
			if node, ok := model.Node(nodeID); ok {
				node.Material = original
			}
		}
	})
}

// StartBlink toggles the ball's emissive color every BlinkInterval for
// BlinkDuration, then leaves it neutral.
func (s *OutcomeSystem) StartBlink(ball types.EntityID, session *scheduler.Session) *scheduler.Timer {
	toggles := int(config.BlinkDuration / config.BlinkInterval)

	return s.scheduler.Every(session, config.BlinkInterval, func(tm *scheduler.Timer) {
		model, ok := s.ecs.Models[ball]
		if !ok {
			tm.Stop()
			return
		}

		alert := tm.Fired()%2 == 1
		if tm.Fired() >= toggles {
			alert = false
		}
		color := config.BlinkNeutralColor
		if alert {
			color = config.BlinkAlertColor
		}
		for _, node := range model.Nodes {
			node.Material.Emissive = color
		}
		s.eventDispatcher.Dispatch(event.Event{Type: event.BlinkToggled, Data: BlinkInfo{Ball: ball, Alert: alert, Toggles: tm.Fired()}})

		if tm.Fired() >= toggles {
			tm.Stop()
			s.logger.Info("ball stopped blinking", zap.Int("toggles", tm.Fired()))
			s.eventDispatcher.Dispatch(event.Event{Type: event.BlinkFinished, Data: BlinkInfo{Ball: ball, Toggles: tm.Fired()}})
		}
	})
}
