// internal/system/trajectory.go
package system

import (
	"time"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"
	"go-ball-capture/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrThrowInFlight rejects a throw while the ball is still flying.
var ErrThrowInFlight = errors.New("throw already in flight")

// HitInfo is the payload of event.BallHit.
type HitInfo struct {
	Ball     types.EntityID
	Creature types.EntityID
	At       mgl64.Vec3
	Distance float64
	Session  *scheduler.Session
}

// MissInfo is the payload of event.BallMissed.
type MissInfo struct {
	Ball    types.EntityID
	At      mgl64.Vec3
	Session *scheduler.Session
}

// Displacement returns the ball's offset from its start at progress t.
// Horizontal motion only uses the x and z of the direction; the vertical term
// is InitialVerticalSpeed*t + Gravity*t^2, or Gravity*t^2/2 with halfGravity.
func Displacement(plan component.ThrowPlan, t float64, halfGravity bool) mgl64.Vec3 {
	g := config.Gravity
	if halfGravity {
		g *= 0.5
	}
	horizontal := plan.Direction.Mul(plan.Force * t)
	return mgl64.Vec3{
		horizontal.X(),
		config.InitialVerticalSpeed*t + g*t*t,
		horizontal.Z(),
	}
}

// TrajectorySystem animates thrown balls and tests them against their target.
type TrajectorySystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	logger          *zap.Logger
	halfGravity     bool
}

func NewTrajectorySystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, logger *zap.Logger, halfGravity bool) *TrajectorySystem {
	return &TrajectorySystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		halfGravity:     halfGravity,
	}
}

// InFlight reports whether ball currently has a running trajectory.
func (s *TrajectorySystem) InFlight(ball types.EntityID) bool {
	traj, ok := s.ecs.Trajectories[ball]
	return ok && traj.Phase == component.FlightInFlight
}

// Launch starts a trajectory from the ball's current position and runs the
// first tick immediately, so a target already within reach is hit at t=0.
func (s *TrajectorySystem) Launch(ball, target types.EntityID, plan component.ThrowPlan, session *scheduler.Session) error {
	if s.InFlight(ball) {
		return ErrThrowInFlight
	}
	tr, ok := s.ecs.Transforms[ball]
	if !ok {
		return errors.Wrapf(ErrMissingEntity, "ball %d", ball)
	}

	traj := &component.Trajectory{
		Plan:     plan,
		Start:    tr.Position,
		Duration: config.ThrowDuration,
		TargetID: target,
		Phase:    component.FlightInFlight,
		Session:  session,
	}
	s.ecs.Trajectories[ball] = traj
	s.eventDispatcher.Dispatch(event.Event{Type: event.ThrowStarted, Data: plan})
	s.tick(ball, traj)
	return nil
}

// Update advances every trajectory by deltaTime.
func (s *TrajectorySystem) Update(deltaTime time.Duration) {
	for id, traj := range s.ecs.Trajectories {
		traj.Elapsed += deltaTime
		s.tick(id, traj)
	}
}

func (s *TrajectorySystem) tick(id types.EntityID, traj *component.Trajectory) {
	tr, ok := s.ecs.Transforms[id]
	if !ok || !traj.Session.Live() {
		// Мяч пропал или сцена сброшена — тихо выходим
		delete(s.ecs.Trajectories, id)
		return
	}

	t := traj.Progress()
	tr.Position = traj.Start.Add(Displacement(traj.Plan, t, s.halfGravity))
	tr.Rotation[0] = utils.NormalizeAngle(tr.Rotation[0] + config.SpinPerTick)
	tr.Rotation[1] = utils.NormalizeAngle(tr.Rotation[1] + config.SpinPerTick)

	if s.ecs.Exists(traj.TargetID) {
		target := s.ecs.Transforms[traj.TargetID]
		dist := tr.Position.Sub(target.Position).Len()
		if dist < config.HitRadius {
			traj.Phase = component.FlightHit
			delete(s.ecs.Trajectories, id)
			s.logger.Info("ball hit the creature",
				zap.Float64("t", t),
				zap.Float64("distance", dist))
			s.eventDispatcher.Dispatch(event.Event{Type: event.BallHit, Data: HitInfo{
				Ball:     id,
				Creature: traj.TargetID,
				At:       tr.Position,
				Distance: dist,
				Session:  traj.Session,
			}})
			return
		}
	}

	if t >= 1 {
		traj.Phase = component.FlightMissed
		delete(s.ecs.Trajectories, id)
		s.eventDispatcher.Dispatch(event.Event{Type: event.BallMissed, Data: MissInfo{
			Ball:    id,
			At:      tr.Position,
			Session: traj.Session,
		}})
	}
}
