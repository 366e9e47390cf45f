// internal/app/game.go
package app

import (
	"time"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/input"
	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/system"
	"go-ball-capture/internal/types"
	"go-ball-capture/internal/utils"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Phase is what the HUD shows about the scene.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseReady     Phase = "ready"
	PhaseInFlight  Phase = "in flight"
	PhaseCapturing Phase = "capturing"
	PhaseCaptured  Phase = "captured"
	PhaseNoBall    Phase = "ball missing"
)

// Game holds the scene state and is the only thing that mutates it.
type Game struct {
	Scene            config.Scene
	ECS              *entity.ECS
	Scheduler        *scheduler.Scheduler
	EventDispatcher  *event.Dispatcher
	Registry         *Registry
	Tracker          *input.Tracker
	TrajectorySystem *system.TrajectorySystem
	OutcomeSystem    *system.OutcomeSystem
	CaptureSystem    *system.CaptureSystem
	Rng              *utils.PRNGService
	Camera           mgl64.Vec3
	CameraTarget     mgl64.Vec3

	logger      *zap.Logger
	lastOutcome string
	gameTime    time.Duration
	started     bool
}

// NewGame initializes a new game instance. Models start loading on Start.
func NewGame(scene config.Scene, source ModelSource, logger *zap.Logger) *Game {
	if source == nil {
		panic("model source cannot be nil")
	}

	ecs := entity.NewECS()
	sched := scheduler.New()
	eventDispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(scene.Seed)

	g := &Game{
		Scene:           scene,
		ECS:             ecs,
		Scheduler:       sched,
		EventDispatcher: eventDispatcher,
		Registry:        NewRegistry(ecs, sched, eventDispatcher, source, scene, logger),
		Tracker:         input.NewTracker(config.ScreenWidth, config.ScreenHeight),
		Rng:             rng,
		Camera:          toVec3(scene.Camera.Position),
		CameraTarget:    toVec3(scene.Camera.Target),
		logger:          logger,
	}
	g.TrajectorySystem = system.NewTrajectorySystem(ecs, eventDispatcher, logger, scene.Trajectory.HalfGravity)
	g.OutcomeSystem = system.NewOutcomeSystem(ecs, sched, eventDispatcher, rng, logger)
	g.CaptureSystem = system.NewCaptureSystem(ecs, eventDispatcher, logger)

	eventDispatcher.Subscribe(event.BallHit, g.OutcomeSystem)
	eventDispatcher.Subscribe(event.BallMissed, g.OutcomeSystem)
	eventDispatcher.Subscribe(event.CreatureCaptured, g.OutcomeSystem)

	eventDispatcher.SubscribeAll(&GameEventListener{game: g})

	return g
}

// GameEventListener keeps the HUD status and the debug log in sync with events.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	l.game.logger.Debug("event", zap.String("type", string(e.Type)))
	switch e.Type {
	case event.BallHit:
		l.game.lastOutcome = "hit!"
	case event.BallMissed:
		l.game.lastOutcome = "missed"
	case event.CreatureCaptured:
		l.game.lastOutcome = "captured!"
	case event.ThrowIgnored:
		l.game.lastOutcome = "drag to throw"
	case event.ThrowRejected:
		if reason, ok := e.Data.(string); ok {
			l.game.lastOutcome = reason
		}
	case event.AssetLoadFailed:
		if f, ok := e.Data.(AssetFailure); ok {
			l.game.lastOutcome = "failed to load " + string(f.Role)
		}
	case event.SceneReset:
		l.game.lastOutcome = ""
	}
}

// Start kicks off the first model load. Later calls do nothing.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.Registry.Load()
}

// Close releases models and stops background work.
func (g *Game) Close() {
	g.Registry.Close()
}

// Update progresses the game state by one frame. deltaTime is in seconds.
func (g *Game) Update(deltaTime float64) {
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	g.Step(time.Duration(deltaTime * float64(time.Second)))
}

// Step advances the scene by an exact duration: timers first, then the
// per-frame animations.
func (g *Game) Step(dt time.Duration) {
	g.Registry.Poll()
	g.gameTime += dt
	g.Scheduler.Advance(dt)
	g.TrajectorySystem.Update(dt)
	g.CaptureSystem.Update(dt)
}

// --- Input ---

// SetViewport tells the gesture tracker the pointer surface size.
func (g *Game) SetViewport(width, height float64) {
	g.Tracker.SetViewport(width, height)
}

func (g *Game) PointerDown(ev input.PointerEvent) {
	g.Tracker.Press(ev)
}

func (g *Game) PointerMove(ev input.PointerEvent) {
	if !g.Tracker.Move(ev) {
		return
	}
	// Визуальная обратная связь: мяч крутится, пока тянем
	if ball, ok := g.Registry.Ball(); ok {
		tr := g.ECS.Transforms[ball]
		tr.Rotation[0] = utils.NormalizeAngle(tr.Rotation[0] + config.DragSpinPerMove)
		tr.Rotation[1] = utils.NormalizeAngle(tr.Rotation[1] + config.DragSpinPerMove)
	}
}

func (g *Game) PointerUp(ev input.PointerEvent) {
	req, res := g.Tracker.Release(ev)
	switch res {
	case input.ReleaseClick:
		g.logger.Info("ball clicked without movement")
		g.EventDispatcher.Dispatch(event.Event{Type: event.ThrowIgnored})
	case input.ReleaseThrow:
		g.EventDispatcher.Dispatch(event.Event{Type: event.ThrowRequested, Data: req})
		if err := g.Throw(req); err != nil {
			g.logger.Info("throw rejected", zap.Error(err))
			g.EventDispatcher.Dispatch(event.Event{Type: event.ThrowRejected, Data: rejectReason(err)})
		}
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, system.ErrThrowInFlight):
		return "wait for the ball to land"
	case errors.Is(err, system.ErrMissingEntity):
		return "nothing to throw at"
	default:
		return err.Error()
	}
}

// Throw plans and launches a throw. It refuses while the ball is flying and
// when either model is missing or the creature is already being captured.
func (g *Game) Throw(req input.ThrowRequest) error {
	ball, ok := g.Registry.Ball()
	if !ok {
		return errors.Wrap(system.ErrMissingEntity, "ball")
	}
	creature, ok := g.Registry.Creature()
	if !ok {
		return errors.Wrap(system.ErrMissingEntity, "creature")
	}
	if _, capturing := g.ECS.CaptureSlides[creature]; capturing {
		return errors.Wrap(system.ErrMissingEntity, "creature is being captured")
	}
	if g.TrajectorySystem.InFlight(ball) {
		return system.ErrThrowInFlight
	}

	plan := system.PlanThrow(req, g.ECS.Transforms[ball].Position, g.Camera)
	g.logger.Debug("throw planned",
		zap.Float64("force", plan.Force),
		zap.Float64s("direction", plan.Direction[:]),
		zap.Float64s("target", plan.Target[:]))
	return g.TrajectorySystem.Launch(ball, creature, plan, g.Registry.Session())
}

// Reset clears and reloads both models. Anything still running from the
// previous session becomes a no-op.
func (g *Game) Reset() {
	g.Registry.Reset()
}

// --- Public Accessors ---

// Phase summarizes the scene for the HUD.
func (g *Game) Phase() Phase {
	if g.Registry.Loading() {
		return PhaseLoading
	}
	ball, ok := g.Registry.Ball()
	if !ok {
		return PhaseNoBall
	}
	if g.TrajectorySystem.InFlight(ball) {
		return PhaseInFlight
	}
	if len(g.ECS.CaptureSlides) > 0 {
		return PhaseCapturing
	}
	if _, ok := g.Registry.Creature(); !ok {
		return PhaseCaptured
	}
	return PhaseReady
}

// LastOutcome is the most recent message worth showing to the player.
func (g *Game) LastOutcome() string {
	return g.lastOutcome
}

// GameTime returns the total simulated time.
func (g *Game) GameTime() time.Duration {
	return g.gameTime
}

// Entity returns transform and model of a role, if present.
func (g *Game) Entity(role types.Role) (*component.Transform, *component.Model, bool) {
	var (
		id types.EntityID
		ok bool
	)
	switch role {
	case types.RoleBall:
		id, ok = g.Registry.Ball()
	case types.RoleCreature:
		id, ok = g.Registry.Creature()
	}
	if !ok {
		return nil, nil, false
	}
	return g.ECS.Transforms[id], g.ECS.Models[id], true
}
