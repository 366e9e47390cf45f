package app

import (
	"context"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrAssetLoad wraps every model fetch or upload failure.
var ErrAssetLoad = errors.New("asset load failed")

// AssetFailure is the payload of event.AssetLoadFailed.
type AssetFailure struct {
	Role types.Role
	Path string
	Err  error
}

type fetchResult struct {
	role types.Role
	spec config.ModelSpec
	err  error
}

type loadBatch struct {
	session *scheduler.Session
	results []fetchResult
}

// Registry owns the creature and the ball: it loads them, hands out their ids
// and tears them down on reset. Each load belongs to a session; resetting
// cancels the session so nothing scheduled against the old entities runs.
type Registry struct {
	ecs             *entity.ECS
	scheduler       *scheduler.Scheduler
	eventDispatcher *event.Dispatcher
	source          ModelSource
	scene           config.Scene
	logger          *zap.Logger

	session    *scheduler.Session
	cancelLoad context.CancelFunc
	loading    bool
	pending    chan loadBatch
	ids        map[types.Role]types.EntityID
}

func NewRegistry(ecs *entity.ECS, sched *scheduler.Scheduler, eventDispatcher *event.Dispatcher, source ModelSource, scene config.Scene, logger *zap.Logger) *Registry {
	return &Registry{
		ecs:             ecs,
		scheduler:       sched,
		eventDispatcher: eventDispatcher,
		source:          source,
		scene:           scene,
		logger:          logger,
		session:         scheduler.NewSession(),
		pending:         make(chan loadBatch, 4),
		ids:             make(map[types.Role]types.EntityID),
	}
}

// Session returns the live session of the current load.
func (r *Registry) Session() *scheduler.Session {
	return r.session
}

// Loading reports whether a load is still in progress.
func (r *Registry) Loading() bool {
	return r.loading
}

// Ball returns the ball's id if it is in the scene.
func (r *Registry) Ball() (types.EntityID, bool) {
	return r.lookup(types.RoleBall)
}

// Creature returns the creature's id if it is in the scene.
func (r *Registry) Creature() (types.EntityID, bool) {
	return r.lookup(types.RoleCreature)
}

func (r *Registry) lookup(role types.Role) (types.EntityID, bool) {
	id, ok := r.ids[role]
	if !ok || !r.ecs.Exists(id) {
		return 0, false
	}
	return id, true
}

func (r *Registry) specs() []fetchResult {
	return []fetchResult{
		{role: types.RoleCreature, spec: r.scene.Creature},
		{role: types.RoleBall, spec: r.scene.Ball},
	}
}

// Load fetches both models concurrently in the background. Call Poll every
// frame (or Await) to put them into the scene.
func (r *Registry) Load() {
	if r.cancelLoad != nil {
		r.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancelLoad = cancel
	r.loading = true

	session := r.session
	results := r.specs()
	go func() {
		var g errgroup.Group
		for i := range results {
			g.Go(func() error {
				results[i].err = r.source.Fetch(ctx, results[i].role, results[i].spec)
				return results[i].err
			})
		}
		if err := g.Wait(); err != nil {
			r.logger.Debug("model fetch finished with errors", zap.Error(err))
		}

		select {
		case r.pending <- loadBatch{session: session, results: results}:
		case <-ctx.Done():
		}
	}()
}

// Poll applies finished loads without blocking.
func (r *Registry) Poll() {
	for {
		select {
		case batch := <-r.pending:
			r.apply(batch)
		default:
			return
		}
	}
}

// Await blocks until the current load has been applied.
func (r *Registry) Await(ctx context.Context) error {
	for r.loading {
		select {
		case batch := <-r.pending:
			r.apply(batch)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (r *Registry) apply(batch loadBatch) {
	if batch.session != r.session || !batch.session.Live() {
		r.logger.Debug("dropping models of a cancelled session")
		return
	}
	r.loading = false

	loaded := 0
	for _, res := range batch.results {
		if err := r.materialize(res); err != nil {
			r.logger.Error("failed to load model",
				zap.String("role", string(res.role)),
				zap.String("path", res.spec.Path),
				zap.Error(err))
			r.eventDispatcher.Dispatch(event.Event{Type: event.AssetLoadFailed, Data: AssetFailure{
				Role: res.role,
				Path: res.spec.Path,
				Err:  err,
			}})
			continue
		}
		loaded++
	}

	r.logger.Info("scene loaded", zap.Int("models", loaded), zap.String("session", r.session.ID()))
	r.eventDispatcher.Dispatch(event.Event{Type: event.SceneLoaded, Data: loaded})
}

func (r *Registry) materialize(res fetchResult) error {
	if res.err != nil {
		return errors.Wrapf(ErrAssetLoad, "fetch %s: %v", res.spec.Path, res.err)
	}
	nodes, err := r.source.Upload(res.role, res.spec)
	if err != nil {
		return errors.Wrapf(ErrAssetLoad, "upload %s: %v", res.spec.Path, err)
	}

	id := r.ecs.NewEntity()
	r.ecs.Transforms[id] = &component.Transform{
		Position: toVec3(res.spec.Position),
		Rotation: toVec3(res.spec.Rotation),
		Scale:    res.spec.Scale,
	}
	r.ecs.Models[id] = &component.Model{Key: string(res.role), Nodes: nodes}
	r.ids[res.role] = id
	return nil
}

// Reset clears both entities along with every effect, invalidates the
// session and loads the models again.
func (r *Registry) Reset() {
	r.scheduler.Cancel(r.session)
	if r.cancelLoad != nil {
		r.cancelLoad()
		r.cancelLoad = nil
	}

	for role := range r.ids {
		r.source.Release(role)
	}
	r.ids = make(map[types.Role]types.EntityID)
	r.ecs.Clear()

	r.session = scheduler.NewSession()
	r.logger.Info("scene reset", zap.String("session", r.session.ID()))
	r.eventDispatcher.Dispatch(event.Event{Type: event.SceneReset})
	r.Load()
}

// Close stops any background load and releases the models.
func (r *Registry) Close() {
	if r.cancelLoad != nil {
		r.cancelLoad()
	}
	r.scheduler.Cancel(r.session)
	for role := range r.ids {
		r.source.Release(role)
	}
}

func toVec3(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
