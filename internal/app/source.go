package app

import (
	"context"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/modeldata"
	"go-ball-capture/internal/types"
)

// ModelSource loads the two models. Fetch runs on a worker goroutine and may
// only touch the filesystem; Upload and Release run on the main thread.
type ModelSource interface {
	Fetch(ctx context.Context, role types.Role, spec config.ModelSpec) error
	Upload(role types.Role, spec config.ModelSpec) ([]*component.MeshNode, error)
	Release(role types.Role)
}

// ProceduralSource builds models without any files. The terminal and headless
// frontends use it.
type ProceduralSource struct{}

func (ProceduralSource) Fetch(ctx context.Context, _ types.Role, _ config.ModelSpec) error {
	return ctx.Err()
}

func (ProceduralSource) Upload(role types.Role, spec config.ModelSpec) ([]*component.MeshNode, error) {
	albedo := config.CreatureColor
	if role == types.RoleBall {
		albedo = config.BallColor
	}
	nodes := spec.Nodes
	if nodes <= 0 {
		nodes = 1
	}
	return modeldata.Procedural(string(role), nodes, albedo), nil
}

func (ProceduralSource) Release(types.Role) {}
