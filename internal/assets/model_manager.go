package assets

import (
	"context"
	"image/color"
	"unsafe"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/modeldata"
	"go-ball-capture/internal/types"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ModelManager управляет загрузкой, кэшированием и выгрузкой 3D-моделей.
// Fetch проверяет файл в фоне, Upload и Release вызываются только из
// главного потока, где живёт контекст OpenGL.
type ModelManager struct {
	models map[types.Role]rl.Model
	logger *zap.Logger
}

// NewModelManager создает новый экземпляр ModelManager.
func NewModelManager(logger *zap.Logger) *ModelManager {
	return &ModelManager{
		models: make(map[types.Role]rl.Model),
		logger: logger,
	}
}

// Fetch checks that the model file exists and carries a glTF 2.0 binary header.
func (m *ModelManager) Fetch(ctx context.Context, role types.Role, spec config.ModelSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return modeldata.ValidateGLB(spec.Path)
}

// Upload loads the model into GPU memory and describes its meshes.
func (m *ModelManager) Upload(role types.Role, spec config.ModelSpec) (nodes []*component.MeshNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("raylib panicked while loading %s: %v", spec.Path, r)
		}
	}()

	m.Release(role)
	model := rl.LoadModel(spec.Path)
	if model.MeshCount == 0 {
		return nil, errors.Errorf("model %s has no meshes", spec.Path)
	}

	m.models[role] = model
	m.logger.Info("model loaded",
		zap.String("role", string(role)),
		zap.String("path", spec.Path),
		zap.Int32("meshes", model.MeshCount),
		zap.Int32("materials", model.MaterialCount))
	return modeldata.Nodes(string(role), meshMaterials(model)), nil
}

// meshMaterials reads the diffuse color of the material bound to each mesh.
func meshMaterials(model rl.Model) []component.Material {
	materials := unsafe.Slice(model.Materials, model.MaterialCount)
	bindings := unsafe.Slice(model.MeshMaterial, model.MeshCount)

	out := make([]component.Material, model.MeshCount)
	for i := range out {
		albedo := rl.White
		if idx := int(bindings[i]); idx >= 0 && idx < len(materials) {
			albedo = materials[idx].GetMap(rl.MapDiffuse).Color
		}
		out[i] = component.Material{Albedo: albedo, Emissive: color.RGBA{A: 255}}
	}
	return out
}

// Release выгружает модель роли, если она загружена.
func (m *ModelManager) Release(role types.Role) {
	model, ok := m.models[role]
	if !ok {
		return
	}
	rl.UnloadModel(model)
	delete(m.models, role)
}

// Cleanup выгружает все загруженные модели.
func (m *ModelManager) Cleanup() {
	for role := range m.models {
		m.Release(role)
	}
	m.logger.Debug("all models unloaded")
}

// Model возвращает загруженную модель роли.
func (m *ModelManager) Model(role types.Role) (rl.Model, bool) {
	model, ok := m.models[role]
	return model, ok
}
