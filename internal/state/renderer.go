// internal/state/renderer.go
package state

import (
	"image"
	"unsafe"

	"go-ball-capture/internal/app"
	"go-ball-capture/internal/assets"
	"go-ball-capture/internal/backdrop"
	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/types"
	"go-ball-capture/pkg/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// SceneRenderer рисует фон, плоскость тени, обе модели и частицы.
type SceneRenderer struct {
	game          *app.Game
	models        *assets.ModelManager
	camera        rl.Camera3D
	colors        render.SceneColors
	source        image.Image
	background    rl.Texture2D
	hasBackground bool
}

// NewSceneRenderer fits the background, if any, to the current window.
func NewSceneRenderer(game *app.Game, models *assets.ModelManager, background image.Image) *SceneRenderer {
	s := &SceneRenderer{
		game:   game,
		models: models,
		camera: rl.NewCamera3D(
			vec3(game.Camera),
			vec3(game.CameraTarget),
			rl.NewVector3(0, 1, 0),
			float32(game.Scene.Camera.Fovy),
			rl.CameraPerspective,
		),
		colors: render.SceneColors{
			BackgroundColor: config.BackgroundColor,
			PlaneColor:      config.PlaneColor,
			ParticleColor:   config.ParticleColor,
			HUDTextColor:    config.HUDTextColor,
		},
		source: background,
	}
	s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	return s
}

// Resize refits the background to the window, cropping instead of stretching.
func (s *SceneRenderer) Resize(width, height int) {
	if s.source == nil || width <= 0 || height <= 0 {
		return
	}
	if s.hasBackground && int(s.background.Width) == width && int(s.background.Height) == height {
		return
	}
	s.Unload()
	img := rl.NewImageFromImage(backdrop.Fit(s.source, width, height))
	s.background = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	s.hasBackground = s.background.ID > 0
}

// DrawBackground рисует фон в экранных координатах, до 3D-режима.
func (s *SceneRenderer) DrawBackground() {
	rl.ClearBackground(s.colors.BackgroundColor)
	if !s.hasBackground {
		return
	}
	src := rl.NewRectangle(0, 0, float32(s.background.Width), float32(s.background.Height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(s.background, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// DrawScene рисует 3D-часть кадра.
func (s *SceneRenderer) DrawScene() {
	rl.BeginMode3D(s.camera)
	defer rl.EndMode3D()

	rl.DrawPlane(rl.NewVector3(0, config.PlaneHeight, 0), rl.NewVector2(config.PlaneSize, config.PlaneSize), s.colors.PlaneColor)

	for _, role := range []types.Role{types.RoleCreature, types.RoleBall} {
		tr, model, ok := s.game.Entity(role)
		if !ok {
			continue
		}
		s.drawModel(role, tr, model)
	}

	for _, burst := range s.game.ECS.Particles {
		radius := float32(burst.Size / 2)
		for _, p := range burst.Points {
			rl.DrawSphere(vec3(p), radius, burst.Color)
		}
	}
}

// drawModel draws each mesh with the color of its current material, so the
// highlight and blink show without touching the GPU materials for good.
func (s *SceneRenderer) drawModel(role types.Role, tr *component.Transform, model *component.Model) {
	loaded, ok := s.models.Model(role)
	if !ok {
		// Процедурная модель: одна сфера на узел
		for i, node := range model.Nodes {
			offset := mgl64.Vec3{0, float64(i) * 0.15, 0}
			rl.DrawSphere(vec3(tr.Position.Add(offset)), float32(0.3*tr.Scale), render.Shade(*node.Material))
		}
		return
	}

	scale := float32(tr.Scale)
	matrix := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixScale(scale, scale, scale),
			rl.MatrixRotateXYZ(vec3(tr.Rotation)),
		),
		rl.MatrixTranslate(float32(tr.Position.X()), float32(tr.Position.Y()), float32(tr.Position.Z())),
	)
	matrix = rl.MatrixMultiply(loaded.Transform, matrix)

	meshes := unsafe.Slice(loaded.Meshes, loaded.MeshCount)
	materials := unsafe.Slice(loaded.Materials, loaded.MaterialCount)
	bindings := unsafe.Slice(loaded.MeshMaterial, loaded.MeshCount)
	for _, node := range model.Nodes {
		if node.Index >= len(meshes) {
			continue
		}
		idx := int(bindings[node.Index])
		if idx < 0 || idx >= len(materials) {
			continue
		}
		material := materials[idx]
		diffuse := material.GetMap(rl.MapDiffuse)
		original := diffuse.Color
		diffuse.Color = render.Shade(*node.Material)
		rl.DrawMesh(meshes[node.Index], material, matrix)
		diffuse.Color = original
	}
}

// Unload освобождает текстуру фона.
func (s *SceneRenderer) Unload() {
	if s.hasBackground {
		rl.UnloadTexture(s.background)
		s.hasBackground = false
	}
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}
