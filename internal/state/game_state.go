// internal/state/game_state.go
package state

import (
	"go-ball-capture/internal/app"
	"go-ball-capture/internal/assets"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/input"
	"go-ball-capture/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// GameState — основное состояние окна: ввод мыши, обновление сцены, отрисовка.
type GameState struct {
	sm          *StateMachine
	game        *app.Game
	models      *assets.ModelManager
	renderer    *SceneRenderer
	resetButton *ui.Button
	indicator   *ui.StatusIndicator
	font        rl.Font
	logger      *zap.Logger
	started     bool
}

func NewGameState(sm *StateMachine, game *app.Game, models *assets.ModelManager, renderer *SceneRenderer, font rl.Font, logger *zap.Logger) *GameState {
	gs := &GameState{
		sm:          sm,
		game:        game,
		models:      models,
		renderer:    renderer,
		resetButton: ui.NewResetButton(font, int32(rl.GetScreenWidth())),
		indicator: ui.NewStatusIndicator(
			config.ResetButtonMargin+10,
			config.ResetButtonMargin+config.ResetButtonHeight/2,
			10,
			config.HUDFontSize,
			config.HUDTextColor,
		),
		font:   font,
		logger: logger,
	}
	game.EventDispatcher.Subscribe(event.ThrowStarted, gs)
	return gs
}

// OnEvent пульсирует индикатором на каждом броске.
func (g *GameState) OnEvent(e event.Event) {
	if e.Type == event.ThrowStarted {
		g.indicator.Pulse()
	}
}

// layout переставляет кнопку и подгоняет фон под текущий размер окна.
func (g *GameState) layout() {
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	g.resetButton = ui.NewResetButton(g.font, int32(width))
	g.renderer.Resize(width, height)
	g.game.SetViewport(float64(width), float64(height))
}

// Game возвращает логику сцены.
func (g *GameState) Game() *app.Game {
	return g.game
}

func (g *GameState) Enter() {
	// Размер окна мог измениться, пока стояла пауза
	g.layout()
	if !g.started {
		g.game.Start()
		g.started = true
	}
}

func (g *GameState) Update(deltaTime float64) {
	if rl.IsWindowResized() {
		g.layout()
	}
	mousePos := rl.GetMousePosition()

	if g.resetButton.IsClicked(mousePos) || rl.IsKeyPressed(rl.KeyR) {
		g.logger.Info("reset requested")
		g.game.Reset()
		return
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.sm.SetState(NewPauseState(g.sm, g, g.font))
		return
	}

	g.handlePointer(mousePos)
	g.game.Update(deltaTime)
}

// handlePointer переводит состояние мыши raylib в события указателя.
// Нажатие на кнопку сброса жестом не считается.
func (g *GameState) handlePointer(mousePos rl.Vector2) {
	ev := input.PointerEvent{Button: input.ButtonPrimary, X: float64(mousePos.X), Y: float64(mousePos.Y)}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		if !g.resetButton.Contains(mousePos) {
			g.game.PointerDown(ev)
		}
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		g.game.PointerUp(ev)
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			g.game.PointerMove(ev)
		}
	}
}

func (g *GameState) Draw() {
	g.renderer.DrawBackground()
	g.renderer.DrawScene()
	g.DrawUI()
}

// DrawUI рисует кнопку сброса и строку состояния.
func (g *GameState) DrawUI() {
	mousePos := rl.GetMousePosition()
	g.resetButton.Draw(mousePos)
	g.indicator.Draw(g.game.Phase().Color(), g.game.StatusLine(), g.font)
}

func (g *GameState) Exit() {}

// Cleanup выгружает модели и фон.
func (g *GameState) Cleanup() {
	g.game.EventDispatcher.Unsubscribe(event.ThrowStarted, g)
	g.game.Close()
	g.models.Cleanup()
	g.renderer.Unload()
}
