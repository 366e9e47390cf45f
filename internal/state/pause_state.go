// internal/state/pause_state.go
package state

import (
	"go-ball-capture/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает сцену: игровые часы стоят, таймеры не срабатывают.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
	font          rl.Font
}

func NewPauseState(sm *StateMachine, prevState *GameState, font rl.Font) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		font:          font,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw() {
	s.previousState.Draw()

	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), rl.NewColor(0, 0, 0, 128))

	pauseText := "PAUSED"
	fontSize := float32(config.HUDFontSize * 2)
	textSize := rl.MeasureTextEx(s.font, pauseText, fontSize, 1)
	pos := rl.NewVector2(
		(float32(rl.GetScreenWidth())-textSize.X)/2,
		(float32(rl.GetScreenHeight())-textSize.Y)/2,
	)
	rl.DrawTextEx(s.font, pauseText, pos, fontSize, 1, rl.White)
}

func (s *PauseState) Exit() {}

// Cleanup делегирует очистку игровому состоянию.
func (s *PauseState) Cleanup() {
	s.previousState.Cleanup()
}
