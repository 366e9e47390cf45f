// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatusIndicator — кружок состояния сцены с подписью справа.
// Pulse заставляет его ненадолго увеличиться.
type StatusIndicator struct {
	X, Y          float32
	Radius        float32
	FontSize      float32
	TextColor     rl.Color
	LastPulseTime time.Time
}

func NewStatusIndicator(x, y, radius, fontSize float32, textColor color.RGBA) *StatusIndicator {
	return &StatusIndicator{
		X:         x,
		Y:         y,
		Radius:    radius,
		FontSize:  fontSize,
		TextColor: textColor,
	}
}

// Draw отрисовывает индикатор
func (i *StatusIndicator) Draw(stateColor color.RGBA, label string, font rl.Font) {
	elapsed := time.Since(i.LastPulseTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	rl.DrawCircleV(rl.NewVector2(i.X, i.Y), currentRadius, stateColor)
	rl.DrawCircleLines(int32(i.X), int32(i.Y), currentRadius, rl.White)

	if label == "" {
		return
	}
	textSize := rl.MeasureTextEx(font, label, i.FontSize, 1)
	pos := rl.NewVector2(i.X+i.Radius*2, i.Y-textSize.Y/2)
	rl.DrawTextEx(font, label, pos, i.FontSize, 1, i.TextColor)
}

// Pulse запускает анимацию отклика.
func (i *StatusIndicator) Pulse() {
	i.LastPulseTime = time.Now()
}
