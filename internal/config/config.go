// internal/config/config.go
package config

import (
	"image/color"
	"math"
	"time"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TargetFPS    = 60
	MaxDeltaTime = 0.06

	CameraFovy = 75.0

	// Бросок
	ThrowForceScale       = 5.0
	ThrowDuration         = 1000 * time.Millisecond
	InitialVerticalSpeed  = 10.0
	Gravity               = -9.8
	HitRadius             = 0.5
	SpinPerTick           = 0.1
	DragSpinPerMove       = 0.1
	CaptureSlideDuration  = 1000 * time.Millisecond
	HighlightDuration     = 500 * time.Millisecond
	HighlightIntensity    = 0.8
	ParticleCount         = 20
	ParticleSpread        = 0.5 // полный размер куба, ±0.25 по каждой оси
	ParticleSize          = 0.1
	ParticleLifetime      = 500 * time.Millisecond
	BlinkInterval         = 200 * time.Millisecond
	BlinkDuration         = 2000 * time.Millisecond
	PlaneSize             = 10.0
	PlaneHeight           = 0.3
	PlaneShadowAlpha      = 128 // тень с непрозрачностью 0.5
	ResetButtonWidth      = 120
	ResetButtonHeight     = 40
	ResetButtonMargin     = 16
	HUDFontSize           = 20
	TerminalCellsPerUnitX = 6.0
	TerminalCellsPerUnitZ = 3.0
	TopDownPixelsPerUnit  = 60.0
)

var (
	BackgroundColor   = color.RGBA{24, 40, 28, 255}
	PlaneColor        = color.RGBA{0, 0, 0, PlaneShadowAlpha}
	HighlightColor    = color.RGBA{255, 215, 0, 255} // 0xffd700
	ParticleColor     = color.RGBA{255, 69, 0, 204}  // 0xff4500, opacity 0.8
	BlinkAlertColor   = color.RGBA{255, 0, 0, 255}
	BlinkNeutralColor = color.RGBA{0, 0, 0, 255}
	HUDTextColor      = color.RGBA{240, 240, 240, 255}
	CreatureColor     = color.RGBA{235, 120, 40, 255}
	BallColor         = color.RGBA{220, 30, 30, 255}

	CreatureSpawnRotationY = math.Pi
	BallSpawnRotationY     = 4.0
)
