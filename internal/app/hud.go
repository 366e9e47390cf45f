package app

import (
	"fmt"
	"image/color"
)

var phaseColors = map[Phase]color.RGBA{
	PhaseLoading:   {128, 128, 128, 255},
	PhaseReady:     {40, 200, 90, 255},
	PhaseInFlight:  {240, 200, 40, 255},
	PhaseCapturing: {255, 215, 0, 255},
	PhaseCaptured:  {220, 30, 30, 255},
	PhaseNoBall:    {90, 90, 90, 255},
}

// Color is the indicator color of the phase.
func (p Phase) Color() color.RGBA {
	if c, ok := phaseColors[p]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

// StatusLine is the one-line HUD text: the phase, plus the latest outcome
// when there is one.
func (g *Game) StatusLine() string {
	if g.lastOutcome == "" {
		return string(g.Phase())
	}
	return fmt.Sprintf("%s · %s", g.Phase(), g.lastOutcome)
}
