// internal/component/effects.go
package component

import (
	"image/color"
	"time"

	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"

	"github.com/go-gl/mathgl/mgl64"
)

// CaptureSlide тянет существо к мячу.
type CaptureSlide struct {
	From     mgl64.Vec3
	To       mgl64.Vec3
	Elapsed  time.Duration
	Duration time.Duration
	Ball     types.EntityID // мяч, в который втягивается существо
	Session  *scheduler.Session
}

// ParticleBurst — облако частиц в точке удара.
type ParticleBurst struct {
	Points []mgl64.Vec3
	Color  color.RGBA
	Size   float64
}
