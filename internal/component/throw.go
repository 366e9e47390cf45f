// internal/component/throw.go
package component

import (
	"time"

	"go-ball-capture/internal/scheduler"
	"go-ball-capture/internal/types"

	"github.com/go-gl/mathgl/mgl64"
)

// FlightPhase — состояние анимации броска.
type FlightPhase int

const (
	FlightIdle FlightPhase = iota
	FlightInFlight
	FlightHit
	FlightMissed
)

func (p FlightPhase) String() string {
	switch p {
	case FlightIdle:
		return "idle"
	case FlightInFlight:
		return "in-flight"
	case FlightHit:
		return "hit"
	case FlightMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// ThrowPlan — результат планировщика, потребляется аниматором.
type ThrowPlan struct {
	Direction mgl64.Vec3
	Force     float64
	Target    mgl64.Vec3
}

// Trajectory висит на мяче, пока он летит.
type Trajectory struct {
	Plan     ThrowPlan
	Start    mgl64.Vec3
	Elapsed  time.Duration
	Duration time.Duration
	TargetID types.EntityID
	Phase    FlightPhase
	Session  *scheduler.Session
}

// Progress returns the normalized time t = min(elapsed/duration, 1).
func (t *Trajectory) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(t.Elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}
