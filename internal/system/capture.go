// internal/system/capture.go
package system

import (
	"time"

	"go-ball-capture/internal/entity"
	"go-ball-capture/internal/event"
	"go-ball-capture/internal/utils"

	"go.uber.org/zap"
)

// CaptureSystem slides captured creatures into the ball and removes them.
type CaptureSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	logger          *zap.Logger
}

func NewCaptureSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, logger *zap.Logger) *CaptureSystem {
	return &CaptureSystem{ecs: ecs, eventDispatcher: eventDispatcher, logger: logger}
}

// Update обновляет все активные захваты.
func (s *CaptureSystem) Update(deltaTime time.Duration) {
	for id, slide := range s.ecs.CaptureSlides {
		tr, ok := s.ecs.Transforms[id]
		if !ok || !slide.Session.Live() {
			delete(s.ecs.CaptureSlides, id)
			continue
		}

		slide.Elapsed += deltaTime
		t := 1.0
		if slide.Duration > 0 {
			t = utils.Clamp01(float64(slide.Elapsed) / float64(slide.Duration))
		}
		tr.Position = utils.LerpVec3(slide.From, slide.To, t)

		if t >= 1 {
			s.ecs.RemoveEntity(id)
			s.logger.Info("creature captured", zap.Uint64("creature", uint64(id)))
			s.eventDispatcher.Dispatch(event.Event{Type: event.CreatureCaptured, Data: CaptureInfo{
				Creature: id,
				Ball:     slide.Ball,
				Session:  slide.Session,
			}})
		}
	}
}
