// internal/entity/ecs.go
package entity

import (
	"go-ball-capture/internal/component"
	"go-ball-capture/internal/types"
)

type ECS struct {
	NextID        types.EntityID
	Transforms    map[types.EntityID]*component.Transform
	Models        map[types.EntityID]*component.Model
	Trajectories  map[types.EntityID]*component.Trajectory
	CaptureSlides map[types.EntityID]*component.CaptureSlide
	Particles     map[types.EntityID]*component.ParticleBurst
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Transforms:    make(map[types.EntityID]*component.Transform),
		Models:        make(map[types.EntityID]*component.Model),
		Trajectories:  make(map[types.EntityID]*component.Trajectory),
		CaptureSlides: make(map[types.EntityID]*component.CaptureSlide),
		Particles:     make(map[types.EntityID]*component.ParticleBurst),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Exists — у сущности есть позиция, т.е. она присутствует в сцене.
func (ecs *ECS) Exists(id types.EntityID) bool {
	_, ok := ecs.Transforms[id]
	return id != 0 && ok
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Transforms, id)
	delete(ecs.Models, id)
	delete(ecs.Trajectories, id)
	delete(ecs.CaptureSlides, id)
	delete(ecs.Particles, id)
}

// Clear удаляет все сущности, но не сбрасывает счётчик идентификаторов.
func (ecs *ECS) Clear() {
	for id := range ecs.Transforms {
		ecs.RemoveEntity(id)
	}
	for id := range ecs.Particles {
		ecs.RemoveEntity(id)
	}
}
