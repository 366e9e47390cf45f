// internal/component/transform.go
package component

import "github.com/go-gl/mathgl/mgl64"

// Transform — положение сущности в мире.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // радианы, порядок XYZ
	Scale    float64
}
