// pkg/render/projection.go
package render

import "github.com/go-gl/mathgl/mgl64"

// TopDown looks straight down the y axis and maps world x/z onto a flat
// surface centered on the origin. UnitX and UnitZ are surface units per world
// unit; terminal cells are about twice as tall as wide, pixels are square.
type TopDown struct {
	Width, Height float64
	UnitX, UnitZ  float64
}

// Project returns the surface position of a world point. Height is dropped.
func (p TopDown) Project(v mgl64.Vec3) (float64, float64) {
	return p.Width/2 + v.X()*p.UnitX, p.Height/2 + v.Z()*p.UnitZ
}

// Square returns the surface rectangle covered by a centered square of the
// given world size lying on the ground.
func (p TopDown) Square(size float64) (x0, y0, x1, y1 float64) {
	half := size / 2
	x0, y0 = p.Project(mgl64.Vec3{-half, 0, -half})
	x1, y1 = p.Project(mgl64.Vec3{half, 0, half})
	return x0, y0, x1, y1
}
