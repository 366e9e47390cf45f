package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestTopDownProject(t *testing.T) {
	p := TopDown{Width: 80, Height: 24, UnitX: 6, UnitZ: 3}

	x, y := p.Project(mgl64.Vec3{})
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 12.0, y)

	// Height does not move the point.
	x, y = p.Project(mgl64.Vec3{1, 5, 2})
	assert.Equal(t, 46.0, x)
	assert.Equal(t, 18.0, y)
}

func TestTopDownSquare(t *testing.T) {
	p := TopDown{Width: 1280, Height: 720, UnitX: 60, UnitZ: 60}

	x0, y0, x1, y1 := p.Square(10)
	assert.Equal(t, 340.0, x0)
	assert.Equal(t, 60.0, y0)
	assert.Equal(t, 940.0, x1)
	assert.Equal(t, 660.0, y1)
}
