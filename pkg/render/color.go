// pkg/render/color.go
package render

import (
	"image/color"

	"go-ball-capture/internal/component"
)

// SceneColors holds the fixed colors the renderers draw with.
type SceneColors struct {
	BackgroundColor color.RGBA
	PlaneColor      color.RGBA
	ParticleColor   color.RGBA
	HUDTextColor    color.RGBA
}

// Shade combines a material's albedo with its emissive color scaled by
// intensity. An emissive color with zero intensity counts fully, which is how
// the blink cue is shown on an unlit material.
func Shade(m component.Material) color.RGBA {
	intensity := m.EmissiveIntensity
	if intensity <= 0 {
		intensity = 1
	}
	add := func(base, glow uint8) uint8 {
		v := float64(base) + float64(glow)*intensity
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{
		R: add(m.Albedo.R, m.Emissive.R),
		G: add(m.Albedo.G, m.Emissive.G),
		B: add(m.Albedo.B, m.Emissive.B),
		A: m.Albedo.A,
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}
