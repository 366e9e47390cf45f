// Package backdrop loads the scene's background image and fits it to a
// viewport. It is shared by the window and terminal frontends.
package backdrop

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Load decodes a JPEG or PNG file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open background %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode background %s", path)
	}
	return img, nil
}

// Fit scales src to cover a width x height viewport, cropping the overflow
// evenly on both sides like CSS background-size: cover.
func Fit(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	sb := src.Bounds()
	if width <= 0 || height <= 0 || sb.Empty() {
		return dst
	}

	// Сравниваем пропорции без деления: sw/sh против width/height
	sw, sh := sb.Dx(), sb.Dy()
	crop := sb
	if sw*height > width*sh {
		w := sh * width / height
		x0 := sb.Min.X + (sw-w)/2
		crop = image.Rect(x0, sb.Min.Y, x0+w, sb.Max.Y)
	} else if sw*height < width*sh {
		h := sw * height / width
		y0 := sb.Min.Y + (sh-h)/2
		crop = image.Rect(sb.Min.X, y0, sb.Max.X, y0+h)
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

// Solid returns a width x height image filled with c. It stands in for a
// missing background file.
func Solid(c color.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return dst
}
