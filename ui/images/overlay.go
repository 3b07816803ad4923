package images

import (
	"image"
	"image/color"
	"math"

	"github.com/soocke/snapfft-go/domain/geom"
)

// DrawLine draws a segment from a to b in panel coordinates with the given
// thickness. Pixels outside dst are skipped.
func DrawLine(dst *image.RGBA, a, b geom.Point, col color.RGBA, thickness int) {
	if dst == nil {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		plot(dst, int(math.Round(a.X)), int(math.Round(a.Y)), col, thickness)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		plot(dst, int(math.Round(a.X+dx*t)), int(math.Round(a.Y+dy*t)), col, thickness)
	}
}

// DrawRect outlines the rectangle with corners a and b.
func DrawRect(dst *image.RGBA, a, b geom.Point, col color.RGBA, thickness int) {
	DrawLine(dst, geom.Pt(a.X, a.Y), geom.Pt(b.X, a.Y), col, thickness)
	DrawLine(dst, geom.Pt(b.X, a.Y), geom.Pt(b.X, b.Y), col, thickness)
	DrawLine(dst, geom.Pt(b.X, b.Y), geom.Pt(a.X, b.Y), col, thickness)
	DrawLine(dst, geom.Pt(a.X, b.Y), geom.Pt(a.X, a.Y), col, thickness)
}

// DrawMarker draws a small cross centered on p.
func DrawMarker(dst *image.RGBA, p geom.Point, col color.RGBA, size int) {
	s := float64(size)
	DrawLine(dst, geom.Pt(p.X-s, p.Y), geom.Pt(p.X+s, p.Y), col, 1)
	DrawLine(dst, geom.Pt(p.X, p.Y-s), geom.Pt(p.X, p.Y+s), col, 1)
}

func plot(dst *image.RGBA, x, y int, col color.RGBA, thickness int) {
	half := thickness / 2
	b := dst.Bounds()
	for yy := y - half; yy < y-half+thickness; yy++ {
		for xx := x - half; xx < x-half+thickness; xx++ {
			if image.Pt(xx, yy).In(b) {
				dst.SetRGBA(xx, yy, col)
			}
		}
	}
}
