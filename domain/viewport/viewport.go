// Package viewport tracks the visible window of a raster inside a display
// panel and maps panel pixels to raster coordinates.
package viewport

import (
	"image"
	"math"

	"github.com/soocke/snapfft-go/domain/geom"
)

// DefaultZoomFactor is applied per wheel step.
const DefaultZoomFactor = 1.2

// Direction of a wheel step.
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

func (d Direction) String() string {
	if d == ZoomIn {
		return "in"
	}
	if d == ZoomOut {
		return "out"
	}
	return "none"
}

// Viewport is the visible window [X0,X1) x [Y0,Y1) over a raster of size
// W x H. The zero value has no content.
type Viewport struct {
	W, H           int
	X0, X1, Y0, Y1 float64
}

// New returns a viewport showing the whole w x h raster.
func New(w, h int) Viewport {
	v := Viewport{W: w, H: h}
	v.Reset()
	return v
}

// Empty reports whether the viewport has no content.
func (v Viewport) Empty() bool { return v.W <= 0 || v.H <= 0 }

// Reset shows the whole raster again.
func (v *Viewport) Reset() {
	v.X0, v.Y0 = 0, 0
	v.X1, v.Y1 = float64(v.W), float64(v.H)
}

// ZoomAt scales the visible window about anchor p by factor (ZoomIn) or
// 1/factor (ZoomOut). The anchor keeps its position on screen.
func (v *Viewport) ZoomAt(p geom.Point, dir Direction, factor float64) {
	if v.Empty() || dir == 0 || !(factor > 0) || factor == 1 {
		return
	}
	s := factor
	if dir == ZoomOut {
		s = 1 / factor
	}
	v.X0 = p.X - (p.X-v.X0)/s
	v.X1 = p.X + (v.X1-p.X)/s
	v.Y0 = p.Y - (p.Y-v.Y0)/s
	v.Y1 = p.Y + (v.Y1-p.Y)/s
}

// Zoom returns the magnification relative to the full raster.
func (v Viewport) Zoom() float64 {
	if v.Empty() || v.X1 <= v.X0 {
		return 1
	}
	return float64(v.W) / (v.X1 - v.X0)
}

// Fit places the visible window inside a panel of pw x ph pixels, keeping
// square pixels and centering it. It returns the panel pixels per raster
// unit and the panel offset of the window's top-left corner.
func (v Viewport) Fit(pw, ph int) (scale float64, off geom.Point) {
	vw, vh := v.X1-v.X0, v.Y1-v.Y0
	if v.Empty() || vw <= 0 || vh <= 0 || pw <= 0 || ph <= 0 {
		return 0, geom.Point{}
	}
	scale = math.Min(float64(pw)/vw, float64(ph)/vh)
	off = geom.Pt((float64(pw)-vw*scale)/2, (float64(ph)-vh*scale)/2)
	return scale, off
}

// ToRaster maps panel pixel (px, py) to raster coordinates. ok is false when
// the pixel lies outside the drawn window or outside the raster itself.
func (v Viewport) ToRaster(px, py float64, pw, ph int) (geom.Point, bool) {
	scale, off := v.Fit(pw, ph)
	if scale == 0 {
		return geom.Point{}, false
	}
	p := geom.Pt(v.X0+(px-off.X)/scale, v.Y0+(py-off.Y)/scale)
	if p.X < v.X0 || p.X >= v.X1 || p.Y < v.Y0 || p.Y >= v.Y1 {
		return p, false
	}
	return p, v.Contains(p)
}

// ToPanel maps raster coordinates to panel pixels.
func (v Viewport) ToPanel(p geom.Point, pw, ph int) geom.Point {
	scale, off := v.Fit(pw, ph)
	return geom.Pt(off.X+(p.X-v.X0)*scale, off.Y+(p.Y-v.Y0)*scale)
}

// Contains reports whether p lies on the raster.
func (v Viewport) Contains(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(v.W) && p.Y < float64(v.H)
}

// Bounds returns the raster bounds.
func (v Viewport) Bounds() image.Rectangle { return image.Rect(0, 0, v.W, v.H) }
