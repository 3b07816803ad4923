package viewport

import (
	"math"
	"testing"

	"github.com/soocke/snapfft-go/domain/geom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestZoomAt_AnchorIsFixed(t *testing.T) {
	v := New(100, 50)
	anchor := geom.Pt(30, 20)
	before := v.ToPanel(anchor, 400, 200)
	v.ZoomAt(anchor, ZoomIn, DefaultZoomFactor)
	after := v.ToPanel(anchor, 400, 200)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Fatalf("anchor moved on screen: %v -> %v", before, after)
	}
	if !near(v.X1-v.X0, 100/1.2) || !near(v.Y1-v.Y0, 50/1.2) {
		t.Fatalf("visible extent: %v x %v", v.X1-v.X0, v.Y1-v.Y0)
	}
	if !near(v.X0, 30-30/1.2) || !near(v.X1, 30+70/1.2) {
		t.Fatalf("x limits: %v %v", v.X0, v.X1)
	}
}

func TestZoomAt_InThenOutRestores(t *testing.T) {
	v := New(64, 64)
	p := geom.Pt(10, 50)
	v.ZoomAt(p, ZoomIn, 1.2)
	v.ZoomAt(p, ZoomIn, 1.2)
	v.ZoomAt(p, ZoomOut, 1.2)
	v.ZoomAt(p, ZoomOut, 1.2)
	if !near(v.X0, 0) || !near(v.X1, 64) || !near(v.Y0, 0) || !near(v.Y1, 64) {
		t.Fatalf("limits not restored: %+v", v)
	}
	if !near(v.Zoom(), 1) {
		t.Fatalf("zoom: %v", v.Zoom())
	}
}

func TestZoomAt_IgnoresDegenerate(t *testing.T) {
	var empty Viewport
	empty.ZoomAt(geom.Pt(1, 1), ZoomIn, 1.2)
	if empty != (Viewport{}) {
		t.Fatalf("empty viewport changed: %+v", empty)
	}
	v := New(10, 10)
	v.ZoomAt(geom.Pt(1, 1), 0, 1.2)
	v.ZoomAt(geom.Pt(1, 1), ZoomIn, 0)
	if v != New(10, 10) {
		t.Fatalf("degenerate zoom changed viewport: %+v", v)
	}
}

func TestReset(t *testing.T) {
	v := New(20, 10)
	v.ZoomAt(geom.Pt(5, 5), ZoomIn, 2)
	v.Reset()
	if v != New(20, 10) {
		t.Fatalf("reset: %+v", v)
	}
}

func TestToRaster_Letterbox(t *testing.T) {
	// 100x50 raster in a 200x200 panel: scale 2, 50px bands top and bottom
	v := New(100, 50)
	scale, off := v.Fit(200, 200)
	if scale != 2 || off.X != 0 || off.Y != 50 {
		t.Fatalf("fit: scale=%v off=%v", scale, off)
	}
	p, ok := v.ToRaster(20, 60, 200, 200)
	if !ok || p != geom.Pt(10, 5) {
		t.Fatalf("inside: %v %v", p, ok)
	}
	if _, ok := v.ToRaster(20, 10, 200, 200); ok {
		t.Fatalf("letterbox band must be outside")
	}
	back := v.ToPanel(geom.Pt(10, 5), 200, 200)
	if back != geom.Pt(20, 60) {
		t.Fatalf("round trip: %v", back)
	}
}

func TestToRaster_ZoomedOutBeyondRaster(t *testing.T) {
	v := New(10, 10)
	v.ZoomAt(geom.Pt(5, 5), ZoomOut, 2) // window [-5,15)
	if _, ok := v.ToRaster(5, 5, 100, 100); ok {
		t.Fatalf("point left of the raster must be rejected")
	}
	p, ok := v.ToRaster(50, 50, 100, 100)
	if !ok || !near(p.X, 5) || !near(p.Y, 5) {
		t.Fatalf("center: %v %v", p, ok)
	}
}
