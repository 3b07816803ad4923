package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/soocke/snapfft-go/domain/geom"
	"github.com/soocke/snapfft-go/domain/viewport"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	bg    = color.RGBA{1, 2, 3, 255}
)

func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := black
			if x >= 2 {
				c = red
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderViewport_FullView(t *testing.T) {
	out := RenderViewport(quadrants(), viewport.New(4, 4), 8, 8, bg)
	if out.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if out.RGBAAt(1, 1) != black || out.RGBAAt(6, 6) != red {
		t.Fatalf("pixels %v %v", out.RGBAAt(1, 1), out.RGBAAt(6, 6))
	}
}

func TestRenderViewport_Letterbox(t *testing.T) {
	out := RenderViewport(quadrants(), viewport.New(4, 4), 8, 16, bg)
	if out.RGBAAt(4, 1) != bg {
		t.Fatalf("letterbox band should keep background, got %v", out.RGBAAt(4, 1))
	}
	if out.RGBAAt(1, 6) != black {
		t.Fatalf("content misplaced, got %v", out.RGBAAt(1, 6))
	}
}

func TestRenderViewport_Zoomed(t *testing.T) {
	vp := viewport.New(4, 4)
	vp.ZoomAt(geom.Pt(4, 2), viewport.ZoomIn, 2) // window x in [2,4)
	out := RenderViewport(quadrants(), vp, 8, 8, bg)
	if out.RGBAAt(0, 4) != red || out.RGBAAt(7, 4) != red {
		t.Fatalf("expected only the red half, got %v %v", out.RGBAAt(0, 4), out.RGBAAt(7, 4))
	}
}

func TestRenderViewport_EmptyGivesBackground(t *testing.T) {
	out := RenderViewport(nil, viewport.Viewport{}, 3, 2, bg)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if out.RGBAAt(x, y) != bg {
				t.Fatalf("pixel (%d,%d) = %v", x, y, out.RGBAAt(x, y))
			}
		}
	}
}

func TestDrawLine(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawLine(dst, geom.Pt(1, 1), geom.Pt(8, 8), red, 1)
	for i := 1; i <= 8; i++ {
		if dst.RGBAAt(i, i) != red {
			t.Fatalf("diagonal pixel %d not set", i)
		}
	}
	if dst.RGBAAt(8, 1) == red {
		t.Fatalf("off-line pixel set")
	}
	// partially outside must not panic
	DrawLine(dst, geom.Pt(-5, 5), geom.Pt(20, 5), red, 3)
	if dst.RGBAAt(0, 4) != red || dst.RGBAAt(9, 6) != red {
		t.Fatalf("thick line missing pixels")
	}
}

func TestDrawRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawRect(dst, geom.Pt(2, 2), geom.Pt(7, 6), red, 1)
	for _, p := range []image.Point{{2, 2}, {7, 2}, {7, 6}, {2, 6}, {4, 2}, {2, 4}} {
		if dst.RGBAAt(p.X, p.Y) != red {
			t.Fatalf("outline pixel %v not set", p)
		}
	}
	if dst.RGBAAt(4, 4) == red {
		t.Fatalf("interior filled")
	}
}

func TestEncodePNG(t *testing.T) {
	data := EncodePNG(quadrants())
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}

func TestStretchGray_FillsFullRange(t *testing.T) {
	g := image.NewGray(image.Rect(3, 3, 7, 4))
	copy(g.Pix[g.PixOffset(3, 3):], []uint8{10, 20, 30, 40})
	out := StretchGray(g)
	if out.Bounds() != image.Rect(0, 0, 4, 1) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	// (v-10)/30*256 binned: 0, 85, 170, top bin
	want := []uint8{0, 85, 170, 255}
	for i, w := range want {
		if out.Pix[i] != w {
			t.Fatalf("pixel %d: got %d want %d", i, out.Pix[i], w)
		}
	}
}

func TestStretchGray_ConstantMapsToZero(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range g.Pix {
		g.Pix[i] = 77
	}
	for i, v := range StretchGray(g).Pix {
		if v != 0 {
			t.Fatalf("pixel %d: %d", i, v)
		}
	}
}

func TestStretchDense_SmallRangeSpreads(t *testing.T) {
	// a spectrum that tone maps into a narrow dark band
	m := mat.NewDense(2, 2, []float64{1.5, 1.75, 2, 2.5})
	out := StretchDense(m)
	want := []uint8{0, 64, 128, 255}
	for i, w := range want {
		if out.Pix[i] != w {
			t.Fatalf("pixel %d: got %d want %d", i, out.Pix[i], w)
		}
	}
	if StretchDense(nil) != nil {
		t.Fatalf("nil matrix should give nil")
	}
}

func TestToGray_UsesLuma(t *testing.T) {
	out := ToGray(quadrants())
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if out.GrayAt(0, 0).Y != 0 {
		t.Fatalf("black became %d", out.GrayAt(0, 0).Y)
	}
	if y := out.GrayAt(3, 0).Y; y != color.GrayModel.Convert(red).(color.Gray).Y {
		t.Fatalf("red became %d", y)
	}
}
