package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/soocke/snapfft-go/domain/viewport"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// RenderViewport draws the visible window of src into a new pw x ph panel
// raster filled with bg. Pixels are nearest-neighbour sampled so that
// zoomed-in rasters show crisp pixel blocks.
func RenderViewport(src image.Image, vp viewport.Viewport, pw, ph int, bg color.Color) *image.RGBA {
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	if src == nil || vp.Empty() {
		return dst
	}
	scale, off := vp.Fit(pw, ph)
	if scale == 0 {
		return dst
	}
	sb := src.Bounds()
	// raster (x,y) lands at off + (x - X0)*scale; src pixels are offset by sb.Min
	m := f64.Aff3{
		scale, 0, off.X - (vp.X0+float64(sb.Min.X))*scale,
		0, scale, off.Y - (vp.Y0+float64(sb.Min.Y))*scale,
	}
	xdraw.NearestNeighbor.Transform(dst, m, src, sb, xdraw.Over, nil)
	return dst
}
