// Package tone implements the brightness/contrast/gamma curve applied to
// both display rasters. Every entry point is pure: the input raster is never
// modified and a freshly allocated result is returned.
package tone

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Input ranges offered by the controls.
const (
	MinBrightness = -100.0
	MaxBrightness = 100.0
	MinContrast   = 0.5
	MaxContrast   = 3.0
	MinGamma      = 0.1
	MaxGamma      = 3.0
)

// epsilon replaces degenerate contrast or gamma values.
const epsilon = 1e-3

// Params holds one view's tone settings.
type Params struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Gamma      float64 `json:"gamma"`
}

// DefaultParams returns the identity curve.
func DefaultParams() Params {
	return Params{Brightness: 0, Contrast: 1, Gamma: 1}
}

// Clamp restricts p to the control ranges. NaN fields fall back to the
// identity value for that field.
func (p Params) Clamp() Params {
	d := DefaultParams()
	p.Brightness = clampOr(p.Brightness, MinBrightness, MaxBrightness, d.Brightness)
	p.Contrast = clampOr(p.Contrast, MinContrast, MaxContrast, d.Contrast)
	p.Gamma = clampOr(p.Gamma, MinGamma, MaxGamma, d.Gamma)
	return p
}

// IsIdentity reports whether p leaves every 8-bit value unchanged.
func (p Params) IsIdentity() bool {
	return p.Brightness == 0 && p.Contrast == 1 && p.Gamma == 1
}

func clampOr(v, lo, hi, fallback float64) float64 {
	switch {
	case math.IsNaN(v):
		return fallback
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// sanitized guards the curve against division by zero and NaN propagation.
func (p Params) sanitized() Params {
	if math.IsNaN(p.Brightness) || math.IsInf(p.Brightness, 0) {
		p.Brightness = 0
	}
	if !(p.Contrast > 0) || math.IsInf(p.Contrast, 0) {
		p.Contrast = epsilon
	}
	if !(p.Gamma > 0) || math.IsInf(p.Gamma, 0) {
		p.Gamma = epsilon
	}
	return p
}

// Level maps a single intensity through the curve.
func (p Params) Level(v float64) uint8 {
	return p.sanitized().level(v)
}

func (p Params) level(v float64) uint8 {
	return uint8(math.Round(p.curve(v)))
}

func (p Params) curve(v float64) float64 {
	scaled := v*p.Contrast + p.Brightness
	n := scaled / 255
	if n < 0 || math.IsNaN(n) {
		n = 0
	} else if n > 1 {
		n = 1
	}
	g := math.Pow(n, 1/p.Gamma) * 255
	if g > 255 {
		g = 255
	} else if g < 0 {
		g = 0
	}
	return g
}

// lut returns the curve tabulated for all 8-bit inputs.
func (p Params) lut() *[256]uint8 {
	s := p.sanitized()
	var t [256]uint8
	for i := range t {
		t[i] = s.level(float64(i))
	}
	return &t
}

// ApplyGray maps every pixel of src through the curve.
func ApplyGray(src *image.Gray, p Params) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	t := p.lut()
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		row := src.Pix[si : si+b.Dx()]
		out := dst.Pix[di : di+b.Dx()]
		for x, v := range row {
			out[x] = t[v]
		}
	}
	return dst
}

// ApplyRGBA maps each color channel of src through the curve. Alpha is
// copied unchanged.
func ApplyRGBA(src *image.RGBA, p Params) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	t := p.lut()
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		row := src.Pix[si : si+4*b.Dx()]
		out := dst.Pix[di : di+4*b.Dx()]
		for i := 0; i < len(row); i += 4 {
			out[i] = t[row[i]]
			out[i+1] = t[row[i+1]]
			out[i+2] = t[row[i+2]]
			out[i+3] = row[i+3]
		}
	}
	return dst
}

// ApplyDense maps a real-valued raster (rows by columns) through the curve.
// Values are not pre-scaled: anything above 255 after contrast and
// brightness saturates.
func ApplyDense(src *mat.Dense, p Params) *image.Gray {
	if src == nil {
		return nil
	}
	r, c := src.Dims()
	dst := image.NewGray(image.Rect(0, 0, c, r))
	s := p.sanitized()
	raw := src.RawMatrix()
	for y := 0; y < r; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+c]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+c]
		for x, v := range row {
			out[x] = s.level(v)
		}
	}
	return dst
}

// CurveDense is ApplyDense without the 8-bit quantization. Spectra are
// stretched to the display range afterwards and keep their fine detail.
func CurveDense(src *mat.Dense, p Params) *mat.Dense {
	if src == nil {
		return nil
	}
	r, c := src.Dims()
	dst := mat.NewDense(r, c, nil)
	s := p.sanitized()
	raw := src.RawMatrix()
	out := dst.RawMatrix()
	for y := 0; y < r; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+c]
		dr := out.Data[y*out.Stride : y*out.Stride+c]
		for x, v := range row {
			dr[x] = s.curve(v)
		}
	}
	return dst
}
