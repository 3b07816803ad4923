// Package spectrum computes the centered 2-D Fourier magnitude spectrum of a
// rectangular region of a grayscale raster.
package spectrum

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyRegion is returned when a region has no pixels inside the raster.
var ErrEmptyRegion = errors.New("spectrum: empty region")

// DisplayExponent compresses magnitudes for display.
const DisplayExponent = 0.25

// Spectrum is the transform of one region. Matrices are rows by columns and
// share the region's dimensions. Index (Height()/2, Width()/2) holds the zero
// frequency term.
type Spectrum struct {
	Region image.Rectangle
	Mean   float64
	// Magnitude is |FFT(region)| after the quadrant shift.
	Magnitude *mat.Dense
	// Display is |FFT(region - Mean)|^DisplayExponent after the shift.
	Display *mat.Dense
}

// Width returns the number of columns.
func (s *Spectrum) Width() int { return s.Region.Dx() }

// Height returns the number of rows.
func (s *Spectrum) Height() int { return s.Region.Dy() }

// Center returns the zero frequency position as (column, row).
func (s *Spectrum) Center() image.Point {
	return image.Pt(s.Width()/2, s.Height()/2)
}

// Bounds returns the spectrum raster bounds, origin (0,0).
func (s *Spectrum) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// Compute transforms region of gray. The region is canonicalized and clipped
// to the raster; an empty result yields ErrEmptyRegion.
func Compute(gray *image.Gray, region image.Rectangle) (*Spectrum, error) {
	if gray == nil {
		return nil, fmt.Errorf("%w: no image", ErrEmptyRegion)
	}
	r := region.Canon().Intersect(gray.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrEmptyRegion, region)
	}
	w, h := r.Dx(), r.Dy()

	vals := make([]float64, w*h)
	for y := 0; y < h; y++ {
		off := gray.PixOffset(r.Min.X, r.Min.Y+y)
		for x, v := range gray.Pix[off : off+w] {
			vals[y*w+x] = float64(v)
		}
	}
	mean := stat.Mean(vals, nil)

	data := make([]complex128, w*h)
	for i, v := range vals {
		data[i] = complex(v-mean, 0)
	}
	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)
	transform2D(data, w, h, rowFFT, colFFT)

	mag := mat.NewDense(h, w, nil)
	disp := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		sy := colFFT.ShiftIdx(y)
		for x := 0; x < w; x++ {
			a := cmplx.Abs(data[sy*w+rowFFT.ShiftIdx(x)])
			mag.Set(y, x, a)
			disp.Set(y, x, math.Pow(a, DisplayExponent))
		}
	}
	// Mean subtraction only suppresses the zero frequency term, so the
	// unsubtracted magnitude differs from it at the center alone.
	mag.Set(h/2, w/2, math.Abs(mean*float64(w*h)))

	return &Spectrum{Region: r, Mean: mean, Magnitude: mag, Display: disp}, nil
}

// transform2D applies the forward DFT in place, rows first.
func transform2D(data []complex128, w, h int, rowFFT, colFFT *fourier.CmplxFFT) {
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		rowFFT.Coefficients(row, row)
	}
	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		colFFT.Coefficients(col, col)
		for y := 0; y < h; y++ {
			data[y*w+x] = col[y]
		}
	}
}

// Engine caches the spectrum of the most recently committed region.
type Engine struct {
	logger  *slog.Logger
	current *Spectrum
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Compute runs Compute and caches the result. On error the cached spectrum
// is left untouched.
func (e *Engine) Compute(gray *image.Gray, region image.Rectangle) (*Spectrum, error) {
	s, err := Compute(gray, region)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("spectrum skipped", "region", region.String(), "error", err)
		}
		return nil, err
	}
	e.current = s
	if e.logger != nil {
		e.logger.Info("spectrum computed", "region", s.Region.String(), "width", s.Width(), "height", s.Height(), "mean", s.Mean)
	}
	return s, nil
}

// Current returns the cached spectrum or nil.
func (e *Engine) Current() *Spectrum { return e.current }

// Invalidate drops the cached spectrum.
func (e *Engine) Invalidate() {
	if e.current != nil && e.logger != nil {
		e.logger.Debug("spectrum invalidated", "region", e.current.Region.String())
	}
	e.current = nil
}
