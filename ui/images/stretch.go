package images

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ToGray converts img to luma with the standard gray model.
func ToGray(img image.Image) *image.Gray {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(g, g.Bounds(), img, b.Min, xdraw.Src)
	return g
}

// StretchGray spreads the occupied min..max range of g over 0..255.
// A constant raster maps to 0.
func StretchGray(g *image.Gray) *image.Gray {
	if g == nil {
		return nil
	}
	b := g.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return dst
	}
	lo, hi := uint8(255), uint8(0)
	for y := 0; y < b.Dy(); y++ {
		i := g.PixOffset(b.Min.X, b.Min.Y+y)
		for _, v := range g.Pix[i : i+b.Dx()] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	var lut [256]uint8
	for v := int(lo); v <= int(hi); v++ {
		lut[v] = bin(float64(v), float64(lo), float64(hi))
	}
	for y := 0; y < b.Dy(); y++ {
		si := g.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		out := dst.Pix[di : di+b.Dx()]
		for x, v := range g.Pix[si : si+b.Dx()] {
			out[x] = lut[v]
		}
	}
	return dst
}

// StretchDense quantizes m onto 256 levels spanning its own min..max.
func StretchDense(m *mat.Dense) *image.Gray {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	dst := image.NewGray(image.Rect(0, 0, c, r))
	if r == 0 || c == 0 {
		return dst
	}
	raw := m.RawMatrix()
	lo, hi := 0.0, 0.0
	for y := 0; y < r; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+c]
		rlo, rhi := floats.Min(row), floats.Max(row)
		if y == 0 || rlo < lo {
			lo = rlo
		}
		if y == 0 || rhi > hi {
			hi = rhi
		}
	}
	for y := 0; y < r; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+c]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+c]
		for x, v := range row {
			out[x] = bin(v, lo, hi)
		}
	}
	return dst
}

// bin places v in one of 256 equal-width bins over [lo, hi]; hi lands in
// the top bin.
func bin(v, lo, hi float64) uint8 {
	if !(hi > lo) {
		return 0
	}
	i := int((v - lo) / (hi - lo) * 256)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}
