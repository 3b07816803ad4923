// Package geom holds the small float geometry shared by the analysis
// views: points in raster coordinates and region normalization.
package geom

import (
	"image"
	"math"
)

// Point is a position in raster (image or spectrum) coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// NormalizedRect returns the axis-aligned rectangle spanned by two corner
// points. Coordinates are truncated to integers, so the result does not
// depend on drag direction.
func NormalizedRect(a, b Point) image.Rectangle {
	return image.Rect(int(a.X), int(a.Y), int(b.X), int(b.Y)).Canon()
}
