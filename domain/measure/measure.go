// Package measure converts pixel distances taken in the spatial and
// frequency views into calibrated physical quantities.
package measure

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/soocke/snapfft-go/domain/geom"
)

// ErrUndefinedReciprocal is returned when no region width is available to
// scale a frequency distance.
var ErrUndefinedReciprocal = errors.New("measure: reciprocal distance undefined")

// Lattice spacing is reported as LatticeConstant / reciprocal distance.
const (
	LatticeConstant = 20.0
	LatticeUnit     = "Å"
)

// Calibration relates raster pixels to physical units.
type Calibration struct {
	UnitsPerPixel float64
	UnitName      string
}

// DefaultCalibration is one unit per pixel.
func DefaultCalibration() Calibration {
	return Calibration{UnitsPerPixel: 1, UnitName: "units"}
}

// Valid reports whether the factor is a positive finite number.
func (c Calibration) Valid() bool {
	return c.UnitsPerPixel > 0 && !math.IsInf(c.UnitsPerPixel, 0)
}

// State is the calibration memory kept between measurements.
type State struct {
	UnitsPerPixel         float64
	UnitName              string
	LastRealDistance      float64
	HasLastRealDistance   bool
	LastSpatialCalibrated bool
}

// SpatialResult is a distance measured in the image view.
type SpatialResult struct {
	PixelDistance float64
	RealDistance  float64
	Unit          string
}

func (r SpatialResult) String() string {
	return fmt.Sprintf("The real distance is %.2f px | %.2f %s", r.PixelDistance, r.RealDistance, r.Unit)
}

// FrequencyResult is a distance measured in the spectrum view.
type FrequencyResult struct {
	PixelDistance      float64
	ReciprocalDistance float64
	Unit               string // reciprocal unit, e.g. "1/nm"
	Undefined          bool

	LatticeSpacing float64
	HasLattice     bool
}

func (r FrequencyResult) String() string {
	if r.Undefined {
		return fmt.Sprintf("The reciprocal distance is %.2f px | undefined", r.PixelDistance)
	}
	return fmt.Sprintf("The reciprocal distance is %.2f px | %.2f %s", r.PixelDistance, r.ReciprocalDistance, r.Unit)
}

// LatticeString renders the lattice spacing label, or "" when none applies.
func (r FrequencyResult) LatticeString() string {
	if !r.HasLattice {
		return ""
	}
	return fmt.Sprintf("%g/%.2f = %.2f %s", LatticeConstant, r.ReciprocalDistance, r.LatticeSpacing, LatticeUnit)
}

// Measurer performs measurements and owns the calibration State.
type Measurer struct {
	logger *slog.Logger
	state  State
}

func NewMeasurer(cal Calibration, logger *slog.Logger) *Measurer {
	return &Measurer{logger: logger, state: State{UnitsPerPixel: cal.UnitsPerPixel, UnitName: cal.UnitName}}
}

// State returns a copy of the calibration memory.
func (m *Measurer) State() State { return m.state }

// MeasureSpatial converts the segment p0-p1 of the image view.
func (m *Measurer) MeasureSpatial(p0, p1 geom.Point, cal Calibration) SpatialResult {
	px := geom.Distance(p0, p1)
	res := SpatialResult{PixelDistance: px, RealDistance: px * cal.UnitsPerPixel, Unit: cal.UnitName}
	m.state.UnitsPerPixel = cal.UnitsPerPixel
	m.state.UnitName = cal.UnitName
	m.state.LastRealDistance = res.RealDistance
	m.state.HasLastRealDistance = true
	m.state.LastSpatialCalibrated = true
	if m.logger != nil {
		m.logger.Info("spatial measurement", "pixels", px, "distance", res.RealDistance, "unit", res.Unit)
	}
	return res
}

// MeasureFrequency converts the segment p0-p1 of the spectrum view. The
// reciprocal distance is pixels / (regionWidth * unitsPerPixel); a zero
// denominator yields an Undefined result together with
// ErrUndefinedReciprocal. The calibration state is not modified.
func (m *Measurer) MeasureFrequency(p0, p1 geom.Point, regionWidth int, cal Calibration) (FrequencyResult, error) {
	px := geom.Distance(p0, p1)
	res := FrequencyResult{PixelDistance: px, Unit: "1/" + cal.UnitName}
	denom := float64(regionWidth) * cal.UnitsPerPixel
	if regionWidth <= 0 || !(denom > 0) || math.IsInf(denom, 0) {
		res.Undefined = true
		if m.logger != nil {
			m.logger.Debug("frequency measurement undefined", "pixels", px, "region_width", regionWidth)
		}
		return res, ErrUndefinedReciprocal
	}
	res.ReciprocalDistance = px / denom
	if m.state.LastSpatialCalibrated && res.ReciprocalDistance != 0 {
		res.LatticeSpacing = LatticeConstant / res.ReciprocalDistance
		res.HasLattice = true
	}
	if m.logger != nil {
		m.logger.Info("frequency measurement", "pixels", px, "reciprocal", res.ReciprocalDistance, "unit", res.Unit, "lattice", res.LatticeSpacing)
	}
	return res, nil
}
