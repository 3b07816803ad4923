package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/tone"
)

// ToneSlider describes one tone control: its range, the step it snaps to
// and which field of tone.Params it drives.
type ToneSlider struct {
	Name     string
	From, To float64
	// PerUnit is the number of steps per unit; 10 snaps to tenths.
	PerUnit  float64
	decimals int
	get      func(tone.Params) float64
	set      func(*tone.Params, float64)
}

// ToneSliders lists the controls in display order.
var ToneSliders = []ToneSlider{
	{
		Name: "Brightness", From: tone.MinBrightness, To: tone.MaxBrightness, PerUnit: 1,
		get: func(p tone.Params) float64 { return p.Brightness },
		set: func(p *tone.Params, v float64) { p.Brightness = v },
	},
	{
		Name: "Contrast", From: tone.MinContrast, To: tone.MaxContrast, PerUnit: 10, decimals: 1,
		get: func(p tone.Params) float64 { return p.Contrast },
		set: func(p *tone.Params, v float64) { p.Contrast = v },
	},
	{
		Name: "Gamma", From: tone.MinGamma, To: tone.MaxGamma, PerUnit: 10, decimals: 1,
		get: func(p tone.Params) float64 { return p.Gamma },
		set: func(p *tone.Params, v float64) { p.Gamma = v },
	},
}

// Value returns the field of p the slider drives.
func (s ToneSlider) Value(p tone.Params) float64 { return s.get(p) }

// Format renders v with the slider's precision.
func (s ToneSlider) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', s.decimals, 64)
}

// Apply reads a raw slider position on top of p, snapped to the slider's
// step and range. ok is false when raw is not a number.
func (s ToneSlider) Apply(p tone.Params, raw string) (tone.Params, bool) {
	v, ok := parseFloatField(raw)
	if !ok || math.IsNaN(v) {
		return p, false
	}
	v = math.Round(v*s.PerUnit) / s.PerUnit
	v = math.Max(s.From, math.Min(s.To, v))
	s.set(&p, v)
	return p, true
}

// ParseCalibration reads the calibration entry fields.
func ParseCalibration(unitsPerPixel, unitName string) (measure.Calibration, error) {
	v, ok := parseFloatField(unitsPerPixel)
	if !ok {
		return measure.Calibration{}, fmt.Errorf("%w: %q", ErrInvalidCalibration, strings.TrimSpace(unitsPerPixel))
	}
	return measure.Calibration{UnitsPerPixel: v, UnitName: strings.TrimSpace(unitName)}, nil
}

func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
