package model

import (
	"errors"
	"math"
	"testing"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/tone"
)

func TestDisplayModel_SeededFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FrequencyColormap = "inferno"
	cfg.FrequencyTone = tone.Params{Brightness: 5, Contrast: 2, Gamma: 0.5}
	cfg.UnitsPerPixel = 0.1
	cfg.UnitName = "nm"
	m := NewDisplayModel(cfg)
	if s := m.Settings(interaction.ViewFrequency); s.Colormap != "inferno" || s.Tone != cfg.FrequencyTone {
		t.Fatalf("frequency settings: %+v", s)
	}
	if s := m.Settings(interaction.ViewSpatial); s.Colormap != "gray" || !s.Tone.IsIdentity() {
		t.Fatalf("spatial settings: %+v", s)
	}
	if c := m.Calibration(); c.UnitsPerPixel != 0.1 || c.UnitName != "nm" {
		t.Fatalf("calibration: %+v", c)
	}
}

func TestDisplayModel_ViewsAreIndependent(t *testing.T) {
	m := NewDisplayModel(nil)
	got := m.SetTone(interaction.ViewSpatial, tone.Params{Brightness: 500, Contrast: 1, Gamma: 1})
	if got.Brightness != tone.MaxBrightness {
		t.Fatalf("tone not clamped: %+v", got)
	}
	if !m.Settings(interaction.ViewFrequency).Tone.IsIdentity() {
		t.Fatalf("frequency tone changed")
	}
	if name := m.SetColormap(interaction.ViewFrequency, "rainbow"); name != "gray" {
		t.Fatalf("unknown colormap stored as %q", name)
	}
	// unknown view is ignored
	m.SetColormap(interaction.ViewNone, "jet")
	if m.Settings(interaction.ViewNone).Colormap != "gray" {
		t.Fatalf("ViewNone should report defaults")
	}
}

func TestDisplayModel_SetCalibration(t *testing.T) {
	m := NewDisplayModel(nil)
	if err := m.SetCalibration(measure.Calibration{UnitsPerPixel: 2, UnitName: "  "}); err != nil {
		t.Fatal(err)
	}
	if c := m.Calibration(); c.UnitsPerPixel != 2 || c.UnitName != "units" {
		t.Fatalf("calibration: %+v", c)
	}
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := m.SetCalibration(measure.Calibration{UnitsPerPixel: f, UnitName: "nm"}); !errors.Is(err, ErrInvalidCalibration) {
			t.Fatalf("%v: expected ErrInvalidCalibration, got %v", f, err)
		}
	}
	if c := m.Calibration(); c.UnitsPerPixel != 2 {
		t.Fatalf("invalid input replaced calibration: %+v", c)
	}
}

func TestDisplayModel_NilSafe(t *testing.T) {
	var m *DisplayModel
	_ = m.Settings(interaction.ViewSpatial)
	_ = m.SetTone(interaction.ViewSpatial, tone.DefaultParams())
	_ = m.SetColormap(interaction.ViewSpatial, "jet")
	if m.Calibration() != measure.DefaultCalibration() {
		t.Fatalf("nil model calibration")
	}
	if err := m.SetCalibration(measure.DefaultCalibration()); err != nil {
		t.Fatal(err)
	}
}
