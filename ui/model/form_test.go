package model

import (
	"errors"
	"testing"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/tone"
)

func TestToneSliders_CoverToneRanges(t *testing.T) {
	if len(ToneSliders) != 3 {
		t.Fatalf("expected 3 sliders, got %d", len(ToneSliders))
	}
	want := map[string][2]float64{
		"Brightness": {tone.MinBrightness, tone.MaxBrightness},
		"Contrast":   {tone.MinContrast, tone.MaxContrast},
		"Gamma":      {tone.MinGamma, tone.MaxGamma},
	}
	for _, s := range ToneSliders {
		r, ok := want[s.Name]
		if !ok || s.From != r[0] || s.To != r[1] {
			t.Fatalf("slider %s: %v..%v", s.Name, s.From, s.To)
		}
	}
}

func TestToneSlider_ApplySnapsAndClamps(t *testing.T) {
	prev := tone.Params{Brightness: 10, Contrast: 1.5, Gamma: 2}
	brightness, contrast, gamma := ToneSliders[0], ToneSliders[1], ToneSliders[2]

	got, ok := brightness.Apply(prev, " -20.4 ")
	if !ok || got != (tone.Params{Brightness: -20, Contrast: 1.5, Gamma: 2}) {
		t.Fatalf("brightness: %+v %v", got, ok)
	}
	got, ok = contrast.Apply(prev, "2.3456")
	if !ok || got.Contrast != 2.3 || got.Brightness != 10 {
		t.Fatalf("contrast: %+v %v", got, ok)
	}
	got, _ = gamma.Apply(prev, "0.01")
	if got.Gamma != tone.MinGamma {
		t.Fatalf("gamma below range: %v", got.Gamma)
	}
	if got, ok := contrast.Apply(prev, "abc"); ok || got != prev {
		t.Fatalf("bad input accepted: %+v", got)
	}
}

func TestToneSlider_Format(t *testing.T) {
	if s := ToneSliders[0].Format(-20); s != "-20" {
		t.Fatalf("brightness %q", s)
	}
	if s := ToneSliders[2].Format(ToneSliders[2].Value(tone.DefaultParams())); s != "1.0" {
		t.Fatalf("gamma %q", s)
	}
}

func TestParseCalibration(t *testing.T) {
	c, err := ParseCalibration("0.05", " nm ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.UnitsPerPixel != 0.05 || c.UnitName != "nm" {
		t.Fatalf("got %+v", c)
	}
	if _, err := ParseCalibration("x", "nm"); !errors.Is(err, ErrInvalidCalibration) {
		t.Fatalf("expected ErrInvalidCalibration, got %v", err)
	}
}

func TestDisplayModel_WriteTo(t *testing.T) {
	m := NewDisplayModel(nil)
	m.SetColormap(interaction.ViewFrequency, "magma")
	m.SetTone(interaction.ViewSpatial, tone.Params{Brightness: 3, Contrast: 2, Gamma: 1})
	if err := m.SetCalibration(measure.Calibration{UnitsPerPixel: 0.2, UnitName: "nm"}); err != nil {
		t.Fatalf("calibration: %v", err)
	}
	cfg := config.DefaultConfig()
	m.WriteTo(cfg)
	if cfg.FrequencyColormap != "magma" || cfg.SpatialTone.Contrast != 2 || cfg.UnitsPerPixel != 0.2 || cfg.UnitName != "nm" {
		t.Fatalf("config not updated: %+v", cfg)
	}
	m.WriteTo(nil)
}
