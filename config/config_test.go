package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/snapfft-go/domain/tone"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapfft.json")
	cfg := DefaultConfig()
	cfg.UnitsPerPixel = 0.25
	cfg.UnitName = "nm"
	cfg.FrequencyColormap = "inferno"
	cfg.FrequencyTone = tone.Params{Brightness: 10, Contrast: 2, Gamma: 0.5}
	cfg.LastDir = "/data"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults on error")
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		LogFormat:         "CONSOLE",
		UnitsPerPixel:     -3,
		SpatialTone:       tone.Params{Brightness: 999, Contrast: 0, Gamma: 10},
		SpatialColormap:   "rainbow",
		FrequencyColormap: "magma",
		ZoomFactor:        0.5,
		PanelWidth:        10,
	}
	_ = cfg.Validate()
	if cfg.LogFormat != LogFormatConsole {
		t.Fatalf("log format %q", cfg.LogFormat)
	}
	if cfg.UnitsPerPixel != 1 || cfg.UnitName != "units" {
		t.Fatalf("calibration not reset: %v %q", cfg.UnitsPerPixel, cfg.UnitName)
	}
	if cfg.SpatialTone != (tone.Params{Brightness: tone.MaxBrightness, Contrast: tone.MinContrast, Gamma: tone.MaxGamma}) {
		t.Fatalf("tone not clamped: %+v", cfg.SpatialTone)
	}
	if cfg.SpatialColormap != "gray" || cfg.FrequencyColormap != "magma" {
		t.Fatalf("colormaps: %q %q", cfg.SpatialColormap, cfg.FrequencyColormap)
	}
	if cfg.ZoomFactor != 1.2 || cfg.MinSelectionSpan != 5 || cfg.PanelWidth != 480 || cfg.PanelHeight != 480 {
		t.Fatalf("interaction defaults: %+v", cfg)
	}
}
