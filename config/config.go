package config

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"strings"

	"github.com/soocke/snapfft-go/domain/colormap"
	"github.com/soocke/snapfft-go/domain/tone"
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds runtime configuration for calibration, display defaults and
// app behavior. Fields may be loaded from a JSON file and overridden by
// command-line flags.
type Config struct {
	Debug     bool   `json:"debug"`
	LogFormat string `json:"log_format"`
	DarkMode  bool   `json:"dark_mode"`

	// Calibration defaults
	UnitsPerPixel float64 `json:"units_per_pixel"`
	UnitName      string  `json:"unit_name"`

	// Display defaults per view
	SpatialTone       tone.Params `json:"spatial_tone"`
	FrequencyTone     tone.Params `json:"frequency_tone"`
	SpatialColormap   string      `json:"spatial_colormap"`
	FrequencyColormap string      `json:"frequency_colormap"`

	// Interaction
	ZoomFactor       float64 `json:"zoom_factor"`
	MinSelectionSpan int     `json:"min_selection_span"`

	// Panel size in screen pixels
	PanelWidth  int `json:"panel_width"`
	PanelHeight int `json:"panel_height"`

	// Last snap region in screen pixels; zero size means none.
	SnapX int `json:"snap_x"`
	SnapY int `json:"snap_y"`
	SnapW int `json:"snap_w"`
	SnapH int `json:"snap_h"`

	// LastDir is the directory of the last opened image.
	LastDir string `json:"last_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		LogFormat:         LogFormatJSON,
		UnitsPerPixel:     1.0,
		UnitName:          "units",
		SpatialTone:       tone.DefaultParams(),
		FrequencyTone:     tone.DefaultParams(),
		SpatialColormap:   colormap.Gray,
		FrequencyColormap: colormap.Gray,
		ZoomFactor:        1.2,
		MinSelectionSpan:  5,
		PanelWidth:        480,
		PanelHeight:       480,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != LogFormatConsole {
		c.LogFormat = LogFormatJSON
	}
	if !(c.UnitsPerPixel > 0) || math.IsInf(c.UnitsPerPixel, 0) {
		c.UnitsPerPixel = 1.0
	}
	c.UnitName = strings.TrimSpace(c.UnitName)
	if c.UnitName == "" {
		c.UnitName = "units"
	}
	c.SpatialTone = c.SpatialTone.Clamp()
	c.FrequencyTone = c.FrequencyTone.Clamp()
	if !colormap.Known(c.SpatialColormap) {
		c.SpatialColormap = colormap.Gray
	}
	if !colormap.Known(c.FrequencyColormap) {
		c.FrequencyColormap = colormap.Gray
	}
	if !(c.ZoomFactor > 1) || c.ZoomFactor > 4 {
		c.ZoomFactor = 1.2
	}
	if c.MinSelectionSpan < 1 {
		c.MinSelectionSpan = 5
	}
	if c.PanelWidth < 100 {
		c.PanelWidth = 480
	}
	if c.SnapW < 0 || c.SnapH < 0 {
		c.SnapW, c.SnapH = 0, 0
	}
	if c.PanelHeight < 100 {
		c.PanelHeight = 480
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
