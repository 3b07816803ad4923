package model

import (
	"errors"
	"strings"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/colormap"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/tone"
)

// ErrInvalidCalibration is returned for a non-positive or non-finite factor.
var ErrInvalidCalibration = errors.New("units per pixel must be a positive number")

// ViewSettings is how one panel is rendered.
type ViewSettings struct {
	Tone     tone.Params
	Colormap string
}

// DisplayModel holds the per-view render settings and the calibration
// inputs. It is decoupled from the UI. The zero value is not usable; call
// NewDisplayModel.
type DisplayModel struct {
	spatial     ViewSettings
	frequency   ViewSettings
	calibration measure.Calibration
}

// NewDisplayModel seeds the model from configuration defaults. cfg may be nil.
func NewDisplayModel(cfg *config.Config) *DisplayModel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &DisplayModel{calibration: measure.DefaultCalibration()}
	m.SetTone(interaction.ViewSpatial, cfg.SpatialTone)
	m.SetTone(interaction.ViewFrequency, cfg.FrequencyTone)
	m.SetColormap(interaction.ViewSpatial, cfg.SpatialColormap)
	m.SetColormap(interaction.ViewFrequency, cfg.FrequencyColormap)
	_ = m.SetCalibration(measure.Calibration{UnitsPerPixel: cfg.UnitsPerPixel, UnitName: cfg.UnitName})
	return m
}

func (m *DisplayModel) view(v interaction.ViewID) *ViewSettings {
	switch v {
	case interaction.ViewSpatial:
		return &m.spatial
	case interaction.ViewFrequency:
		return &m.frequency
	}
	return nil
}

// Settings returns the settings of view v.
func (m *DisplayModel) Settings(v interaction.ViewID) ViewSettings {
	if m == nil {
		return ViewSettings{Tone: tone.DefaultParams(), Colormap: colormap.Gray}
	}
	if s := m.view(v); s != nil {
		return *s
	}
	return ViewSettings{Tone: tone.DefaultParams(), Colormap: colormap.Gray}
}

// SetTone stores clamped params for view v and returns what was stored.
func (m *DisplayModel) SetTone(v interaction.ViewID, p tone.Params) tone.Params {
	p = p.Clamp()
	if m == nil {
		return p
	}
	if s := m.view(v); s != nil {
		s.Tone = p
	}
	return p
}

// SetColormap stores the colormap for view v, falling back to gray for
// unknown names, and returns the stored name.
func (m *DisplayModel) SetColormap(v interaction.ViewID, name string) string {
	name = colormap.Lookup(strings.TrimSpace(name)).Name()
	if m == nil {
		return name
	}
	if s := m.view(v); s != nil {
		s.Colormap = name
	}
	return name
}

// Calibration returns the current calibration inputs.
func (m *DisplayModel) Calibration() measure.Calibration {
	if m == nil {
		return measure.DefaultCalibration()
	}
	return m.calibration
}

// SetCalibration replaces the calibration. An invalid factor is rejected and
// the previous calibration kept. An empty unit name becomes "units".
func (m *DisplayModel) SetCalibration(c measure.Calibration) error {
	if m == nil {
		return nil
	}
	if !c.Valid() {
		return ErrInvalidCalibration
	}
	c.UnitName = strings.TrimSpace(c.UnitName)
	if c.UnitName == "" {
		c.UnitName = measure.DefaultCalibration().UnitName
	}
	m.calibration = c
	return nil
}

// WriteTo copies the current settings into cfg so they persist as the next
// session's defaults.
func (m *DisplayModel) WriteTo(cfg *config.Config) {
	if m == nil || cfg == nil {
		return
	}
	cfg.SpatialTone = m.spatial.Tone
	cfg.FrequencyTone = m.frequency.Tone
	cfg.SpatialColormap = m.spatial.Colormap
	cfg.FrequencyColormap = m.frequency.Colormap
	cfg.UnitsPerPixel = m.calibration.UnitsPerPixel
	cfg.UnitName = m.calibration.UnitName
}
