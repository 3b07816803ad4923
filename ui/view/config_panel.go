package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/colormap"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/tone"
	"github.com/soocke/snapfft-go/ui/model"
	"github.com/soocke/snapfft-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsHandlers apply edited settings. Each returns the value actually
// stored so the form can show clamped or defaulted input.
type SettingsHandlers struct {
	Tone        func(view interaction.ViewID, p tone.Params) tone.Params
	Colormap    func(view interaction.ViewID, name string) string
	Calibration func(cal measure.Calibration) error
	// Persist is called on Apply, Return and colormap selection. Slider
	// moves and keystrokes only update the live settings.
	Persist func()
}

// ConfigPanel encapsulates the calibration and display settings form.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	ApplyChanges()
}

type toneFields struct {
	sliders  []*TScaleWidget
	values   []*LabelWidget
	colormap *TComboboxWidget
}

type configPanel struct {
	cfg     *config.Config
	logger  *slog.Logger
	h       SettingsHandlers
	scale   *TextWidget
	unit    *TextWidget
	tones   map[interaction.ViewID]*toneFields
	current map[interaction.ViewID]tone.Params
}

// NewConfigPanel creates the form seeded from cfg.
func NewConfigPanel(cfg *config.Config, h SettingsHandlers, logger *slog.Logger) ConfigPanel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &configPanel{
		cfg:    cfg,
		logger: logger,
		h:      h,
		tones:  make(map[interaction.ViewID]*toneFields),
		current: map[interaction.ViewID]tone.Params{
			interaction.ViewSpatial:   cfg.SpatialTone,
			interaction.ViewFrequency: cfg.FrequencyTone,
		},
	}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	label := func(text string) {
		Grid(Label(Txt(text), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	}
	field := func(text, value string) *TextWidget {
		label(text)
		w := Text(Height(1), Width(10))
		Grid(w, In(parent), Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		setText(w, value)
		// Calibration takes effect as it is typed.
		Bind(w, "<KeyRelease>", Command(func() { v.applyCalibration() }))
		Bind(w, "<Return>", Command(func(e *Event) {
			v.ApplyChanges()
			e.SetReturnCodeBreak() // keep the field single-line
		}))
		row++
		return w
	}
	heading := func(text string) {
		Grid(Label(Txt(text), Anchor("w")), In(parent), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
		row++
	}

	heading("Calibration")
	v.scale = field("Units / pixel", strconv.FormatFloat(v.cfg.UnitsPerPixel, 'g', -1, 64))
	v.unit = field("Unit name", v.cfg.UnitName)

	for _, view := range interaction.Views {
		heading(viewTitle(view) + " display")
		tf := &toneFields{}
		cur := v.current[view]
		for i, s := range model.ToneSliders {
			label(s.Name)
			var sc *TScaleWidget
			sc = TScale(Orient("horizontal"), From(s.From), To(s.To), Value(s.Value(cur)), Length(140),
				Command(func() { v.slide(view, i, sc) }))
			Grid(sc, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
			val := Label(Txt(s.Format(s.Value(cur))), Width(5), Anchor("e"))
			Grid(val, In(parent), Row(row), Column(2), Sticky("e"), Padx("0.4m"), Pady("0.15m"))
			tf.sliders = append(tf.sliders, sc)
			tf.values = append(tf.values, val)
			row++
		}
		label("Colormap")
		tf.colormap = TCombobox(Style(theme.StyleCombobox), Values(colormap.Names), Width(10))
		Grid(tf.colormap, In(parent), Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		tf.colormap.Current(colormapIndex(v.colormapOf(view)))
		Bind(tf.colormap, "<<ComboboxSelected>>", Command(func() { v.applyColormap(view) }))
		row++
		v.tones[view] = tf
	}

	applyBtn := Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(applyBtn, In(parent), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

// slide applies slider i of view as it moves.
func (v *configPanel) slide(view interaction.ViewID, i int, sc *TScaleWidget) {
	tf := v.tones[view]
	if tf == nil || sc == nil || v.h.Tone == nil {
		return
	}
	s := model.ToneSliders[i]
	p, ok := s.Apply(v.current[view], sc.Get())
	if !ok || p == v.current[view] {
		return
	}
	applied := v.h.Tone(view, p)
	v.current[view] = applied
	tf.values[i].Configure(Txt(s.Format(s.Value(applied))))
}

func (v *configPanel) colormapOf(view interaction.ViewID) string {
	if view == interaction.ViewFrequency {
		return v.cfg.FrequencyColormap
	}
	return v.cfg.SpatialColormap
}

func viewTitle(view interaction.ViewID) string {
	if view == interaction.ViewFrequency {
		return "FFT"
	}
	return "Original"
}

func colormapIndex(name string) int {
	for i, n := range colormap.Names {
		if n == name {
			return i
		}
	}
	return 0
}

func (v *configPanel) applyColormap(view interaction.ViewID) {
	tf := v.tones[view]
	if tf == nil || v.h.Colormap == nil {
		return
	}
	idx, err := strconv.Atoi(tf.colormap.Current(nil))
	if err != nil || idx < 0 || idx >= len(colormap.Names) {
		if v.logger != nil {
			v.logger.Error("colormap selection parse error", "error", err)
		}
		return
	}
	v.h.Colormap(view, colormap.Names[idx])
	if v.h.Persist != nil {
		v.h.Persist()
	}
}

// ApplyChanges applies the calibration fields and persists the settings.
// Tone and colormap changes apply as they are made.
func (v *configPanel) ApplyChanges() {
	if v.applyCalibration() && v.h.Persist != nil {
		v.h.Persist()
	}
}

// applyCalibration hands the parsed fields to the handler. Incomplete input
// such as an empty field or a lone "0." is logged and left for the next key.
func (v *configPanel) applyCalibration() bool {
	if v.h.Calibration == nil {
		return false
	}
	cal, err := model.ParseCalibration(text(v.scale), text(v.unit))
	if err == nil {
		err = v.h.Calibration(cal)
	}
	if err != nil {
		if v.logger != nil {
			v.logger.Debug("calibration not applied", "error", err)
		}
		return false
	}
	return true
}

func text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func setText(w *TextWidget, value string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", value)
}
