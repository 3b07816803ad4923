package view

import (
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/imagestore"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/viewport"
	"github.com/soocke/snapfft-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view triggers.
type Handlers struct {
	OpenFile      func(path string)
	LoadSample    func()
	Paste         func()
	SnapScreen    func()
	SnapRegion    func(r image.Rectangle)
	ScreenBounds  func() (image.Rectangle, error)
	CopySpatial   func()
	CopyFrequency func()
	SelectRegion  func()
	DrawLine      func()
	Cancel        func()
	ResetZoom     func()
	Exit          func()
	Persist       func()
	Pointer       func(view interaction.ViewID) PointerHandlers
	Settings      SettingsHandlers
}

// RootView composes the top-level layout: toolbar, settings column, the
// two image panels and the status line.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger
	h      Handlers

	// Subviews
	Panels       map[interaction.ViewID]ImagePanel
	Measurements MeasurementLabels
	ConfigPanel  ConfigPanel
	Snap         SnapOverlay

	// Widgets
	ModeLabel   *LabelWidget
	HintLabel   *LabelWidget
	StatusLabel *LabelWidget
	pathEntry   *TextWidget
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, logger: logger, Panels: make(map[interaction.ViewID]ImagePanel)}
}

// Build constructs the layout and binds h.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.h = h
	pal := theme.CurrentPalette()

	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	button := func(text, bg string, fn func()) {
		if fn == nil {
			return
		}
		opts := []Opt{Txt(text), Command(fn)}
		if bg != "" {
			opts = append(opts, Background(bg), Foreground("white"))
		}
		Grid(Button(opts...), In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
	}
	button("Open Image...", pal.Primary, rv.openDialog)
	button("Load Sample", pal.Primary, h.LoadSample)
	button("Paste", pal.Primary, h.Paste)
	button("Snap Screen", pal.Primary, h.SnapScreen)
	if h.SnapRegion != nil {
		rv.Snap = NewSnapOverlay(rv.cfg, h.ScreenBounds, h.SnapRegion, h.Persist, rv.logger)
		button("Snap Region", pal.Primary, rv.Snap.OpenOrFocus)
	}
	button("Copy Original", "", h.CopySpatial)
	button("Copy FFT", "", h.CopyFrequency)
	button("Select Region", "", h.SelectRegion)
	button("Measure Line", "", h.DrawLine)
	button("Reset Zoom", "", h.ResetZoom)
	button("Cancel", pal.Danger, h.Cancel)
	button("Exit", "", h.Exit)

	// Row 1, column 0: path entry, modes, results, settings
	side := Frame()
	Grid(side, Row(1), Column(0), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	rv.pathEntry = Text(Height(1), Width(28))
	Grid(rv.pathEntry, In(side), Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	Grid(Button(Txt("Load Path"), Command(rv.loadPath)), In(side), Row(0), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	rv.ModeLabel = Label(Txt("Mode: Idle"), Anchor("w"), Background(pal.Accent), Foreground("white"), Borderwidth(1), Relief("groove"))
	Grid(rv.ModeLabel, In(side), Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.HintLabel = Label(Txt("Load an image to begin."), Anchor("w"), Foreground(pal.TextMuted), Width(44))
	Grid(rv.HintLabel, In(side), Row(2), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.1m"))
	rv.Measurements = NewMeasurementLabels(side, 3)
	rv.ConfigPanel = NewConfigPanel(rv.cfg, h.Settings, rv.logger)
	rv.ConfigPanel.Build(side, 6)

	// Row 1, column 1: image panels side by side
	panels := Frame()
	Grid(panels, Row(1), Column(1), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	bg := panelBackground(pal.Surface)
	for i, view := range interaction.Views {
		var hnd PointerHandlers
		if h.Pointer != nil {
			hnd = h.Pointer(view)
		}
		panel := NewImagePanel(panels, 0, i, rv.cfg.PanelWidth, rv.cfg.PanelHeight, viewTitle(view), bg, hnd)
		rv.Panels[view] = panel
		zoom := Frame()
		Grid(zoom, In(panels), Row(2), Column(i), Sticky("w"))
		if hnd.Wheel != nil {
			Grid(Button(Txt("Zoom +"), Command(func() { rv.zoom(view, hnd, viewport.ZoomIn) })), In(zoom), Row(0), Column(0), Padx("0.2m"))
			Grid(Button(Txt("Zoom -"), Command(func() { rv.zoom(view, hnd, viewport.ZoomOut) })), In(zoom), Row(0), Column(1), Padx("0.2m"))
		}
	}

	// Row 2: status
	rv.StatusLabel = Label(Txt("Ready"), Anchor("w"), Borderwidth(1), Relief("sunken"))
	Grid(rv.StatusLabel, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))

	if h.Cancel != nil {
		Bind(App, "<Escape>", Command(h.Cancel))
	}
}

// panelBackground is the empty-panel fill parsed from a palette hex color.
func panelBackground(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Black
	}
	return c
}

func (rv *RootView) zoom(view interaction.ViewID, hnd PointerHandlers, dir viewport.Direction) {
	x, y := rv.Panels[view].Hover()
	hnd.Wheel(x, y, dir)
}

func (rv *RootView) openDialog() {
	if rv.h.OpenFile == nil {
		return
	}
	files := GetOpenFile(Title("Open image"), Initialdir(rv.initialDir()))
	if len(files) == 0 || files[0] == "" {
		return
	}
	path := files[0]
	if !imagestore.IsSupportedFormat(path) && rv.logger != nil {
		rv.logger.Warn("unsupported image extension", "path", path)
	}
	setText(rv.pathEntry, path)
	rv.h.OpenFile(path)
}

func (rv *RootView) initialDir() string {
	if rv.cfg.LastDir != "" {
		return rv.cfg.LastDir
	}
	return "."
}

func (rv *RootView) loadPath() {
	if path := text(rv.pathEntry); path != "" && rv.h.OpenFile != nil {
		rv.h.OpenFile(filepath.Clean(path))
	}
}

// SetPath shows path in the path entry.
func (rv *RootView) SetPath(path string) {
	if rv != nil {
		setText(rv.pathEntry, path)
	}
}

// --- presenter.AnalysisView ---

func (rv *RootView) ShowPanel(view interaction.ViewID, img image.Image) {
	if rv == nil {
		return
	}
	if p, ok := rv.Panels[view]; ok {
		p.Show(img)
	}
}

func (rv *RootView) PanelSize(view interaction.ViewID) (int, int) {
	if rv != nil {
		if p, ok := rv.Panels[view]; ok {
			return p.Size()
		}
	}
	return 0, 0
}

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetSpatialMeasurement(text string) {
	if rv != nil && rv.Measurements != nil {
		rv.Measurements.SetSpatial(text)
	}
}

func (rv *RootView) SetFrequencyMeasurement(text string) {
	if rv != nil && rv.Measurements != nil {
		rv.Measurements.SetFrequency(text)
	}
}

func (rv *RootView) SetLattice(text string) {
	if rv != nil && rv.Measurements != nil {
		rv.Measurements.SetLattice(text)
	}
}

// --- presenter.ModeView ---

func (rv *RootView) SetModeLabel(text string) {
	if rv != nil && rv.ModeLabel != nil {
		rv.ModeLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetHint(text string) {
	if rv != nil && rv.HintLabel != nil {
		rv.HintLabel.Configure(Txt(text))
	}
}
