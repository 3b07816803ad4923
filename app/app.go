package app

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	. "modernc.org/tk9.0"

	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/viewport"
	"github.com/soocke/snapfft-go/ui/theme"
	"github.com/soocke/snapfft-go/ui/view"
)

// Window chrome around the two image panels.
const (
	sideColumnWidth = 440
	chromeHeight    = 170
)

type app struct {
	cfgPath string
	logger  *slog.Logger
	c       *AppContainer
}

func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{cfgPath: cfgPath, logger: logger, c: BuildContainer(cfg, logger)}
	cfg = a.c.Config

	App.WmTitle(title)
	width := 2*cfg.PanelWidth + sideColumnWidth
	height := cfg.PanelHeight + chromeHeight
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, optionally loads initialImage and runs the Tk event
// loop until the window closes.
func (a *app) Start(initialImage string) {
	theme.SetDark(a.c.Config.DarkMode)
	p := a.c.Analysis
	a.c.RootView.Build(view.Handlers{
		OpenFile:      a.openFile,
		LoadSample:    func() { p.LoadSample() },
		Paste:         func() { p.Paste() },
		SnapScreen:    func() { p.SnapScreen() },
		SnapRegion:    func(r image.Rectangle) { p.SnapRegion(r) },
		ScreenBounds:  a.c.Screen.Bounds,
		CopySpatial:   func() { p.CopySpatial() },
		CopyFrequency: func() { p.CopyFrequency() },
		SelectRegion:  p.SelectRegion,
		DrawLine:      p.DrawLine,
		Cancel:        p.Cancel,
		ResetZoom:     p.ResetZoom,
		Exit:          a.exitHandler,
		Persist:       a.persist,
		Pointer:       a.pointerHandlers,
		Settings: view.SettingsHandlers{
			Tone:        p.SetTone,
			Colormap:    p.SetColormap,
			Calibration: p.SetCalibration,
			Persist:     a.persist,
		},
	})
	for _, v := range interaction.Views {
		p.Redraw(v)
	}
	if initialImage != "" {
		a.openFile(initialImage)
	}
	App.Wait()
}

func (a *app) pointerHandlers(v interaction.ViewID) view.PointerHandlers {
	p := a.c.Analysis
	return view.PointerHandlers{
		Press:   func(x, y int) { p.PointerPress(v, x, y) },
		Release: func(x, y int) { p.PointerRelease(v, x, y) },
		Motion:  func(x, y int) { p.PointerMotion(v, x, y) },
		Wheel:   func(x, y int, dir viewport.Direction) { p.PointerWheel(v, x, y, dir) },
	}
}

func (a *app) openFile(path string) {
	if !a.c.Analysis.LoadFile(path) {
		return
	}
	a.c.RootView.SetPath(path)
	if abs, err := filepath.Abs(path); err == nil {
		a.c.Config.LastDir = filepath.Dir(abs)
	}
	a.persist()
}

// persist writes the current display settings and calibration to the
// config file.
func (a *app) persist() {
	if a.cfgPath == "" {
		return
	}
	a.c.Display.WriteTo(a.c.Config)
	if err := a.c.Config.Save(a.cfgPath); err != nil {
		if a.logger != nil {
			a.logger.Error("config save failed", "error", err)
		}
		return
	}
	if a.logger != nil {
		a.logger.Debug("config saved", "path", a.cfgPath)
	}
}

func (a *app) exitHandler() {
	a.persist()
	Destroy(App)
}
