package app

import (
	"image"
	"log/slog"

	"github.com/soocke/snapfft-go/assets"
	"github.com/soocke/snapfft-go/config"
	"github.com/soocke/snapfft-go/debug"
	"github.com/soocke/snapfft-go/domain/capture"
	"github.com/soocke/snapfft-go/domain/clipboard"
	"github.com/soocke/snapfft-go/domain/imagestore"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/spectrum"
	"github.com/soocke/snapfft-go/ui/model"
	"github.com/soocke/snapfft-go/ui/presenter"
	"github.com/soocke/snapfft-go/ui/view"
)

// AppContainer assembles models, domain services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *imagestore.Store
	Engine   *spectrum.Engine
	Measurer *measure.Measurer
	Coord    *interaction.Coordinator
	Display  *model.DisplayModel
	Screen   capture.Screen
	RootView *view.RootView

	// Presenters
	Analysis     *presenter.AnalysisPresenter
	FSMPresenter *presenter.FSMPresenter
}

// BuildContainer constructs all components. No Tk widgets are created here;
// RootView.Build runs later on the Tk thread.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Display = model.NewDisplayModel(cfg)
	c.Store = imagestore.New(logger)
	c.Engine = spectrum.NewEngine(logger)
	c.Measurer = measure.NewMeasurer(c.Display.Calibration(), logger)
	var spectra interaction.SpectrumSource = c.Engine
	if cfg.Debug {
		spectra = memLoggingEngine{Engine: c.Engine, logger: logger}
	}
	c.Coord = interaction.NewCoordinator(c.Store, spectra, c.Measurer, nil, interaction.Options{
		MinSelectionSpan: cfg.MinSelectionSpan,
		ZoomFactor:       cfg.ZoomFactor,
		Calibration:      c.Display.Calibration,
	}, logger)
	c.Store.OnReplace(c.Coord.ImageReplaced)

	// View
	c.RootView = view.NewRootView(cfg, logger)

	// Presenters
	c.Analysis = presenter.NewAnalysisPresenter(presenter.AnalysisDeps{
		Store:       c.Store,
		Spectra:     c.Engine,
		Interaction: c.Coord,
		Model:       c.Display,
		View:        c.RootView,
		Clipboard:   clipboard.System{},
		Screen:      c.Screen,
		Sample:      assets.SampleLatticeImage,
		Logger:      logger,
	})
	c.Coord.SetSink(c.Analysis)
	c.FSMPresenter = presenter.NewFSMPresenter(c.RootView)
	c.Coord.AddListener(c.FSMPresenter.OnState)
	if cfg.Debug {
		c.Store.OnReplace(func(*imagestore.Image) { debug.LogMemory(logger, "image loaded") })
	}
	return c
}

// memLoggingEngine logs process memory after every spectrum computation.
type memLoggingEngine struct {
	*spectrum.Engine
	logger *slog.Logger
}

func (e memLoggingEngine) Compute(gray *image.Gray, region image.Rectangle) (*spectrum.Spectrum, error) {
	s, err := e.Engine.Compute(gray, region)
	if err == nil {
		debug.LogMemory(e.logger, "spectrum computed")
	}
	return s, err
}
