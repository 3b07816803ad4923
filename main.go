package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/snapfft-go/app"
	"github.com/soocke/snapfft-go/config"
)

func main() {
	cfgPath := flag.String("config", "snapfft.json", "path to the JSON config file")
	imagePath := flag.String("image", "", "image to open at startup")
	flag.Parse()
	if *imagePath == "" && flag.NArg() > 0 {
		*imagePath = flag.Arg(0)
	}

	cfg, cfgErr := config.Load(*cfgPath)

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level, cfg.LogFormat)
	if cfgErr != nil {
		logger.Warn("config unreadable, using defaults", "path", *cfgPath, "error", cfgErr)
	}
	logger.Debug("config loaded", "path", *cfgPath, "panel_width", cfg.PanelWidth, "panel_height", cfg.PanelHeight)

	application := app.NewApp("SnapFFT", cfg, *cfgPath, logger)
	application.Start(*imagePath)
}
