package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/JoshuaGerke/Pool-Line-Detector/app"
	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/debug"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON configuration file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime instrumentation")
	dump := flag.Bool("dump", false, "capture one frame, write diagnostic images, then exit")
	dumpDir := flag.String("dump-dir", ".", "directory for diagnostic images")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		// Defaults are still usable; report the bad file and continue.
		NewLogger(slog.LevelInfo).Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	if *dump {
		if err := debug.Dump(cfg, logger, *dumpDir); err != nil {
			logger.Error("diagnostic dump failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(2*time.Second, logger)
	}

	application := app.NewApp(cfg, logger)
	if err := application.Run(); err != nil {
		logger.Error("exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
