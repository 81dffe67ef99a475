// Command tubular opens a window where an avatar leaves tube trails behind it.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tubular/internal/config"
	"github.com/Faultbox/tubular/internal/game"
	"github.com/Faultbox/tubular/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File(), true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	logger.Info("starting tubular",
		zap.String("config", source),
		zap.Int("verts_per_loop", cfg.Tube.VertsPerLoop),
		zap.Float32("segment_length", cfg.Tube.SegmentLength),
		zap.Float32("radius", cfg.Tube.Radius),
	)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		return 1
	}
	logger.Info("closed normally")
	return 0
}
