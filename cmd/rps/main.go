// Package main runs one provably-fair round of generalized rock-paper-scissors
// in the terminal.
//
// Usage:
//
//	rps [-config path] [-preset id] [move ...]
//
// Moves given as arguments take precedence over a preset.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rps/internal/config"
	"github.com/cory-johannsen/rps/internal/frontend/console"
	"github.com/cory-johannsen/rps/internal/game/commitment"
	"github.com/cory-johannsen/rps/internal/game/moveset"
	"github.com/cory-johannsen/rps/internal/game/round"
	"github.com/cory-johannsen/rps/internal/observability"
	"github.com/cory-johannsen/rps/internal/server"
)

const defaultConfigPath = "configs/rps.yaml"

const (
	exitOK      = 0
	exitInvalid = 1
	exitEntropy = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	presetID := flag.String("preset", "", "move-set preset to play when no moves are given")
	listPresets := flag.Bool("list-presets", false, "list available presets and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("loading config: %v", err)
		return exitInvalid
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Printf("initializing logger: %v", err)
		return exitInvalid
	}
	defer func() { _ = logger.Sync() }()

	if *listPresets {
		return printPresets(cfg.Game.PresetsDir, logger)
	}

	moves, err := resolveMoves(flag.Args(), *presetID, cfg.Game)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Please input correct movements, e.g.: rps Rock Paper Scissors")
		return exitInvalid
	}

	rnd := round.New(logger)
	if err := rnd.Start(moves, rand.Reader); err != nil {
		logger.Debug("round failed to start", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, commitment.ErrRandomSourceUnavailable) {
			return exitEntropy
		}
		fmt.Fprintln(os.Stderr, "Please input correct movements, e.g.: rps Rock Paper Scissors")
		return exitInvalid
	}
	logger.Info("round committed",
		zap.String("round_id", rnd.ID()),
		zap.Int("moves", len(moves)),
	)

	session := console.NewSession(rnd, os.Stdin, os.Stdout, console.NewRenderer(cfg.Game.Color), logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("console", session)
	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Error("session error", zap.Error(err))
		return exitInvalid
	}
	logger.Debug("session ended", zap.Stringer("status", session.Status()))
	return exitOK
}

// loadConfig tolerates a missing file only at the default path.
func loadConfig(path string) (config.Config, error) {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if explicit {
		return config.Load(path)
	}
	return config.LoadOptional(path)
}

// resolveMoves picks the move list from arguments, then the -preset flag,
// then the configured default preset.
func resolveMoves(args []string, presetID string, game config.GameConfig) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if presetID == "" {
		presetID = game.DefaultPreset
	}
	if presetID == "" {
		return nil, fmt.Errorf("no moves given: %w", moveset.ErrInvalidSize)
	}
	presets, err := moveset.LoadPresets(game.PresetsDir)
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}
	p, ok := presets[presetID]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", presetID, strings.Join(moveset.PresetIDs(presets), ", "))
	}
	return p.Moves, nil
}

func printPresets(dir string, logger *zap.Logger) int {
	presets, err := moveset.LoadPresets(dir)
	if err != nil {
		logger.Error("loading presets", zap.String("dir", dir), zap.Error(err))
		return exitInvalid
	}
	for _, id := range moveset.PresetIDs(presets) {
		p := presets[id]
		fmt.Fprintf(os.Stdout, "%-12s %s (%s)\n", id, p.Name, strings.Join(p.Moves, ", "))
	}
	return exitOK
}
