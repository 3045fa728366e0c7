package main

import (
	"context"
	"errors"
	"os"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/cmd/holdem/shared"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/server"
)

// ServeCmd runs the websocket server defined by an HCL config file.
type ServeCmd struct {
	Config  string `kong:"short='c',default='holdem.hcl',help='Path to HCL configuration file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	LogJSON bool   `kong:"help='Output JSON logs instead of console format'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed for all tables (optional)'"`
}

func (c *ServeCmd) Run() error {
	engineLog := shared.SetupLogger(c.Debug)
	if c.LogJSON {
		engineLog = shared.SetupStructuredLogger(c.Debug)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var rng *rand.Rand
	if c.Seed != nil {
		engineLog.Info().Int64("seed", *c.Seed).Msg("Using deterministic seed")
		rng = randutil.New(*c.Seed)
	} else {
		seed := time.Now().UnixNano()
		engineLog.Info().Int64("seed", seed).Msg("Using random seed")
		rng = randutil.New(seed)
	}

	s, err := server.New(cfg, logger,
		server.WithEngineLogger(engineLog),
		server.WithRNG(rng),
	)
	if err != nil {
		return err
	}

	logger.Info("starting server",
		"addr", cfg.ListenAddress(),
		"tables", len(cfg.Tables),
		"bots", len(cfg.Bots))

	ctx := shared.SetupSignalHandlerWithLogger(engineLog)
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
