package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/cmd/holdem/shared"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/client"
	"github.com/lox/holdem/internal/randutil"
)

// BotCmd connects a built-in bot to a remote server.
type BotCmd struct {
	Strategy string `arg:"" help:"Bot strategy (caller, modest, sixmax, random)"`
	Server   string `short:"s" default:"ws://localhost:8080/ws" help:"WebSocket server URL"`
	Name     string `help:"Display name (defaults to the strategy)"`
	Table    string `help:"Table to join (defaults to the first configured table)"`
	Seed     *int64 `help:"Deterministic RNG seed (optional)"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *BotCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	actor, err := bot.ByName(c.Strategy, randutil.New(seed), logger)
	if err != nil {
		return fmt.Errorf("unknown bot: %s (available: %s)",
			c.Strategy, strings.Join(bot.Strategies(), ", "))
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = c.Strategy
	}

	logger.Info("connecting", "server", c.Server, "name", name, "strategy", c.Strategy)

	ctx := shared.SetupSignalHandler()
	err = client.New(c.Server, name, c.Table, actor, logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
