package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/client"
	"github.com/lox/holdem/internal/tui"
)

// ClientCmd connects the interactive TUI to a remote server.
type ClientCmd struct {
	Server  string `kong:"short='s',default='ws://localhost:8080/ws',help='WebSocket server URL'"`
	Name    string `kong:"help='Display name (defaults to $USER or \"Player\")'"`
	Table   string `kong:"help='Table to join (defaults to the first configured table)'"`
	LogFile string `kong:"default='holdem-client.log',help='Debug log file (the TUI owns the terminal)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ClientCmd) Run() error {
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	name := playerName(c.Name)
	program, actor := tui.NewProgram(name, logger)
	cl := client.New(c.Server, name, c.Table, actor, logger)

	logger.Info("connecting", "server", c.Server, "name", name, "table", c.Table)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, ctx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		_, err := program.Run()
		cancel()
		return err
	})
	group.Go(func() error {
		err := cl.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			program.Quit()
			return err
		}
		return nil
	})

	return group.Wait()
}
