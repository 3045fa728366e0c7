package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/cmd/holdem/shared"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/tui"
)

// PlayCmd runs a local game: the player in the TUI against house bots.
type PlayCmd struct {
	Name     string `kong:"help='Display name (defaults to $USER or \"Player\")'"`
	Seats    int    `kong:"short='p',default='6',help='Number of seats at the table (2-9)'"`
	BigBlind int    `kong:"default='10',help='Big blind amount'"`
	BuyIn    int    `kong:"default='0',help='Starting stack (defaults to 100 big blinds)'"`
	Bots     string `kong:"default='sixmax,caller,modest',help='Comma-separated bot strategies, cycled to fill seats'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	LogFile  string `kong:"default='holdem.log',help='Debug log file (the TUI owns the terminal)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	if c.Seats < 2 || c.Seats > 9 {
		return fmt.Errorf("seats must be between 2 and 9, got %d", c.Seats)
	}

	strategies := strings.Split(c.Bots, ",")
	for i, s := range strategies {
		strategies[i] = strings.TrimSpace(s)
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
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
	engineLog := shared.SetupFileLogger(logFile, c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)
	engineLog.Info().Int64("seed", seed).Msg("starting local game")

	g := game.New(c.BigBlind, c.Seats,
		game.WithLogger(engineLog),
		game.WithRNG(rng))

	name := playerName(c.Name)
	program, actor := tui.NewProgram(name, logger)

	buyIn := c.BuyIn
	if buyIn == 0 {
		buyIn = g.BuyIn()
	}
	if err := g.AddPlayerWithStack(name, buyIn, actor); err != nil {
		return err
	}
	for i := 1; i < c.Seats; i++ {
		strategy := strategies[(i-1)%len(strategies)]
		b, err := bot.ByName(strategy, rng, logger)
		if err != nil {
			return err
		}
		if err := g.AddPlayerWithStack(fmt.Sprintf("%s-%d", strategy, i), buyIn, b); err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, ctx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		_, err := program.Run()
		cancel()
		return err
	})
	group.Go(func() error {
		winner, err := g.Play(ctx)
		if err != nil {
			program.Quit()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		logger.Info("game over", "winner", winner)
		return nil
	})

	return group.Wait()
}

// playerName resolves the display name for interactive commands.
func playerName(flag string) string {
	if name := strings.TrimSpace(flag); name != "" {
		return name
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "Player"
}
