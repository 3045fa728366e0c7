package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// Caller is the baseline bot: it checks when free, calls any bet it can
// afford, and goes all-in rather than fold when it can't cover the call.
type Caller struct {
	quiet
	logger *log.Logger
}

// NewCaller creates a new Caller instance.
func NewCaller(logger *log.Logger) *Caller {
	return &Caller{logger: logger.WithPrefix("caller")}
}

func (c *Caller) PlaceBet(_ context.Context, req game.BetRequest) (game.BetAction, error) {
	action := respond(req)
	c.logger.Debug("decision", "stage", req.Stage, "call", req.Call, "action", action)
	return action, nil
}

// respond is the shared check/call/all-in fallback every strategy degrades to.
func respond(req game.BetRequest) game.BetAction {
	switch {
	case req.BankRoll == 0:
		return game.BetAction{Type: game.Fold}
	case req.Call >= req.BankRoll:
		return game.BetAction{Type: game.AllIn}
	case req.Call == 0:
		return game.BetAction{Type: game.Check}
	default:
		return game.BetAction{Type: game.Call}
	}
}
