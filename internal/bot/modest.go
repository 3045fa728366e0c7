package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// Modest plays like Caller but opens the betting with a minimum raise
// whenever nobody has bet yet.
type Modest struct {
	quiet
	logger *log.Logger
}

// NewModest creates a new Modest instance.
func NewModest(logger *log.Logger) *Modest {
	return &Modest{logger: logger.WithPrefix("modest")}
}

func (m *Modest) PlaceBet(_ context.Context, req game.BetRequest) (game.BetAction, error) {
	action := respond(req)

	if req.Call == 0 && req.BankRoll > req.MinRaise {
		action = game.BetAction{Type: game.Raise, Amount: req.CurrentBet + req.MinRaise}
	}

	m.logger.Debug("decision", "stage", req.Stage, "call", req.Call, "action", action)
	return action, nil
}
