package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// Random picks a uniform random legal action each turn. Useful for fuzzing
// the engine and as a sparring partner that can't be modelled.
type Random struct {
	quiet
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a new Random instance.
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger.WithPrefix("random")}
}

func (r *Random) PlaceBet(_ context.Context, req game.BetRequest) (game.BetAction, error) {
	choices := r.legal(req)
	action := choices[r.rng.IntN(len(choices))]

	if action.Type == game.Raise {
		// Random raise between the minimum and a shove.
		min := req.CurrentBet + req.MinRaise
		max := req.CurrentBet - req.Call + req.BankRoll
		action.Amount = min + r.rng.IntN(max-min+1)
	}

	r.logger.Debug("decision", "stage", req.Stage, "call", req.Call, "action", action)
	return action, nil
}

func (r *Random) legal(req game.BetRequest) []game.BetAction {
	if req.BankRoll <= req.Call {
		return []game.BetAction{{Type: game.Fold}, {Type: game.AllIn}}
	}

	choices := []game.BetAction{{Type: game.AllIn}}
	if req.Call == 0 {
		choices = append(choices, game.BetAction{Type: game.Check})
	} else {
		choices = append(choices, game.BetAction{Type: game.Fold}, game.BetAction{Type: game.Call})
	}
	if req.BankRoll > req.Call+req.MinRaise {
		choices = append(choices, game.BetAction{Type: game.Raise})
	}
	return choices
}
