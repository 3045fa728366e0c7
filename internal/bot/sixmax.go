package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
)

// SixMax plays a tight short-handed game: preflop it folds everything outside
// roughly the top 15% of starting hands, and with a playable hand it raises
// the minimum on the first two rotations of every stage, then flattens to
// calls.
type SixMax struct {
	quiet
	logger *log.Logger
}

// NewSixMax creates a new SixMax instance.
func NewSixMax(logger *log.Logger) *SixMax {
	return &SixMax{logger: logger.WithPrefix("sixmax")}
}

func (s *SixMax) PlaceBet(_ context.Context, req game.BetRequest) (game.BetAction, error) {
	if req.Stage == game.PreFlop && !playable(req.Hole) {
		s.logger.Debug("folding junk", "hole", req.Hole)
		return game.BetAction{Type: game.Fold}, nil
	}

	action := s.aggress(req)
	s.logger.Debug("decision", "stage", req.Stage, "cycle", req.Cycle, "call", req.Call, "action", action)
	return action, nil
}

// aggress min-raises while the stage is young, capped at two rotations so a
// raising war can't escalate forever, then falls back to calling.
func (s *SixMax) aggress(req game.BetRequest) game.BetAction {
	raiseCost := req.Call + req.MinRaise
	canRaise := req.BankRoll > raiseCost

	switch {
	case req.BankRoll == 0:
		return game.BetAction{Type: game.Fold}
	case req.BankRoll <= req.Call:
		return game.BetAction{Type: game.AllIn}
	case canRaise && req.Cycle < 2:
		return game.BetAction{Type: game.Raise, Amount: req.CurrentBet + req.MinRaise}
	case req.Call == 0:
		return game.BetAction{Type: game.Check}
	default:
		return game.BetAction{Type: game.Call}
	}
}

// playable reports whether the hole cards are worth seeing a flop with: any
// pair, big aces and kings (suited ones a little smaller), or queen-jack and
// better.
func playable(hole [2]deck.Card) bool {
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return true
	}

	suited := hole[0].Suit == hole[1].Suit
	switch hi {
	case deck.Ace:
		return lo > deck.Ten || (suited && lo > deck.Four)
	case deck.King:
		return lo > deck.Ten || (suited && lo > deck.Nine)
	case deck.Queen:
		return lo > deck.Ten
	default:
		return false
	}
}
