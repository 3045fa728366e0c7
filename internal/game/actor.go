package game

import (
	"context"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/hand"
)

// BetRequest carries everything an actor may consider when producing a bet
// decision. It is a read-only snapshot; actors never touch game state.
type BetRequest struct {
	Stage      Stage
	Cycle      int // full rotations since the last raise this stage
	Call       int // amount owed to match the current bet
	CurrentBet int // the bet level a raise must exceed
	MinRaise   int // minimum raise increment over CurrentBet
	BankRoll   int
	Pot        int
	Hole       [2]deck.Card
	Community  []deck.Card
	Best       hand.Rank // current best hand from hole + community
}

// Actor produces bet decisions for a player. Exactly three kinds exist:
// algorithmic strategies (internal/bot), the interactive terminal player
// (internal/tui) and the remote network proxy (internal/server). The engine
// treats them uniformly: PlaceBet blocks until a decision arrives, and any
// error — timeout, disconnect, malformed response — is mapped to a fold for
// that player only, never treated as fatal to the round.
type Actor interface {
	PlaceBet(ctx context.Context, req BetRequest) (BetAction, error)

	// Update delivers a game notification. Implementations must not block
	// the engine; transports buffer internally.
	Update(ev Event)
}
