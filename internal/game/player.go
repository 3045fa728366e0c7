package game

import (
	"context"

	"github.com/lox/holdem/internal/deck"
)

// Player holds a seat's chips and per-round status. Bank roll and bet fields
// are mutated only by the orchestrator and betting round after a decision has
// been validated; actors see read-only snapshots.
type Player struct {
	Name     string
	BankRoll int
	Hole     [2]deck.Card
	Folded   bool
	AllIn    bool
	StageBet int // contribution this stage
	RoundBet int // contribution this round

	actor Actor
}

// NewPlayer creates a player delegating decisions to the given actor.
func NewPlayer(name string, bankRoll int, actor Actor) *Player {
	return &Player{Name: name, BankRoll: bankRoll, actor: actor}
}

// RequestBet obtains a decision from the player's actor.
func (p *Player) RequestBet(ctx context.Context, req BetRequest) (BetAction, error) {
	return p.actor.PlaceBet(ctx, req)
}

// Active returns true if the player can still act this stage.
func (p *Player) Active() bool {
	return !p.Folded && !p.AllIn
}

// InHand returns true if the player has not folded and remains eligible for
// payout.
func (p *Player) InHand() bool {
	return !p.Folded
}

// pay moves chips from the bank roll into the current stage's bet, capping at
// the stack and marking the player all-in when it empties.
func (p *Player) pay(amount int) int {
	if amount > p.BankRoll {
		amount = p.BankRoll
	}
	p.BankRoll -= amount
	p.StageBet += amount
	p.RoundBet += amount
	if p.BankRoll == 0 {
		p.AllIn = true
	}
	return amount
}

func (p *Player) resetForRound() {
	p.Folded = false
	p.AllIn = false
	p.StageBet = 0
	p.RoundBet = 0
	p.Hole = [2]deck.Card{}
}

func (p *Player) resetForStage() {
	p.StageBet = 0
}
