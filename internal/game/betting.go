package game

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/hand"
)

// BettingRound runs one stage's betting: a turn-based loop over the players
// in table order, starting left of the dealer, enforcing action legality and
// continuing until every player has folded, gone all-in, or matched the
// current bet with nothing left to contest.
type BettingRound struct {
	stage      Stage
	players    []*Player
	dealer     int
	minBet     int
	currentBet int
	cycle      int
	community  []deck.Card
	ledger     *Ledger
	retries    int
	notify     func(Event)
	log        zerolog.Logger

	needAct []bool
}

// NewBettingRound creates the state machine for one stage. currentBet is
// non-zero only preflop, where the blinds have already been posted. retries
// is how many times an illegal action is re-prompted before the player is
// folded out.
func NewBettingRound(stage Stage, players []*Player, dealer, minBet, currentBet int,
	community []deck.Card, ledger *Ledger, retries int, notify func(Event), log zerolog.Logger) *BettingRound {

	br := &BettingRound{
		stage:      stage,
		players:    players,
		dealer:     dealer,
		minBet:     minBet,
		currentBet: currentBet,
		community:  community,
		ledger:     ledger,
		retries:    retries,
		notify:     notify,
		log:        log.With().Stringer("stage", stage).Logger(),
		needAct:    make([]bool, len(players)),
	}

	active := 0
	for _, p := range players {
		if p.Active() {
			active++
		}
	}
	for i, p := range players {
		// A lone active player acts only if a call is owed (e.g. an all-in
		// raised past the blinds preflop); with nobody to contest, checking
		// it down adds nothing.
		br.needAct[i] = p.Active() && (active >= 2 || p.StageBet < currentBet)
	}

	return br
}

// CurrentBet returns the stage's current bet level.
func (br *BettingRound) CurrentBet() int { return br.currentBet }

// Cycle returns the number of full rotations since the last raise.
func (br *BettingRound) Cycle() int { return br.cycle }

// Run drives the stage to completion. It returns early the moment only one
// non-folded player remains; the caller awards the pot. The only error is a
// cancelled context, which aborts the round.
func (br *BettingRound) Run(ctx context.Context) error {
	n := len(br.players)
	first := (br.dealer + 1) % n

	started := false
	for seat := first; !br.done(); seat = (seat + 1) % n {
		if seat == first && started {
			br.cycle++
		}
		started = true
		if err := ctx.Err(); err != nil {
			return err
		}

		p := br.players[seat]
		if !p.Active() || !br.pendingAt(seat) {
			continue
		}

		action, err := br.decide(ctx, seat, p)
		if err != nil {
			return err
		}
		br.apply(seat, p, action)

		if br.remaining() == 1 {
			return nil
		}
	}

	return nil
}

// pendingAt reports whether the seat still owes an action this stage.
func (br *BettingRound) pendingAt(seat int) bool {
	p := br.players[seat]
	return br.needAct[seat] || p.StageBet < br.currentBet
}

func (br *BettingRound) done() bool {
	if br.remaining() <= 1 {
		return true
	}
	for seat, p := range br.players {
		if p.Active() && br.pendingAt(seat) {
			return false
		}
	}
	return true
}

// remaining counts non-folded players.
func (br *BettingRound) remaining() int {
	n := 0
	for _, p := range br.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// decide obtains a legal action from the player's actor, re-prompting on an
// illegal choice up to the retry budget. Any actor failure resolves to a
// fold for that player only.
func (br *BettingRound) decide(ctx context.Context, seat int, p *Player) (BetAction, error) {
	req := br.request(p)

	for attempt := 0; ; attempt++ {
		action, err := p.RequestBet(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return BetAction{}, ctxErr
				}
			}
			br.log.Warn().Err(err).Str("player", p.Name).Msg("actor failed, folding player")
			return BetAction{Type: Fold}, nil
		}

		if err := br.validate(p, action); err != nil {
			br.log.Warn().Err(err).Str("player", p.Name).Int("attempt", attempt).Msg("illegal action")
			if attempt < br.retries {
				continue
			}
			return BetAction{Type: Fold}, nil
		}
		return action, nil
	}
}

func (br *BettingRound) request(p *Player) BetRequest {
	all := append([]deck.Card{p.Hole[0], p.Hole[1]}, br.community...)
	best, _, _ := hand.Best(all)

	return BetRequest{
		Stage:      br.stage,
		Cycle:      br.cycle,
		Call:       br.currentBet - p.StageBet,
		CurrentBet: br.currentBet,
		MinRaise:   br.minBet,
		BankRoll:   p.BankRoll,
		Pot:        br.ledger.Total(),
		Hole:       p.Hole,
		Community:  br.community,
		Best:       best,
	}
}

// validate rejects an illegal action before any state mutation.
func (br *BettingRound) validate(p *Player, action BetAction) error {
	owed := br.currentBet - p.StageBet

	switch action.Type {
	case Fold, Call, AllIn:
		return nil
	case Check:
		if owed != 0 {
			return illegalActionf(action, "must call %d", owed)
		}
		return nil
	case Raise:
		if action.Amount < br.currentBet+br.minBet {
			return illegalActionf(action, "raise below minimum %d", br.currentBet+br.minBet)
		}
		if action.Amount-p.StageBet > p.BankRoll {
			return illegalActionf(action, "amount exceeds bank roll %d", p.BankRoll)
		}
		return nil
	default:
		return illegalActionf(action, "unknown action")
	}
}

// apply commits a validated action: moves chips, records contributions and
// broadcasts the result. A raise reopens the action for every other active
// player; a call short of the stack degenerates into an all-in.
func (br *BettingRound) apply(seat int, p *Player, action BetAction) {
	owed := br.currentBet - p.StageBet
	paid := 0

	switch action.Type {
	case Fold:
		p.Folded = true
		br.ledger.MarkFolded(p.Name)

	case Check:
		// nothing owed, nothing moved

	case Call:
		if owed >= p.BankRoll {
			action.Type = AllIn
			paid = p.pay(p.BankRoll)
		} else {
			paid = p.pay(owed)
		}

	case Raise:
		paid = p.pay(action.Amount - p.StageBet)
		if p.AllIn {
			action.Type = AllIn
		}
		br.reopen(seat)
		br.currentBet = p.StageBet

	case AllIn:
		paid = p.pay(p.BankRoll)
		if p.StageBet > br.currentBet {
			// An all-in past the current bet acts as a raise.
			br.reopen(seat)
			br.currentBet = p.StageBet
		}
	}

	if paid > 0 {
		br.ledger.Record(p.Name, paid)
	}
	br.needAct[seat] = false

	action.Amount = p.StageBet
	if action.Type == Fold || action.Type == Check {
		action.Amount = 0
	}

	br.log.Debug().
		Str("player", p.Name).
		Stringer("action", action).
		Int("paid", paid).
		Int("pot", br.ledger.Total()).
		Msg("bet placed")

	br.notify(BetPlacedEvent{
		Player: p.Name,
		Action: action,
		Paid:   paid,
		Pot:    br.ledger.Total(),
	})
}

// reopen marks every other active player as owing an action again and resets
// the rotation count.
func (br *BettingRound) reopen(raiser int) {
	for i, p := range br.players {
		br.needAct[i] = i != raiser && p.Active()
	}
	br.cycle = 0
}
