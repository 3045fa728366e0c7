package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/hand"
)

// Game orchestrates a table through rounds of play until one player holds
// every chip: blinds, dealing, one betting round per stage, showdown
// evaluation, side-pot payout, elimination and dealer rotation.
//
// The engine is single-threaded and cooperative: exactly one player's turn is
// active at any instant, and all chip movement happens here or in the betting
// round after validation. Actors may block on external I/O inside PlaceBet;
// turn N+1 never begins before turn N's decision (or its fold substitute) is
// committed.
type Game struct {
	id         string
	bigBlind   int
	smallBlind int
	minBet     int
	buyIn      int
	maxPlayers int
	retries    int

	players []*Player
	dealer  int
	round   int

	rng       *rand.Rand
	log       zerolog.Logger
	observers []func(Event)
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used by the game and its betting rounds.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithRNG sets the random source used to shuffle each round's deck.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithRetries sets how many times an illegal action is re-prompted before the
// player is folded. Zero folds on the first offence.
func WithRetries(n int) Option {
	return func(g *Game) { g.retries = n }
}

// WithObserver registers a callback receiving every broadcast event, in
// addition to the players' own actors. Used by transports and monitors.
func WithObserver(fn func(Event)) Option {
	return func(g *Game) { g.observers = append(g.observers, fn) }
}

// New creates a game. The big blind fixes the rest of the economy: small
// blind is half, the minimum bet equals it, and the default buy-in is 100 big
// blinds.
func New(bigBlind, maxPlayers int, opts ...Option) *Game {
	g := &Game{
		id:         uuid.NewString(),
		bigBlind:   bigBlind,
		smallBlind: bigBlind / 2,
		minBet:     bigBlind,
		buyIn:      100 * bigBlind,
		maxPlayers: maxPlayers,
		retries:    1,
		dealer:     -1,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano())>>32))
	}
	g.log = g.log.With().Str("game", g.id).Logger()
	return g
}

// ID returns the game's unique identifier.
func (g *Game) ID() string { return g.id }

// BigBlind returns the table's big blind.
func (g *Game) BigBlind() int { return g.bigBlind }

// BuyIn returns the default starting stack for joining players.
func (g *Game) BuyIn() int { return g.buyIn }

// Players returns the current roster in rotation order.
func (g *Game) Players() []*Player { return g.players }

// AddPlayer seats a player with the default buy-in.
func (g *Game) AddPlayer(name string, actor Actor) error {
	return g.AddPlayerWithStack(name, g.buyIn, actor)
}

// AddPlayerWithStack seats a player with a specific bank roll. Names are
// unique within a game; rotation order is join order.
func (g *Game) AddPlayerWithStack(name string, bankRoll int, actor Actor) error {
	if len(g.players) >= g.maxPlayers {
		return ErrTableFull
	}
	for _, p := range g.players {
		if p.Name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}

	p := NewPlayer(name, bankRoll, actor)
	g.players = append(g.players, p)
	g.log.Info().Str("player", name).Int("bankRoll", bankRoll).Msg("player joined")
	g.broadcast(PlayerJoinedEvent{Player: PlayerInfo{Name: name, BankRoll: bankRoll}})
	return nil
}

// Play runs rounds until a single player remains, returning their name.
func (g *Game) Play(ctx context.Context) (string, error) {
	if len(g.players) < 2 {
		return "", fmt.Errorf("need at least 2 players, have %d", len(g.players))
	}

	for len(g.players) > 1 {
		if err := g.PlayRound(ctx); err != nil {
			return "", err
		}
	}

	winner := g.players[0]
	g.log.Info().Str("player", winner.Name).Int("bankRoll", winner.BankRoll).Msg("game over")
	g.broadcast(GameWinnerEvent{Name: winner.Name, BankRoll: winner.BankRoll})
	return winner.Name, nil
}

// PlayRound plays a single complete round: blinds, hole cards, the four
// betting stages with community reveals, then payout. A pot accounting
// failure aborts the round with an error; an actor failure only folds the
// actor's player.
func (g *Game) PlayRound(ctx context.Context) error {
	g.round++
	g.dealer = (g.dealer + 1) % len(g.players)
	ledger := NewLedger()
	d := deck.New(g.rng)

	roster := make([]PlayerInfo, len(g.players))
	for i, p := range g.players {
		p.resetForRound()
		roster[i] = PlayerInfo{Name: p.Name, BankRoll: p.BankRoll}
	}

	g.log.Info().Int("round", g.round).Str("dealer", g.players[g.dealer].Name).Msg("round start")
	g.broadcast(RoundStartEvent{Round: g.round, Players: roster, Dealer: g.players[g.dealer].Name})

	g.postBlinds(ledger)

	if err := g.dealHoleCards(d); err != nil {
		return fmt.Errorf("dealing hole cards: %w", err)
	}

	community := make([]deck.Card, 0, 5)
	currentBet := g.bigBlind

	for _, stage := range []Stage{PreFlop, Flop, Turn, River} {
		reveal, err := g.revealCommunity(stage, d)
		if err != nil {
			return fmt.Errorf("dealing %s: %w", stage, err)
		}
		community = append(community, reveal...)
		g.broadcast(StageChangeEvent{Stage: stage, Community: community})

		br := NewBettingRound(stage, g.players, g.dealer, g.minBet, currentBet,
			community, ledger, g.retries, g.broadcast, g.log)
		if err := br.Run(ctx); err != nil {
			return err
		}

		// The instant one non-folded player remains they win the pot; no
		// further stages run and no further cards are revealed.
		if last := g.lastInHand(); last != nil {
			return g.settle(ledger.AwardAll(last.Name), nil, ledger)
		}

		for _, p := range g.players {
			p.resetForStage()
		}
		currentBet = 0
	}

	return g.showdown(community, ledger)
}

// postBlinds collects the forced small and big blinds, capped at a short
// stack (the poster goes all-in for less).
func (g *Game) postBlinds(ledger *Ledger) {
	n := len(g.players)
	blinds := []struct {
		seat   int
		amount int
		label  string
	}{
		{(g.dealer + 1) % n, g.smallBlind, "small_blind"},
		{(g.dealer + 2) % n, g.bigBlind, "big_blind"},
	}

	for _, b := range blinds {
		p := g.players[b.seat]
		paid := p.pay(b.amount)
		ledger.Record(p.Name, paid)
		g.log.Debug().Str("player", p.Name).Str("blind", b.label).Int("paid", paid).Msg("blind posted")
		g.broadcast(BetPlacedEvent{
			Player: p.Name,
			Action: BetAction{Type: Call, Amount: p.StageBet},
			Forced: b.label,
			Paid:   paid,
			Pot:    ledger.Total(),
		})
	}
}

func (g *Game) dealHoleCards(d *deck.Deck) error {
	for _, p := range g.players {
		cards, err := d.Deal(2)
		if err != nil {
			return err
		}
		p.Hole = [2]deck.Card{cards[0], cards[1]}
		p.actor.Update(HoleCardsEvent{Cards: p.Hole})
	}
	return nil
}

// revealCommunity burns and deals each stage's community cards: none
// preflop, three on the flop, one each on the turn and river.
func (g *Game) revealCommunity(stage Stage, d *deck.Deck) ([]deck.Card, error) {
	var n int
	switch stage {
	case Flop:
		n = 3
	case Turn, River:
		n = 1
	default:
		return nil, nil
	}

	if err := d.Burn(); err != nil {
		return nil, err
	}
	return d.Deal(n)
}

// lastInHand returns the sole non-folded player, or nil if the round is
// still contested.
func (g *Game) lastInHand() *Player {
	var last *Player
	for _, p := range g.players {
		if p.InHand() {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	return last
}

// showdown evaluates every non-folded player's best hand and distributes the
// tiered pots.
func (g *Game) showdown(community []deck.Card, ledger *Ledger) error {
	ranks := make(map[string]hand.Rank)
	bestFives := make(map[string][]deck.Card)

	for _, p := range g.players {
		if !p.InHand() {
			continue
		}
		all := append([]deck.Card{p.Hole[0], p.Hole[1]}, community...)
		rank, five, err := hand.Best(all)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		ranks[p.Name] = rank
		bestFives[p.Name] = five
		g.log.Debug().Str("player", p.Name).Stringer("hand", rank).Msg("showdown hand")
	}

	payouts, err := ledger.Distribute(ranks, g.seatingFromDealer())
	if err != nil {
		return err
	}

	winners := make(map[string]*WinnerInfo)
	for name, amount := range payouts {
		rank := ranks[name]
		winners[name] = &WinnerInfo{Name: name, Amount: amount, Hand: &rank, BestFive: bestFives[name]}
	}
	return g.settle(payouts, winners, ledger)
}

// settle applies payouts to bank rolls, announces the result, and removes
// bankrupt players.
func (g *Game) settle(payouts map[string]int, winners map[string]*WinnerInfo, ledger *Ledger) error {
	paid := 0
	for name, amount := range payouts {
		g.playerByName(name).BankRoll += amount
		paid += amount
	}
	if total := ledger.Total(); paid != total {
		return fmt.Errorf("%w: paid %d of %d contributed", ErrPotImbalance, paid, total)
	}

	infos := make([]WinnerInfo, 0, len(payouts))
	for _, name := range g.seatingFromDealer() {
		amount, won := payouts[name]
		if !won {
			continue
		}
		if w := winners[name]; w != nil {
			infos = append(infos, *w)
		} else {
			infos = append(infos, WinnerInfo{Name: name, Amount: amount})
		}
		g.log.Info().Str("player", name).Int("amount", amount).Msg("round won")
	}
	g.broadcast(RoundResultEvent{Round: g.round, Winners: infos})

	g.eliminateBankrupt()
	return nil
}

// eliminateBankrupt removes zero-stack players, keeping the dealer button on
// the same surviving player (or the nearest survivor to its right).
func (g *Game) eliminateBankrupt() {
	order := make([]string, len(g.players))
	for i, p := range g.players {
		order[i] = p.Name
	}
	dealerSeat := g.dealer

	survivors := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.BankRoll > 0 {
			survivors = append(survivors, p)
		} else {
			g.log.Info().Str("player", p.Name).Msg("player eliminated")
			g.broadcast(PlayerEliminatedEvent{Name: p.Name})
		}
	}
	g.players = survivors
	if len(g.players) == 0 {
		return
	}

	g.dealer = 0
	for i := range order {
		name := order[(dealerSeat-i+len(order))%len(order)]
		if j := indexOf(g.players, name); j >= 0 {
			g.dealer = j
			break
		}
	}
}

// seatingFromDealer lists player names in table order starting immediately
// left of the dealer, the order used for odd-chip awards.
func (g *Game) seatingFromDealer() []string {
	n := len(g.players)
	seating := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		seating = append(seating, g.players[(g.dealer+i)%n].Name)
	}
	return seating
}

func (g *Game) playerByName(name string) *Player {
	for _, p := range g.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) broadcast(ev Event) {
	for _, p := range g.players {
		p.actor.Update(ev)
	}
	for _, fn := range g.observers {
		fn(ev)
	}
}

func indexOf(players []*Player, name string) int {
	for i, p := range players {
		if p.Name == name {
			return i
		}
	}
	return -1
}
