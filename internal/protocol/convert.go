package protocol

import (
	"fmt"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/hand"
)

// Cards converts deck cards to their wire codes.
func Cards(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}

// ParseCards converts wire codes back to deck cards.
func ParseCards(codes []string) ([]deck.Card, error) {
	cards := make([]deck.Card, len(codes))
	for i, code := range codes {
		c, err := deck.ParseCode(code)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

// NewActionRequest builds the wire form of a bet request.
func NewActionRequest(req game.BetRequest) *ActionRequest {
	return &ActionRequest{
		Type:       TypeActionRequest,
		Stage:      req.Stage.String(),
		Cycle:      req.Cycle,
		Call:       req.Call,
		CurrentBet: req.CurrentBet,
		MinRaise:   req.MinRaise,
		BankRoll:   req.BankRoll,
		Pot:        req.Pot,
		HoleCards:  Cards(req.Hole[:]),
		Community:  Cards(req.Community),
		BestHand:   req.Best.String(),
	}
}

// BetRequest reconstructs the engine-side bet request on the client. The
// best current hand is re-evaluated locally rather than parsed off the wire.
func (r *ActionRequest) BetRequest() (game.BetRequest, error) {
	stage, err := game.ParseStage(r.Stage)
	if err != nil {
		return game.BetRequest{}, err
	}
	holeCards, err := ParseCards(r.HoleCards)
	if err != nil {
		return game.BetRequest{}, err
	}
	if len(holeCards) != 2 {
		return game.BetRequest{}, fmt.Errorf("expected 2 hole cards, got %d", len(holeCards))
	}
	community, err := ParseCards(r.Community)
	if err != nil {
		return game.BetRequest{}, err
	}

	req := game.BetRequest{
		Stage:      stage,
		Cycle:      r.Cycle,
		Call:       r.Call,
		CurrentBet: r.CurrentBet,
		MinRaise:   r.MinRaise,
		BankRoll:   r.BankRoll,
		Pot:        r.Pot,
		Hole:       [2]deck.Card{holeCards[0], holeCards[1]},
		Community:  community,
	}
	req.Best, _, _ = hand.Best(append(holeCards, community...))
	return req, nil
}

// BetAction converts a client's Action answer to an engine action.
func (a *Action) BetAction() (game.BetAction, error) {
	typ, err := game.ParseActionType(a.Action)
	if err != nil {
		return game.BetAction{}, err
	}
	return game.BetAction{Type: typ, Amount: a.Amount}, nil
}

// NewAction builds the wire form of an engine action.
func NewAction(action game.BetAction) *Action {
	return &Action{Type: TypeAction, Action: action.Type.String(), Amount: action.Amount}
}

// FromEvent converts an engine event to its wire message.
func FromEvent(ev game.Event) (any, error) {
	switch e := ev.(type) {
	case game.PlayerJoinedEvent:
		return &PlayerJoined{Type: TypePlayerJoined, Player: Player(e.Player)}, nil

	case game.RoundStartEvent:
		players := make([]Player, len(e.Players))
		for i, p := range e.Players {
			players[i] = Player(p)
		}
		return &RoundStart{Type: TypeRoundStart, Round: e.Round, Players: players, Dealer: e.Dealer}, nil

	case game.HoleCardsEvent:
		return &HoleCards{Type: TypeHoleCards, Cards: Cards(e.Cards[:])}, nil

	case game.StageChangeEvent:
		return &StageChange{Type: TypeStageChange, Stage: e.Stage.String(), Community: Cards(e.Community)}, nil

	case game.BetPlacedEvent:
		return &BetPlaced{
			Type:   TypeBetPlaced,
			Player: e.Player,
			Action: e.Action.Type.String(),
			Amount: e.Action.Amount,
			Forced: e.Forced,
			Paid:   e.Paid,
			Pot:    e.Pot,
		}, nil

	case game.RoundResultEvent:
		winners := make([]Winner, len(e.Winners))
		for i, w := range e.Winners {
			winners[i] = Winner{Name: w.Name, Amount: w.Amount, BestFive: Cards(w.BestFive)}
			if w.Hand != nil {
				winners[i].Hand = w.Hand.String()
			}
		}
		return &RoundResult{Type: TypeRoundResult, Round: e.Round, Winners: winners}, nil

	case game.PlayerEliminatedEvent:
		return &PlayerEliminated{Type: TypePlayerEliminated, Name: e.Name}, nil

	case game.GameWinnerEvent:
		return &GameWinner{Type: TypeGameWinner, Name: e.Name, BankRoll: e.BankRoll}, nil

	default:
		return nil, fmt.Errorf("no wire form for event %T", ev)
	}
}

// ToEvent converts a server broadcast back to its engine event, the inverse
// of FromEvent. Client-side actors consume the same event vocabulary as
// local ones.
func ToEvent(msg any) (game.Event, error) {
	switch m := msg.(type) {
	case *PlayerJoined:
		return game.PlayerJoinedEvent{Player: game.PlayerInfo(m.Player)}, nil

	case *RoundStart:
		players := make([]game.PlayerInfo, len(m.Players))
		for i, p := range m.Players {
			players[i] = game.PlayerInfo(p)
		}
		return game.RoundStartEvent{Round: m.Round, Players: players, Dealer: m.Dealer}, nil

	case *HoleCards:
		cards, err := ParseCards(m.Cards)
		if err != nil {
			return nil, err
		}
		if len(cards) != 2 {
			return nil, fmt.Errorf("expected 2 hole cards, got %d", len(cards))
		}
		return game.HoleCardsEvent{Cards: [2]deck.Card{cards[0], cards[1]}}, nil

	case *StageChange:
		stage, err := game.ParseStage(m.Stage)
		if err != nil {
			return nil, err
		}
		community, err := ParseCards(m.Community)
		if err != nil {
			return nil, err
		}
		return game.StageChangeEvent{Stage: stage, Community: community}, nil

	case *BetPlaced:
		typ, err := game.ParseActionType(m.Action)
		if err != nil {
			return nil, err
		}
		return game.BetPlacedEvent{
			Player: m.Player,
			Action: game.BetAction{Type: typ, Amount: m.Amount},
			Forced: m.Forced,
			Paid:   m.Paid,
			Pot:    m.Pot,
		}, nil

	case *RoundResult:
		winners := make([]game.WinnerInfo, len(m.Winners))
		for i, w := range m.Winners {
			winners[i] = game.WinnerInfo{Name: w.Name, Amount: w.Amount}
			if len(w.BestFive) > 0 {
				five, err := ParseCards(w.BestFive)
				if err != nil {
					return nil, err
				}
				// The winning rank is recovered from the five cards.
				rank, _, err := hand.Best(five)
				if err != nil {
					return nil, err
				}
				winners[i].Hand = &rank
				winners[i].BestFive = five
			}
		}
		return game.RoundResultEvent{Round: m.Round, Winners: winners}, nil

	case *PlayerEliminated:
		return game.PlayerEliminatedEvent{Name: m.Name}, nil

	case *GameWinner:
		return game.GameWinnerEvent{Name: m.Name, BankRoll: m.BankRoll}, nil

	default:
		return nil, fmt.Errorf("no event form for message %T", msg)
	}
}
