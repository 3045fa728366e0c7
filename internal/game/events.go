package game

import (
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/hand"
)

// EventType identifies a game notification.
type EventType string

const (
	EventTypePlayerJoined     EventType = "player_joined"
	EventTypeRoundStart       EventType = "round_start"
	EventTypeHoleCards        EventType = "hole_cards"
	EventTypeStageChange      EventType = "stage_change"
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeRoundResult      EventType = "round_result"
	EventTypePlayerEliminated EventType = "player_eliminated"
	EventTypeGameWinner       EventType = "game_winner"
)

// Event is a notification emitted by the orchestrator and consumed by actors
// and observers. The transport layer owns the wire format; these carry the
// decision/event vocabulary only.
type Event interface {
	EventType() EventType
}

// PlayerInfo is the roster entry shared in events.
type PlayerInfo struct {
	Name     string
	BankRoll int
}

// PlayerJoinedEvent announces a new player and their bank roll.
type PlayerJoinedEvent struct {
	Player PlayerInfo
}

func (PlayerJoinedEvent) EventType() EventType { return EventTypePlayerJoined }

// RoundStartEvent announces the round's roster and dealer.
type RoundStartEvent struct {
	Round   int
	Players []PlayerInfo
	Dealer  string
}

func (RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// HoleCardsEvent is delivered only to the actor whose cards these are.
type HoleCardsEvent struct {
	Cards [2]deck.Card
}

func (HoleCardsEvent) EventType() EventType { return EventTypeHoleCards }

// StageChangeEvent declares a stage and the community cards revealed so far.
type StageChangeEvent struct {
	Stage     Stage
	Community []deck.Card
}

func (StageChangeEvent) EventType() EventType { return EventTypeStageChange }

// BetPlacedEvent is broadcast after every accepted action, including forced
// blinds (Forced is "small_blind" or "big_blind" for those, empty otherwise).
type BetPlacedEvent struct {
	Player string
	Action BetAction
	Forced string
	Paid   int
	Pot    int
}

func (BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// WinnerInfo describes one winner of a round: the chips they collected and,
// at showdown, the hand that won them.
type WinnerInfo struct {
	Name     string
	Amount   int
	Hand     *hand.Rank  // nil for an uncontested win
	BestFive []deck.Card // nil for an uncontested win
}

// RoundResultEvent reports the round's winner or tied winners.
type RoundResultEvent struct {
	Round   int
	Winners []WinnerInfo
}

func (RoundResultEvent) EventType() EventType { return EventTypeRoundResult }

// PlayerEliminatedEvent is emitted when a bankrupt player leaves the table.
type PlayerEliminatedEvent struct {
	Name string
}

func (PlayerEliminatedEvent) EventType() EventType { return EventTypePlayerEliminated }

// GameWinnerEvent ends the game: one player holds every chip.
type GameWinnerEvent struct {
	Name     string
	BankRoll int
}

func (GameWinnerEvent) EventType() EventType { return EventTypeGameWinner }
