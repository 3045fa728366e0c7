// Package protocol defines the JSON message vocabulary spoken between the
// server and remote players. Every message carries a "type" discriminator;
// cards travel as compact codes like "As" and "Th".
package protocol

// MessageType identifies the type of message.
type MessageType string

const (
	// Client -> Server
	TypeJoin   MessageType = "join"
	TypeAction MessageType = "action"

	// Server -> Client
	TypeActionRequest    MessageType = "action_request"
	TypePlayerJoined     MessageType = "player_joined"
	TypeRoundStart       MessageType = "round_start"
	TypeHoleCards        MessageType = "hole_cards"
	TypeStageChange      MessageType = "stage_change"
	TypeBetPlaced        MessageType = "bet_placed"
	TypeRoundResult      MessageType = "round_result"
	TypePlayerEliminated MessageType = "player_eliminated"
	TypeGameWinner       MessageType = "game_winner"
	TypeError            MessageType = "error"
)

// Join is the first message a client sends after connecting. Table selects
// which hosted table to sit at; empty means the server's first table.
type Join struct {
	Type  MessageType `json:"type"`
	Name  string      `json:"name"`
	Table string      `json:"table,omitempty"`
}

// Action answers an ActionRequest. Amount is the new total stage bet and is
// only meaningful for raises.
type Action struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"` // fold, check, call, raise, allin
	Amount int         `json:"amount,omitempty"`
}

// ActionRequest asks the client for a betting decision.
type ActionRequest struct {
	Type       MessageType `json:"type"`
	Stage      string      `json:"stage"`
	Cycle      int         `json:"cycle"`
	Call       int         `json:"call"`
	CurrentBet int         `json:"current_bet"`
	MinRaise   int         `json:"min_raise"`
	BankRoll   int         `json:"bank_roll"`
	Pot        int         `json:"pot"`
	HoleCards  []string    `json:"hole_cards"`
	Community  []string    `json:"community"`
	BestHand   string      `json:"best_hand"`
}

// Player is the roster entry used in broadcasts.
type Player struct {
	Name     string `json:"name"`
	BankRoll int    `json:"bank_roll"`
}

// PlayerJoined is broadcast when a player takes a seat.
type PlayerJoined struct {
	Type   MessageType `json:"type"`
	Player Player      `json:"player"`
}

// RoundStart is broadcast at the top of each round.
type RoundStart struct {
	Type    MessageType `json:"type"`
	Round   int         `json:"round"`
	Players []Player    `json:"players"`
	Dealer  string      `json:"dealer"`
}

// HoleCards is sent privately to one player after the deal.
type HoleCards struct {
	Type  MessageType `json:"type"`
	Cards []string    `json:"cards"`
}

// StageChange is broadcast when a stage begins, with the community so far.
type StageChange struct {
	Type      MessageType `json:"type"`
	Stage     string      `json:"stage"`
	Community []string    `json:"community"`
}

// BetPlaced is broadcast after every committed action, blinds included.
type BetPlaced struct {
	Type   MessageType `json:"type"`
	Player string      `json:"player"`
	Action string      `json:"action"`
	Amount int         `json:"amount"`
	Forced string      `json:"forced,omitempty"` // small_blind, big_blind
	Paid   int         `json:"paid"`
	Pot    int         `json:"pot"`
}

// Winner is one payout line in a RoundResult.
type Winner struct {
	Name     string   `json:"name"`
	Amount   int      `json:"amount"`
	Hand     string   `json:"hand,omitempty"`
	BestFive []string `json:"best_five,omitempty"`
}

// RoundResult is broadcast once the round's pot has been distributed.
type RoundResult struct {
	Type    MessageType `json:"type"`
	Round   int         `json:"round"`
	Winners []Winner    `json:"winners"`
}

// PlayerEliminated is broadcast when a bankrupt player leaves the table.
type PlayerEliminated struct {
	Type MessageType `json:"type"`
	Name string      `json:"name"`
}

// GameWinner ends the game.
type GameWinner struct {
	Type     MessageType `json:"type"`
	Name     string      `json:"name"`
	BankRoll int         `json:"bank_roll"`
}

// Error reports a protocol-level problem to the client.
type Error struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
