package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/hand"
)

func TestDecodeDispatchesOnType(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte(`{"type":"join","name":"alice"}`))
	require.NoError(t, err)
	join, ok := msg.(*Join)
	require.True(t, ok)
	assert.Equal(t, "alice", join.Name)

	msg, err = Decode([]byte(`{"type":"action","action":"raise","amount":40}`))
	require.NoError(t, err)
	action, ok := msg.(*Action)
	require.True(t, ok)
	assert.Equal(t, "raise", action.Action)
	assert.Equal(t, 40, action.Amount)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"type":"shove_table"}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestActionRoundTrip(t *testing.T) {
	t.Parallel()

	wire := NewAction(game.BetAction{Type: game.Raise, Amount: 60})
	data, err := Marshal(wire)
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)

	parsed, err := msg.(*Action).BetAction()
	require.NoError(t, err)
	assert.Equal(t, game.Raise, parsed.Type)
	assert.Equal(t, 60, parsed.Amount)
}

func TestActionRejectsUnknownVerb(t *testing.T) {
	t.Parallel()

	a := &Action{Type: TypeAction, Action: "limp"}
	_, err := a.BetAction()
	assert.Error(t, err)
}

func TestNewActionRequestCarriesCards(t *testing.T) {
	t.Parallel()

	as, _ := deck.ParseCode("As")
	kh, _ := deck.ParseCode("Kh")
	flop, err := ParseCards([]string{"2c", "7d", "Jh"})
	require.NoError(t, err)

	req := NewActionRequest(game.BetRequest{
		Stage:      game.Flop,
		Call:       20,
		CurrentBet: 30,
		MinRaise:   10,
		BankRoll:   480,
		Pot:        90,
		Hole:       [2]deck.Card{as, kh},
		Community:  flop,
		Best:       hand.Rank{Category: hand.HighCard, Ranks: []deck.Rank{deck.Ace, deck.King, deck.Jack, deck.Seven, deck.Two}},
	})

	assert.Equal(t, TypeActionRequest, req.Type)
	assert.Equal(t, "flop", req.Stage)
	assert.Equal(t, []string{"As", "Kh"}, req.HoleCards)
	assert.Equal(t, []string{"2c", "7d", "Jh"}, req.Community)
	assert.NotEmpty(t, req.BestHand)
}

func TestActionRequestBetRequestRoundTrip(t *testing.T) {
	t.Parallel()

	req := &ActionRequest{
		Type:       TypeActionRequest,
		Stage:      "turn",
		Cycle:      1,
		Call:       50,
		CurrentBet: 80,
		MinRaise:   10,
		BankRoll:   400,
		Pot:        210,
		HoleCards:  []string{"As", "Ah"},
		Community:  []string{"2c", "7d", "Jh", "Ad"},
	}

	parsed, err := req.BetRequest()
	require.NoError(t, err)
	assert.Equal(t, game.Turn, parsed.Stage)
	assert.Equal(t, 50, parsed.Call)
	assert.Len(t, parsed.Community, 4)
	// Best hand re-evaluated locally: trip aces.
	assert.Equal(t, hand.ThreeOfAKind, parsed.Best.Category)
}

func TestToEventInvertsFromEvent(t *testing.T) {
	t.Parallel()

	as, _ := deck.ParseCode("As")
	kh, _ := deck.ParseCode("Kh")
	original := game.StageChangeEvent{
		Stage:     game.Flop,
		Community: []deck.Card{as, kh},
	}

	msg, err := FromEvent(original)
	require.NoError(t, err)
	back, err := ToEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestParseCardsRejectsBadCode(t *testing.T) {
	t.Parallel()

	_, err := ParseCards([]string{"As", "1x"})
	assert.Error(t, err)
}

func TestFromEvent(t *testing.T) {
	t.Parallel()

	as, _ := deck.ParseCode("As")
	kh, _ := deck.ParseCode("Kh")

	msg, err := FromEvent(game.HoleCardsEvent{Cards: [2]deck.Card{as, kh}})
	require.NoError(t, err)
	assert.Equal(t, &HoleCards{Type: TypeHoleCards, Cards: []string{"As", "Kh"}}, msg)

	msg, err = FromEvent(game.BetPlacedEvent{
		Player: "bob",
		Action: game.BetAction{Type: game.Raise, Amount: 40},
		Paid:   30,
		Pot:    90,
	})
	require.NoError(t, err)
	bp := msg.(*BetPlaced)
	assert.Equal(t, "bob", bp.Player)
	assert.Equal(t, "raise", bp.Action)
	assert.Equal(t, 40, bp.Amount)
	assert.Equal(t, 90, bp.Pot)

	rank := hand.Rank{Category: hand.Flush, Ranks: []deck.Rank{deck.Ace, deck.Ten, deck.Nine, deck.Five, deck.Two}}
	msg, err = FromEvent(game.RoundResultEvent{
		Round:   3,
		Winners: []game.WinnerInfo{{Name: "carol", Amount: 120, Hand: &rank}},
	})
	require.NoError(t, err)
	rr := msg.(*RoundResult)
	require.Len(t, rr.Winners, 1)
	assert.Equal(t, 120, rr.Winners[0].Amount)
	assert.NotEmpty(t, rr.Winners[0].Hand)
}
