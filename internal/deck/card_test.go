package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card    Card
		display string
		code    string
	}{
		{NewCard(Ace, Spades), "A♠", "As"},
		{NewCard(Ten, Hearts), "T♥", "Th"},
		{NewCard(Two, Clubs), "2♣", "2c"},
		{NewCard(Queen, Diamonds), "Q♦", "Qd"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.display, tt.card.String())
		assert.Equal(t, tt.code, tt.card.Code())
	}
}

func TestParseCode(t *testing.T) {
	t.Parallel()

	card, err := ParseCode("Kh")
	require.NoError(t, err)
	assert.Equal(t, NewCard(King, Hearts), card)

	roundTrip, err := ParseCode(card.Code())
	require.NoError(t, err)
	assert.Equal(t, card, roundTrip)

	_, err = ParseCode("Xx")
	assert.Error(t, err)

	_, err = ParseCode("A")
	assert.Error(t, err)
}

func TestIsRed(t *testing.T) {
	t.Parallel()

	assert.True(t, NewCard(Ace, Hearts).IsRed())
	assert.True(t, NewCard(Ace, Diamonds).IsRed())
	assert.False(t, NewCard(Ace, Spades).IsRed())
	assert.False(t, NewCard(Ace, Clubs).IsRed())
}
