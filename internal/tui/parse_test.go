package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  game.BetAction
	}{
		{"R 40", game.BetAction{Type: game.Raise, Amount: 40}},
		{"raise 100", game.BetAction{Type: game.Raise, Amount: 100}},
		{"C", game.BetAction{Type: game.Call}},
		{"call", game.BetAction{Type: game.Call}},
		{"Ch", game.BetAction{Type: game.Check}},
		{"CHECK", game.BetAction{Type: game.Check}},
		{"A", game.BetAction{Type: game.AllIn}},
		{"all-in", game.BetAction{Type: game.AllIn}},
		{"F", game.BetAction{Type: game.Fold}},
		{"  fold  ", game.BetAction{Type: game.Fold}},
	}

	for _, tc := range cases {
		action, err := ParseAction(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, action, tc.input)
	}
}

func TestParseActionRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "x", "R", "R ten", "R -5", "R 0", "chk"} {
		_, err := ParseAction(input)
		assert.Error(t, err, "%q", input)
	}
}
