package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/deck"
)

// cards builds a hand from compact codes like "As Kd 7c".
func cards(t *testing.T, codes ...string) []deck.Card {
	t.Helper()
	out := make([]deck.Card, len(codes))
	for i, code := range codes {
		c, err := deck.ParseCode(code)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestClassifyCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		codes    []string
		category Category
		ranks    []deck.Rank
	}{
		{"high card", []string{"As", "Kd", "9c", "7h", "2s"}, HighCard, []deck.Rank{deck.Ace, deck.King, deck.Nine, deck.Seven, deck.Two}},
		{"one pair", []string{"As", "Ad", "9c", "7h", "2s"}, OnePair, []deck.Rank{deck.Ace, deck.Nine, deck.Seven, deck.Two}},
		{"two pair", []string{"As", "Ad", "9c", "9h", "2s"}, TwoPair, []deck.Rank{deck.Ace, deck.Nine, deck.Two}},
		{"trips", []string{"As", "Ad", "Ac", "9h", "2s"}, ThreeOfAKind, []deck.Rank{deck.Ace, deck.Nine, deck.Two}},
		{"straight", []string{"9s", "8d", "7c", "6h", "5s"}, Straight, []deck.Rank{deck.Nine}},
		{"broadway straight", []string{"As", "Kd", "Qc", "Jh", "Ts"}, Straight, []deck.Rank{deck.Ace}},
		{"wheel straight", []string{"As", "2d", "3c", "4h", "5s"}, Straight, []deck.Rank{deck.Five}},
		{"flush", []string{"As", "Js", "9s", "7s", "2s"}, Flush, []deck.Rank{deck.Ace, deck.Jack, deck.Nine, deck.Seven, deck.Two}},
		{"full house", []string{"Ks", "Kd", "Kc", "2h", "2s"}, FullHouse, []deck.Rank{deck.King, deck.Two}},
		{"quads", []string{"Ks", "Kd", "Kc", "Kh", "2s"}, FourOfAKind, []deck.Rank{deck.King, deck.Two}},
		{"straight flush", []string{"9s", "8s", "7s", "6s", "5s"}, StraightFlush, []deck.Rank{deck.Nine}},
		{"steel wheel", []string{"As", "2s", "3s", "4s", "5s"}, StraightFlush, []deck.Rank{deck.Five}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank := Classify(cards(t, tt.codes...))
			assert.Equal(t, tt.category, rank.Category)
			assert.Equal(t, tt.ranks, rank.Ranks)
		})
	}
}

func TestAceLowStraightOrdering(t *testing.T) {
	t.Parallel()

	wheel := Classify(cards(t, "As", "2d", "3c", "4h", "5s"))
	sixHigh := Classify(cards(t, "2d", "3c", "4h", "5s", "6d"))
	broadway := Classify(cards(t, "Ts", "Jd", "Qc", "Kh", "Ad"))

	assert.Equal(t, -1, wheel.Compare(sixHigh), "A-5 straight must rank below 2-6")
	assert.Equal(t, -1, sixHigh.Compare(broadway))
	assert.Equal(t, -1, wheel.Compare(broadway))
	assert.Equal(t, 1, broadway.Compare(wheel))
}

func TestBestPicksStrongestSubset(t *testing.T) {
	t.Parallel()

	// Seven cards holding both a flush and a straight: flush must win.
	rank, five, err := Best(cards(t, "As", "Js", "9s", "7s", "2s", "8d", "6c"))
	require.NoError(t, err)
	assert.Equal(t, Flush, rank.Category)
	assert.Len(t, five, 5)

	// Board pair plus hole pair makes two pair with the right kicker.
	rank, _, err = Best(cards(t, "Ah", "Ad", "Kc", "Kd", "9s", "4h", "2c"))
	require.NoError(t, err)
	assert.Equal(t, TwoPair, rank.Category)
	assert.Equal(t, []deck.Rank{deck.Ace, deck.King, deck.Nine}, rank.Ranks)
}

func TestBestIsDeterministic(t *testing.T) {
	t.Parallel()

	seven := cards(t, "Qh", "Qd", "Qs", "9s", "9d", "4h", "2c")
	first, firstFive, err := Best(seven)
	require.NoError(t, err)

	// Re-evaluate with the input permuted; result must be identical.
	permuted := []deck.Card{seven[6], seven[3], seven[0], seven[5], seven[1], seven[4], seven[2]}
	again, againFive, err := Best(permuted)
	require.NoError(t, err)

	assert.Equal(t, 0, first.Compare(again))
	assert.Equal(t, first.Category, again.Category)
	assert.Equal(t, firstFive, againFive)
	assert.Equal(t, FullHouse, first.Category)
}

func TestCompareIsTotal(t *testing.T) {
	t.Parallel()

	hands := []Rank{
		Classify(cards(t, "As", "Kd", "9c", "7h", "2s")),
		Classify(cards(t, "As", "Ad", "9c", "7h", "2s")),
		Classify(cards(t, "9s", "8d", "7c", "6h", "5s")),
		Classify(cards(t, "As", "2d", "3c", "4h", "5s")),
		Classify(cards(t, "Ks", "Kd", "Kc", "2h", "2s")),
	}

	for i, a := range hands {
		for j, b := range hands {
			cmp, inv := a.Compare(b), b.Compare(a)
			assert.Equal(t, -inv, cmp, "compare(%d,%d) not antisymmetric", i, j)
			if i == j {
				assert.Equal(t, 0, cmp)
			}
		}
	}
}

func TestBestPartialHands(t *testing.T) {
	t.Parallel()

	// Preflop: a pocket pair ranks as One Pair.
	rank, _, err := Best(cards(t, "Qh", "Qd"))
	require.NoError(t, err)
	assert.Equal(t, OnePair, rank.Category)

	_, _, err = Best(cards(t, "Qh"))
	assert.Error(t, err)
}

func TestRankString(t *testing.T) {
	t.Parallel()

	rank := Classify(cards(t, "Ks", "Kd", "Kc", "2h", "2s"))
	assert.Equal(t, "Full House, Kings over Twos", rank.String())

	rank = Classify(cards(t, "As", "2d", "3c", "4h", "5s"))
	assert.Equal(t, "Straight, Five high", rank.String())
}
