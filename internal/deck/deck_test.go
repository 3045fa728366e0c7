package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	cards, err := d.Deal(52)
	require.NoError(t, err)
	for _, c := range cards {
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDealExhaustion(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(2))
	_, err := d.Deal(50)
	require.NoError(t, err)

	_, err = d.Deal(3)
	assert.ErrorIs(t, err, ErrExhausted)

	// The failed deal must not consume anything.
	assert.Equal(t, 2, d.Remaining())

	_, err = d.Deal(2)
	require.NoError(t, err)

	_, err = d.DealOne()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, d.Burn(), ErrExhausted)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	d1 := New(randutil.New(42))
	d2 := New(randutil.New(42))
	c1, err := d1.Deal(52)
	require.NoError(t, err)
	c2, err := d2.Deal(52)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)

	d3 := New(randutil.New(43))
	c3, err := d3.Deal(52)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)
}

func TestBurnConsumesOneCard(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(3))
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())
}
