package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when more cards are requested than remain in the
// deck. With 52 cards this never happens at realistic table sizes, so callers
// treat it as a fatal internal error rather than a recoverable condition.
var ErrExhausted = errors.New("deck exhausted")

// Deck represents a standard 52-card deck. Cards are consumed in order after
// a shuffle; a deck is owned by a single round and never shared.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// New creates a new shuffled deck using the provided random source.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// Shuffle reorders the full deck using Fisher-Yates and rewinds dealing.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards from the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne removes and returns the top card from the deck.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Burn discards the top card before a community deal.
func (d *Deck) Burn() error {
	_, err := d.DealOne()
	return err
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
