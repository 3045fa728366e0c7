package hand

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/internal/deck"
)

// Category represents the category of a poker hand, ordered from weakest to
// strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Rank is the totally ordered value of a five-card hand: a category plus the
// ranks needed to break ties within it, most significant first.
//
// The carried ranks per category are:
//
//	StraightFlush, Straight   high card of the run (Five for the wheel)
//	FourOfAKind               quad rank, kicker
//	FullHouse                 trips rank, pair rank
//	Flush, HighCard           all five ranks descending
//	ThreeOfAKind              trips rank, two kickers descending
//	TwoPair                   high pair, low pair, kicker
//	OnePair                   pair rank, three kickers descending
type Rank struct {
	Category Category
	Ranks    []deck.Rank
}

// Compare returns -1 if r is weaker than other, 0 if equal, 1 if stronger.
// Categories order first; within a category the carried ranks compare
// lexicographically.
func (r Rank) Compare(other Rank) int {
	if r.Category != other.Category {
		if r.Category < other.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(r.Ranks) && i < len(other.Ranks); i++ {
		if r.Ranks[i] != other.Ranks[i] {
			if r.Ranks[i] < other.Ranks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String returns a human-readable description, e.g. "Full House, Kings over Twos".
func (r Rank) String() string {
	switch r.Category {
	case HighCard:
		return fmt.Sprintf("High Card, %s", r.Ranks[0].Name())
	case OnePair:
		return fmt.Sprintf("One Pair, %ss", r.Ranks[0].Name())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss", r.Ranks[0].Name(), r.Ranks[1].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", r.Ranks[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", r.Ranks[0].Name())
	case Flush:
		return fmt.Sprintf("Flush, %s high", r.Ranks[0].Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %ss over %ss", r.Ranks[0].Name(), r.Ranks[1].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", r.Ranks[0].Name())
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", r.Ranks[0].Name())
	default:
		return "Unknown"
	}
}

// Codes returns the carried ranks as their compact string forms, for logs and
// wire messages.
func (r Rank) Codes() []string {
	codes := make([]string, len(r.Ranks))
	for i, rk := range r.Ranks {
		codes[i] = rk.String()
	}
	return codes
}

// FormatCards renders cards for logs and terminal output, e.g. "A♠ K♦ 7♣".
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
