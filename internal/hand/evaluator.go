package hand

import (
	"fmt"
	"sort"

	"github.com/lox/holdem/internal/deck"
)

// Best determines the strongest five-card hand available from the given
// cards. It accepts 2 to 7 cards so the same call serves both the showdown
// (2 hole + 5 community) and mid-hand "current best" evaluation while fewer
// community cards are out.
//
// For 5 or more cards every five-card subset is classified and the maximal
// one selected. The result is deterministic regardless of enumeration order:
// ties on (category, ranks) are broken on the subset's cards themselves.
func Best(cards []deck.Card) (Rank, []deck.Card, error) {
	switch {
	case len(cards) < 2 || len(cards) > 7:
		return Rank{}, nil, fmt.Errorf("cannot evaluate %d cards", len(cards))
	case len(cards) < 5:
		rank := classifyPartial(cards)
		best := sortedDesc(cards)
		return rank, best, nil
	}

	var (
		bestRank  Rank
		bestFive  []deck.Card
		haveFirst bool
	)

	forEachFive(cards, func(five []deck.Card) {
		rank := Classify(five)
		if !haveFirst {
			bestRank, bestFive, haveFirst = rank, sortedDesc(five), true
			return
		}
		switch cmp := rank.Compare(bestRank); {
		case cmp > 0:
			bestRank, bestFive = rank, sortedDesc(five)
		case cmp == 0:
			// Equal-value subsets can still differ by suit; pick the
			// canonically larger one so evaluation order never shows through.
			if candidate := sortedDesc(five); cardsGreater(candidate, bestFive) {
				bestFive = candidate
			}
		}
	})

	return bestRank, bestFive, nil
}

// Classify computes the Rank of exactly five cards.
func Classify(five []deck.Card) Rank {
	if len(five) != 5 {
		panic(fmt.Sprintf("classify requires 5 cards, got %d", len(five)))
	}

	groups := groupByRank(five)

	flush := true
	for _, c := range five[1:] {
		if c.Suit != five[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, isStraight := straightHigh(five)

	switch {
	case flush && isStraight:
		return Rank{Category: StraightFlush, Ranks: []deck.Rank{straightHigh}}
	case groups[0].count == 4:
		return Rank{Category: FourOfAKind, Ranks: []deck.Rank{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return Rank{Category: FullHouse, Ranks: []deck.Rank{groups[0].rank, groups[1].rank}}
	case flush:
		return Rank{Category: Flush, Ranks: groupRanks(groups)}
	case isStraight:
		return Rank{Category: Straight, Ranks: []deck.Rank{straightHigh}}
	case groups[0].count == 3:
		return Rank{Category: ThreeOfAKind, Ranks: groupRanks(groups)}
	case groups[0].count == 2 && groups[1].count == 2:
		return Rank{Category: TwoPair, Ranks: groupRanks(groups)}
	case groups[0].count == 2:
		return Rank{Category: OnePair, Ranks: groupRanks(groups)}
	default:
		return Rank{Category: HighCard, Ranks: groupRanks(groups)}
	}
}

// classifyPartial ranks 2-4 cards for the mid-hand "current best" context.
// Straights and flushes need five cards, so only the grouped categories can
// appear.
func classifyPartial(cards []deck.Card) Rank {
	groups := groupByRank(cards)
	switch {
	case groups[0].count == 4:
		return Rank{Category: FourOfAKind, Ranks: groupRanks(groups)}
	case groups[0].count == 3:
		return Rank{Category: ThreeOfAKind, Ranks: groupRanks(groups)}
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		return Rank{Category: TwoPair, Ranks: groupRanks(groups)}
	case groups[0].count == 2:
		return Rank{Category: OnePair, Ranks: groupRanks(groups)}
	default:
		return Rank{Category: HighCard, Ranks: groupRanks(groups)}
	}
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupByRank buckets cards by rank, ordered by count descending then rank
// descending. The carried tie-break ranks of every grouped category fall out
// of this ordering directly.
func groupByRank(cards []deck.Card) []rankGroup {
	counts := make(map[deck.Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func groupRanks(groups []rankGroup) []deck.Rank {
	ranks := make([]deck.Rank, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

// straightHigh reports whether the five cards form a straight and its high
// rank. The wheel A-2-3-4-5 is the one straight where the ace plays low; it
// carries Five so it compares below 2-3-4-5-6.
func straightHigh(five []deck.Card) (deck.Rank, bool) {
	ranks := make([]deck.Rank, len(five))
	for i, c := range five {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return 0, false
		}
	}

	if ranks[0] == deck.Two && ranks[1] == deck.Three && ranks[2] == deck.Four &&
		ranks[3] == deck.Five && ranks[4] == deck.Ace {
		return deck.Five, true
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return 0, false
		}
	}
	return ranks[4], true
}

// forEachFive visits every five-card subset in a fixed index order.
func forEachFive(cards []deck.Card, visit func([]deck.Card)) {
	n := len(cards)
	five := make([]deck.Card, 5)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == 5 {
			visit(five)
			return
		}
		for i := start; i <= n-(5-depth); i++ {
			five[depth] = cards[i]
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
}

func sortedDesc(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].Suit < out[j].Suit
	})
	return out
}

func cardsGreater(a, b []deck.Card) bool {
	for i := range a {
		if i >= len(b) {
			return true
		}
		if a[i].Rank != b[i].Rank {
			return a[i].Rank > b[i].Rank
		}
		if a[i].Suit != b[i].Suit {
			return a[i].Suit < b[i].Suit
		}
	}
	return false
}
