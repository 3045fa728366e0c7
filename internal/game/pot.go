package game

import (
	"fmt"
	"sort"

	"github.com/lox/holdem/internal/hand"
)

// Tier is one slice of the round's pot: the chips wagered between two
// contribution thresholds and the players still eligible to win them. Tiers
// are ordered by ascending threshold and eligibility only ever narrows:
// eligible(tier k) ⊆ eligible(tier k-1).
type Tier struct {
	Threshold int
	Amount    int
	Eligible  []string
}

// Ledger tracks per-player contributions for one round and produces the
// tiered pots used for payout. It is created fresh each round and owned by
// the orchestrator.
type Ledger struct {
	contrib map[string]int
	folded  map[string]bool
	order   []string
}

// NewLedger creates an empty ledger. Contributions are recorded per player as
// bets are accepted; folded players keep their chips in the pot but lose
// eligibility.
func NewLedger() *Ledger {
	return &Ledger{
		contrib: make(map[string]int),
		folded:  make(map[string]bool),
	}
}

// Record adds an accepted payment to a player's round contribution.
func (l *Ledger) Record(name string, amount int) {
	if _, seen := l.contrib[name]; !seen {
		l.order = append(l.order, name)
	}
	l.contrib[name] += amount
}

// MarkFolded removes a player's payout eligibility, leaving their chips in.
func (l *Ledger) MarkFolded(name string) {
	l.folded[name] = true
}

// Contribution returns a player's total contribution this round.
func (l *Ledger) Contribution(name string) int {
	return l.contrib[name]
}

// Total returns the sum of all contributions this round.
func (l *Ledger) Total() int {
	total := 0
	for _, c := range l.contrib {
		total += c
	}
	return total
}

// Tiers computes the pot tiers. Thresholds are the distinct contribution
// levels among non-folded players, ascending; each tier holds every chip
// wagered between the previous threshold and its own, from folded and
// non-folded players alike.
func (l *Ledger) Tiers() []Tier {
	levels := make(map[int]bool)
	for name, c := range l.contrib {
		if !l.folded[name] && c > 0 {
			levels[c] = true
		}
	}

	thresholds := make([]int, 0, len(levels))
	for t := range levels {
		thresholds = append(thresholds, t)
	}
	sort.Ints(thresholds)

	tiers := make([]Tier, 0, len(thresholds))
	prev := 0
	for _, t := range thresholds {
		tier := Tier{Threshold: t}
		for _, name := range l.order {
			c := l.contrib[name]
			tier.Amount += min(c, t) - min(c, prev)
			if !l.folded[name] && c >= t {
				tier.Eligible = append(tier.Eligible, name)
			}
		}
		tiers = append(tiers, tier)
		prev = t
	}

	// Folded players may have wagered beyond the top threshold; those chips
	// belong to the top tier, or payout would not balance.
	if len(tiers) > 0 {
		counted := 0
		for _, tier := range tiers {
			counted += tier.Amount
		}
		tiers[len(tiers)-1].Amount += l.Total() - counted
	}

	return tiers
}

// AwardAll pays the entire pot to a single player, used when everyone else
// has folded.
func (l *Ledger) AwardAll(name string) map[string]int {
	return map[string]int{name: l.Total()}
}

// Distribute pays out every tier given each eligible player's hand. seating
// must list players in table order starting with the player immediately left
// of the dealer: when winners tie, an indivisible remainder goes to the tied
// player earliest in that order. Tiers whose eligible players all folded
// merge downward into the next tier with a winner.
//
// The returned payouts always sum to Total(); if they cannot, the round has
// hit a logic defect and ErrPotImbalance is returned.
func (l *Ledger) Distribute(ranks map[string]hand.Rank, seating []string) (map[string]int, error) {
	tiers := l.Tiers()
	payouts := make(map[string]int)

	carry := 0
	for i := len(tiers) - 1; i >= 0; i-- {
		amount := tiers[i].Amount + carry
		carry = 0

		winners := tierWinners(tiers[i].Eligible, ranks, seating)
		if len(winners) == 0 {
			carry = amount
			continue
		}

		share := amount / len(winners)
		remainder := amount % len(winners)
		for _, name := range winners {
			payouts[name] += share
		}
		payouts[winners[0]] += remainder
	}

	if carry != 0 {
		return nil, fmt.Errorf("%w: %d chips with no eligible winner", ErrPotImbalance, carry)
	}

	paid := 0
	for _, amount := range payouts {
		paid += amount
	}
	if total := l.Total(); paid != total {
		return nil, fmt.Errorf("%w: paid %d of %d contributed", ErrPotImbalance, paid, total)
	}

	return payouts, nil
}

// tierWinners returns the eligible players holding the maximal hand, ordered
// by seating so the first entry is closest to the dealer's left.
func tierWinners(eligible []string, ranks map[string]hand.Rank, seating []string) []string {
	var (
		best    hand.Rank
		winners []string
	)
	for _, name := range eligible {
		rank, ok := ranks[name]
		if !ok {
			continue
		}
		if len(winners) == 0 {
			best, winners = rank, []string{name}
			continue
		}
		switch cmp := rank.Compare(best); {
		case cmp > 0:
			best, winners = rank, []string{name}
		case cmp == 0:
			winners = append(winners, name)
		}
	}

	sort.SliceStable(winners, func(i, j int) bool {
		return seatIndex(seating, winners[i]) < seatIndex(seating, winners[j])
	})
	return winners
}

func seatIndex(seating []string, name string) int {
	for i, s := range seating {
		if s == name {
			return i
		}
	}
	return len(seating)
}
