// Package evaluator classifies the best five-card poker hand available
// from five, six or seven cards and defines a total order over results.
//
// The evaluation enumerates every five-card subset (at most C(7,5) = 21),
// classifies each, and keeps the maximum. A result compares by category
// first, then by its tie-break key lexicographically, so two results are
// equal only when the hands are true chops.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/ph4n70mr1ddl3r/holdem/internal/deck"
)

// Category enumerates the nine hand rankings from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
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

// HandResult is the classification of a five-card hand: its category plus
// an ordered tie-break key, most significant rank first. For a full house
// the key is [trips, pair]; for two pair [high pair, low pair, kicker];
// and so on. The key lengths differ by category but keys are only ever
// compared within a category.
type HandResult struct {
	Category Category
	TieBreak []int
}

// Compare returns 1 if r beats o, -1 if o beats r, and 0 for a true chop.
func (r HandResult) Compare(o HandResult) int {
	if r.Category != o.Category {
		if r.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := range r.TieBreak {
		if i >= len(o.TieBreak) {
			break
		}
		if r.TieBreak[i] != o.TieBreak[i] {
			if r.TieBreak[i] > o.TieBreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns the category name; handy in showdown events and logs.
func (r HandResult) String() string {
	return r.Category.String()
}

// Evaluate returns the best HandResult achievable from any five-card
// subset of the given cards. It accepts 5, 6 or 7 cards (two hole cards
// plus up to five community cards).
func Evaluate(cards []deck.Card) (HandResult, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandResult{}, fmt.Errorf("evaluate requires 5-7 cards, got %d", n)
	}

	best := HandResult{Category: -1}
	var five [5]deck.Card

	// Enumerate all C(n,5) subsets
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						result := classify(five)
						if best.Category < 0 || result.Compare(best) > 0 {
							best = result
						}
					}
				}
			}
		}
	}

	return best, nil
}

// classify determines the category and tie-break key of exactly five cards.
func classify(five [5]deck.Card) HandResult {
	ranks := make([]int, 5)
	flush := true
	for i, c := range five {
		ranks[i] = int(c.Rank)
		if c.Suit != five[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh := straightHighCard(ranks)

	if flush && straightHigh > 0 {
		return HandResult{Category: StraightFlush, TieBreak: []int{straightHigh}}
	}

	// Group ranks by multiplicity. groups is ordered by count desc, then
	// rank desc, which is exactly tie-break significance order.
	groups := groupRanks(ranks)

	switch {
	case groups[0].count == 4:
		return HandResult{Category: FourOfAKind, TieBreak: []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandResult{Category: FullHouse, TieBreak: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return HandResult{Category: Flush, TieBreak: ranks}
	case straightHigh > 0:
		return HandResult{Category: Straight, TieBreak: []int{straightHigh}}
	case groups[0].count == 3:
		return HandResult{Category: ThreeOfAKind, TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandResult{Category: TwoPair, TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return HandResult{Category: Pair, TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	default:
		return HandResult{Category: HighCard, TieBreak: ranks}
	}
}

// straightHighCard returns the high card of a straight formed by the five
// ranks (sorted descending), or 0 if they do not form one. The wheel
// A-2-3-4-5 counts as a five-high straight.
func straightHighCard(ranks []int) int {
	for i := 1; i < 5; i++ {
		if ranks[i] != ranks[i-1]-1 {
			// Wheel: A,5,4,3,2 sorted descending
			if i == 1 && ranks[0] == int(deck.Ace) &&
				ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2 {
				return 5
			}
			return 0
		}
	}
	return ranks[0]
}

type rankGroup struct {
	rank  int
	count int
}

// groupRanks buckets the five ranks by multiplicity, ordered by count
// descending then rank descending.
func groupRanks(ranks []int) []rankGroup {
	counts := make(map[int]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	groups := make([]rankGroup, 0, 5)
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
