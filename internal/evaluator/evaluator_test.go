package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ph4n70mr1ddl3r/holdem/internal/deck"
)

func cards(t *testing.T, strs ...string) []deck.Card {
	t.Helper()
	cs, err := deck.ParseCards(strs...)
	require.NoError(t, err)
	return cs
}

func eval(t *testing.T, strs ...string) HandResult {
	t.Helper()
	r, err := Evaluate(cards(t, strs...))
	require.NoError(t, err)
	return r
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		category Category
		tieBreak []int
	}{
		{"royal flush", []string{"Ah", "Kh", "Qh", "Jh", "Th"}, StraightFlush, []int{14}},
		{"straight flush nine high", []string{"9s", "8s", "7s", "6s", "5s"}, StraightFlush, []int{9}},
		{"steel wheel", []string{"As", "2s", "3s", "4s", "5s"}, StraightFlush, []int{5}},
		{"quad aces", []string{"As", "Ah", "Ad", "Ac", "Kh"}, FourOfAKind, []int{14, 13}},
		{"kings full of queens", []string{"Ks", "Kh", "Kd", "Qs", "Qh"}, FullHouse, []int{13, 12}},
		{"flush", []string{"Ah", "Kh", "Qh", "Jh", "9h"}, Flush, []int{14, 13, 12, 11, 9}},
		{"broadway straight", []string{"Th", "Jd", "Qc", "Ks", "Ah"}, Straight, []int{14}},
		{"wheel straight", []string{"Ah", "2d", "3c", "4s", "5h"}, Straight, []int{5}},
		{"trip sevens", []string{"7h", "7d", "7c", "Ks", "2h"}, ThreeOfAKind, []int{7, 13, 2}},
		{"aces and kings", []string{"Ah", "Ad", "Kc", "Ks", "Qh"}, TwoPair, []int{14, 13, 12}},
		{"pair of jacks", []string{"Jh", "Jd", "Ac", "Ks", "Qh"}, Pair, []int{11, 14, 13, 12}},
		{"ace high", []string{"Ah", "Kd", "Qc", "Js", "9h"}, HighCard, []int{14, 13, 12, 11, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := eval(t, tt.cards...)
			assert.Equal(t, tt.category, r.Category)
			assert.Equal(t, tt.tieBreak, r.TieBreak)
		})
	}
}

func TestEvaluateBestOfSeven(t *testing.T) {
	t.Parallel()

	// Hole cards plus board where the best five are not the first five
	r := eval(t, "2h", "2d", "Ah", "Kh", "Qh", "Jh", "Th")
	assert.Equal(t, StraightFlush, r.Category, "should find the royal flush, not the pair")

	// Board plays: both hole cards replaced by board pair
	r = eval(t, "3c", "4d", "As", "Ah", "Ad", "Ac", "Kh")
	assert.Equal(t, FourOfAKind, r.Category)
	assert.Equal(t, []int{14, 13}, r.TieBreak, "king on board outkicks both hole cards")
}

func TestCategoryLadder(t *testing.T) {
	t.Parallel()

	ladder := []HandResult{
		eval(t, "Ah", "Kh", "Qh", "Jh", "Th"), // royal flush
		eval(t, "As", "Ah", "Ad", "Ac", "Kh"), // quad aces
		eval(t, "Ks", "Kh", "Kd", "2s", "2h"), // kings full of twos
		eval(t, "Ah", "Kh", "Qh", "Jh", "9h"), // flush
		eval(t, "Th", "Jd", "Qc", "Ks", "Ah"), // straight
		eval(t, "7h", "7d", "7c", "Ks", "2h"), // trips
		eval(t, "Ah", "Ad", "Kc", "Ks", "Qh"), // two pair
		eval(t, "Jh", "Jd", "Ac", "Ks", "Qh"), // pair
		eval(t, "Ah", "Kd", "Qc", "Js", "9h"), // high card
	}

	for i := 0; i < len(ladder); i++ {
		for j := 0; j < len(ladder); j++ {
			cmp := ladder[i].Compare(ladder[j])
			switch {
			case i < j:
				assert.Equal(t, 1, cmp, "ladder[%d] should beat ladder[%d]", i, j)
			case i > j:
				assert.Equal(t, -1, cmp, "ladder[%d] should lose to ladder[%d]", i, j)
			default:
				assert.Equal(t, 0, cmp)
			}
			// Antisymmetry
			assert.Equal(t, -cmp, ladder[j].Compare(ladder[i]))
		}
	}
}

func TestKickerTieBreaks(t *testing.T) {
	t.Parallel()

	// Same pair, differing kicker deep in the key
	a := eval(t, "Jh", "Jd", "Ac", "Ks", "Qh")
	b := eval(t, "Js", "Jc", "Ac", "Ks", "9h")
	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))

	// Higher two pair beats higher kicker
	c := eval(t, "Ah", "Ad", "Kc", "Ks", "2h")
	d := eval(t, "Ah", "Ad", "Qc", "Qs", "Kh")
	assert.Equal(t, 1, c.Compare(d))

	// Wheel loses to six-high straight
	e := eval(t, "Ah", "2d", "3c", "4s", "5h")
	f := eval(t, "2h", "3d", "4c", "5s", "6h")
	assert.Equal(t, -1, e.Compare(f))
}

func TestTrueChop(t *testing.T) {
	t.Parallel()

	// Identical board-dependent hands in different suits
	a := eval(t, "Ah", "Kd", "Qc", "Js", "Th")
	b := eval(t, "As", "Kc", "Qd", "Jh", "Ts")
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, 0, b.Compare(a))
}

func TestTransitivitySpot(t *testing.T) {
	t.Parallel()

	a := eval(t, "9s", "9h", "9d", "Ac", "Kh") // trip nines
	b := eval(t, "8s", "8h", "8d", "Ac", "Kh") // trip eights
	c := eval(t, "Ah", "Ad", "Kc", "Ks", "Qh") // two pair

	require.Equal(t, 1, a.Compare(b))
	require.Equal(t, 1, b.Compare(c))
	assert.Equal(t, 1, a.Compare(c), "comparison must be transitive")
}

func TestEvaluateRejectsBadCounts(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(cards(t, "Ah", "Kd"))
	assert.Error(t, err)
	_, err = Evaluate(cards(t, "Ah", "Kd", "Qc", "Js", "Th", "2h", "3h", "4h"))
	assert.Error(t, err)
}
