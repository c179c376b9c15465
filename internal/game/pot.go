package game

import "sort"

// Pot is one pot tier: its amount and the seats that may win it. Pots are
// ordered from the lowest contribution boundary (resolved first) upward;
// index 0 is the main pot.
type Pot struct {
	Amount   int
	Eligible []int
}

// Contribution is one player's total commitment to the hand, as fed to
// ComputePots. Folded players' chips stay in the pots they contributed to
// but folded seats are excluded from every eligible set.
type Contribution struct {
	Seat   int
	Amount int
	Folded bool
}

// ComputePots converts per-player hand commitments into a main pot and
// zero or more side pots. It is a pure function: sort the distinct nonzero
// commitment levels ascending; each boundary forms a tier worth
// (boundary - previous) x (players committed at least that much), eligible
// to the unfolded players at or above the boundary.
//
// The sum of all pot amounts always equals the sum of all contributions.
func ComputePots(contribs []Contribution) []Pot {
	levels := make([]int, 0, len(contribs))
	for _, c := range contribs {
		if c.Amount > 0 {
			levels = append(levels, c.Amount)
		}
	}
	if len(levels) == 0 {
		return nil
	}
	sort.Ints(levels)
	levels = dedupInts(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, c := range contribs {
			if c.Amount <= prev {
				continue
			}
			slice := c.Amount - prev
			if slice > level-prev {
				slice = level - prev
			}
			pot.Amount += slice
			if c.Amount >= level && !c.Folded {
				pot.Eligible = append(pot.Eligible, c.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	return pots
}

// potTotal sums all pot amounts.
func potTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

// splitPot divides a pot among winners, assigning remainder chips one
// each to winners ordered clockwise from the button's left. The order
// argument ranks seats for remainder assignment; lower comes first.
func splitPot(amount int, winners []int, order func(seat int) int) map[int]int {
	if len(winners) == 0 {
		return nil
	}

	sorted := make([]int, len(winners))
	copy(sorted, winners)
	sort.Slice(sorted, func(i, j int) bool {
		return order(sorted[i]) < order(sorted[j])
	})

	share := amount / len(sorted)
	remainder := amount % len(sorted)

	awards := make(map[int]int, len(sorted))
	for i, seat := range sorted {
		awards[seat] = share
		if i < remainder {
			awards[seat]++
		}
	}
	return awards
}

func dedupInts(sorted []int) []int {
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
