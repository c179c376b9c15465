package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	ShowdownStreet
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// BettingState holds all mutable state of one betting street. Committed
// amounts live on the players; this tracks the bet to match, the raise
// increment, and whose turn it is.
type BettingState struct {
	Street       Street
	CurrentBet   int // street commitment every active player must match
	MinRaise     int // size of the last full bet/raise increment
	ToAct        int
	LastAggressor int // seat of the last full bettor/raiser, -1 if none

	// acted records who has acted since the last action-reopening raise.
	// Blinds do not count as acting, which is what gives the big blind
	// its preflop option. An under-raise all-in deliberately does not
	// clear these flags, so players who already acted cannot re-raise.
	acted []bool

	bigBlind int
}

// newBettingState starts a street. Preflop callers overwrite CurrentBet
// after posting blinds.
func newBettingState(street Street, numSeats, bigBlind, toAct int) *BettingState {
	return &BettingState{
		Street:        street,
		CurrentBet:    0,
		MinRaise:      bigBlind,
		ToAct:         toAct,
		LastAggressor: -1,
		acted:         make([]bool, numSeats),
		bigBlind:      bigBlind,
	}
}

// markActed records that a seat has acted on the current bet level.
func (bs *BettingState) markActed(seat int) {
	bs.acted[seat] = true
}

// reopen clears acted flags after a full raise; everyone else must respond.
func (bs *BettingState) reopen(raiser int) {
	for i := range bs.acted {
		bs.acted[i] = false
	}
	bs.acted[raiser] = true
	bs.LastAggressor = raiser
}

// raiseAllowed reports whether the seat may still raise this street. A
// seat that has already acted on the current level only gets the option
// back when a full raise reopens the action.
func (bs *BettingState) raiseAllowed(seat int) bool {
	return !bs.acted[seat]
}

// complete reports whether the street is closed: every player still in
// the hand has either matched the current bet or is all-in, and everyone
// who can act has acted since the last full raise.
func (bs *BettingState) complete(players []*Player) bool {
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != bs.CurrentBet {
			return false
		}
		if !bs.acted[p.Seat] {
			return false
		}
	}
	return true
}
