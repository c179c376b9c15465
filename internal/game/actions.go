package game

// ActionKind enumerates the closed set of player actions. Chat is carried
// through the same channel but never touches game state.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllInAction
	SitOut
	SitIn
	Chat
)

func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin", "sit_out", "sit_in", "chat"}[a]
}

// PlayerAction is the engine's sole input. Amount is the street total for
// Bet and the raise-to total for Raise; it is ignored for other kinds.
// Text carries chat messages untouched.
type PlayerAction struct {
	Seat   int
	Kind   ActionKind
	Amount int
	Text   string
}

// FoldAction is a convenience constructor used by drivers that auto-fold.
func FoldAction(seat int) PlayerAction {
	return PlayerAction{Seat: seat, Kind: Fold}
}

// CheckAction is a convenience constructor used by drivers that auto-check.
func CheckAction(seat int) PlayerAction {
	return PlayerAction{Seat: seat, Kind: Check}
}
