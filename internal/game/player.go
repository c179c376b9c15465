package game

import "github.com/ph4n70mr1ddl3r/holdem/internal/deck"

// Status represents a player's standing within the current hand. Folded
// and AllIn are only reset at the start of the next hand.
type Status int

const (
	Active Status = iota
	Folded
	AllIn
	SittingOut
)

func (s Status) String() string {
	return [...]string{"active", "folded", "allin", "sitting_out"}[s]
}

// Player is one seat at the table. The Table is the only component that
// mutates chip counts.
type Player struct {
	Seat      int
	ID        string
	Name      string
	Chips     int
	HoleCards []deck.Card
	Status    Status

	// Bet is the amount committed this street, TotalBet this hand. Bet
	// resets when a street closes; TotalBet feeds pot accounting.
	Bet      int
	TotalBet int
}

// CanAct returns true if the player can still take betting actions.
func (p *Player) CanAct() bool {
	return p.Status == Active
}

// InHand returns true if the player still contests the pot.
func (p *Player) InHand() bool {
	return p.Status == Active || p.Status == AllIn
}
