package game

import "github.com/ph4n70mr1ddl3r/holdem/internal/deck"

// Stage is the coarse table state. Street-level progression within a hand
// lives in the snapshot's Street field.
type Stage int

const (
	StageWaiting Stage = iota
	StageBetting
	StageShowdown
	StageHandComplete
)

func (s Stage) String() string {
	return [...]string{"waiting", "betting", "showdown", "hand_complete"}[s]
}

// PlayerSnapshot is an immutable view of one seat. HoleCards are included
// for every dealt-in player; redacting opponents' cards is the transport
// layer's job.
type PlayerSnapshot struct {
	Seat       int
	ID         string
	Name       string
	Chips      int
	Status     Status
	CurrentBet int
	TotalBet   int
	HoleCards  []deck.Card
}

// Snapshot is an immutable copy of the full table state taken after a
// mutation. Snapshots share nothing with live state and are safe to read
// concurrently.
type Snapshot struct {
	Stage          Stage
	Street         Street
	HandNumber     int
	ButtonSeat     int
	Pot            int
	Pots           []Pot
	CommunityCards []deck.Card
	Players        []PlayerSnapshot
	CurrentBet     int
	MinRaise       int
	ToAct          int // -1 when no action is pending
}

// snapshot deep-copies the table's current state.
func (t *Table) snapshot() Snapshot {
	s := Snapshot{
		Stage:      t.stage,
		HandNumber: t.handNumber,
		ButtonSeat: t.button,
		ToAct:      -1,
	}

	if t.betting != nil {
		s.Street = t.betting.Street
		s.CurrentBet = t.betting.CurrentBet
		s.MinRaise = t.betting.MinRaise
		if t.stage == StageBetting {
			s.ToAct = t.betting.ToAct
		}
	}

	s.CommunityCards = append([]deck.Card(nil), t.board...)

	contribs := t.contributions()
	s.Pots = ComputePots(contribs)
	s.Pot = potTotal(s.Pots)

	s.Players = make([]PlayerSnapshot, len(t.players))
	for i, p := range t.players {
		s.Players[i] = PlayerSnapshot{
			Seat:       p.Seat,
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			Status:     p.Status,
			CurrentBet: p.Bet,
			TotalBet:   p.TotalBet,
			HoleCards:  append([]deck.Card(nil), p.HoleCards...),
		}
	}

	return s
}
