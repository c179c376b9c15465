package game

import (
	"github.com/ph4n70mr1ddl3r/holdem/internal/deck"
	"github.com/ph4n70mr1ddl3r/holdem/internal/evaluator"
)

// EventType identifies a game event kind.
type EventType string

const (
	EventTypeStateUpdate    EventType = "game_state_update"
	EventTypeActionRequired EventType = "action_required"
	EventTypeShowdown       EventType = "showdown"
	EventTypeHandComplete   EventType = "hand_complete"
	EventTypeChat           EventType = "chat"
)

// GameEvent is the closed set of events the engine emits for external
// broadcasters. The set is sealed so consumers can switch exhaustively.
type GameEvent interface {
	EventType() EventType
}

// StateUpdateEvent carries the post-mutation snapshot.
type StateUpdateEvent struct {
	Snapshot Snapshot
}

func (StateUpdateEvent) EventType() EventType { return EventTypeStateUpdate }

// ActionRequiredEvent tells the broadcaster whose turn it is and what the
// legal action set and bounds are.
type ActionRequiredEvent struct {
	Seat     int
	PlayerID string
	Legal    LegalActions
}

func (ActionRequiredEvent) EventType() EventType { return EventTypeActionRequired }

// ShowdownContender is one revealed hand at showdown.
type ShowdownContender struct {
	Seat      int
	PlayerID  string
	HoleCards []deck.Card
	Result    evaluator.HandResult
}

// PotAward records the resolution of one pot.
type PotAward struct {
	PotIndex int
	Amount   int
	Winners  []int // seats, in remainder-assignment order
}

// ShowdownEvent is emitted when a hand is decided by comparing hands.
type ShowdownEvent struct {
	CommunityCards []deck.Card
	Contenders     []ShowdownContender
	Awards         []PotAward
}

func (ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// HandCompleteEvent closes a hand. Awards is populated for uncontested
// wins, where no ShowdownEvent is emitted.
type HandCompleteEvent struct {
	HandNumber     int
	NextButtonSeat int
	Awards         []PotAward
}

func (HandCompleteEvent) EventType() EventType { return EventTypeHandComplete }

// ChatEvent relays a chat message untouched. It is not a game action and
// never mutates state.
type ChatEvent struct {
	Seat int
	Text string
}

func (ChatEvent) EventType() EventType { return EventTypeChat }
