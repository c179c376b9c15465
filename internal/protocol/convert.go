package protocol

import (
	"errors"
	"fmt"

	"github.com/ph4n70mr1ddl3r/holdem/internal/deck"
	"github.com/ph4n70mr1ddl3r/holdem/internal/game"
)

// FromSnapshot converts an engine snapshot to its wire form. Hole cards
// are carried for every seat; RedactFor strips them before sending.
func FromSnapshot(s game.Snapshot) *GameState {
	gs := &GameState{
		Type:       TypeGameState,
		HandNumber: s.HandNumber,
		Stage:      s.Stage.String(),
		Street:     s.Street.String(),
		Button:     s.ButtonSeat,
		Pot:        s.Pot,
		Board:      CardStrings(s.CommunityCards),
		CurrentBet: s.CurrentBet,
		MinRaise:   s.MinRaise,
		ToAct:      s.ToAct,
	}
	for _, p := range s.Pots {
		gs.Pots = append(gs.Pots, PotState{Amount: p.Amount, Eligible: p.Eligible})
	}
	for _, p := range s.Players {
		gs.Players = append(gs.Players, PlayerState{
			Seat:      p.Seat,
			Name:      p.Name,
			Chips:     p.Chips,
			Status:    p.Status.String(),
			Bet:       p.CurrentBet,
			TotalBet:  p.TotalBet,
			HoleCards: CardStrings(p.HoleCards),
		})
	}
	return gs
}

// RedactFor returns a copy of the state with every other seat's hole
// cards removed. Folded and showdown-revealed cards are the Showdown
// message's business, not GameState's.
func (gs *GameState) RedactFor(seat int) *GameState {
	out := *gs
	out.Players = make([]PlayerState, len(gs.Players))
	copy(out.Players, gs.Players)
	for i := range out.Players {
		if out.Players[i].Seat != seat {
			out.Players[i].HoleCards = nil
		}
	}
	return &out
}

// FromLegalActions converts the engine's legal action set for the wire.
func FromLegalActions(seat int, la game.LegalActions, timeoutMS int) *ActionRequired {
	ar := &ActionRequired{
		Type:       TypeActionRequired,
		Seat:       seat,
		CallAmount: la.CallAmount,
		MinBet:     la.MinBet,
		MinRaiseTo: la.MinRaiseTo,
		MaxBet:     la.MaxBet,
		TimeoutMS:  timeoutMS,
	}
	for _, k := range la.Kinds {
		ar.ValidActions = append(ar.ValidActions, k.String())
	}
	return ar
}

// FromShowdown converts a showdown event; names resolves seats to
// display names.
func FromShowdown(e game.ShowdownEvent, names func(seat int) string) *Showdown {
	sd := &Showdown{
		Type:   TypeShowdown,
		Board:  CardStrings(e.CommunityCards),
		Awards: awards(e.Awards),
	}
	for _, c := range e.Contenders {
		sd.Hands = append(sd.Hands, ShowdownHand{
			Seat:      c.Seat,
			Name:      names(c.Seat),
			HoleCards: CardStrings(c.HoleCards),
			HandRank:  c.Result.String(),
		})
	}
	return sd
}

// FromHandComplete converts a hand completion event.
func FromHandComplete(e game.HandCompleteEvent) *HandComplete {
	return &HandComplete{
		Type:       TypeHandComplete,
		HandNumber: e.HandNumber,
		NextButton: e.NextButtonSeat,
		Awards:     awards(e.Awards),
	}
}

func awards(in []game.PotAward) []PotAward {
	out := make([]PotAward, 0, len(in))
	for _, a := range in {
		out = append(out, PotAward{PotIndex: a.PotIndex, Amount: a.Amount, Winners: a.Winners})
	}
	return out
}

// ToPlayerAction converts a client action message to an engine action.
func ToPlayerAction(seat int, m *Action) (game.PlayerAction, error) {
	kind, err := parseActionKind(m.Action)
	if err != nil {
		return game.PlayerAction{}, err
	}
	return game.PlayerAction{Seat: seat, Kind: kind, Amount: m.Amount}, nil
}

func parseActionKind(s string) (game.ActionKind, error) {
	switch s {
	case "fold":
		return game.Fold, nil
	case "check":
		return game.Check, nil
	case "call":
		return game.Call, nil
	case "bet":
		return game.Bet, nil
	case "raise":
		return game.Raise, nil
	case "allin":
		return game.AllInAction, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// ErrorFor maps an engine rejection to its wire error.
func ErrorFor(err error) *Error {
	code := CodeInternal
	switch {
	case errors.Is(err, game.ErrOutOfTurn):
		code = CodeOutOfTurn
	case errors.Is(err, game.ErrInvalidAmount):
		code = CodeInvalidAmount
	case errors.Is(err, game.ErrIllegalAction):
		code = CodeIllegalAction
	case errors.Is(err, game.ErrRoundClosed):
		code = CodeRoundClosed
	case errors.Is(err, game.ErrTableNotReady):
		code = CodeTableNotReady
	}
	return &Error{Type: TypeError, Code: code, Message: err.Error()}
}

// CardStrings renders cards to their wire form.
func CardStrings(cards []deck.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
