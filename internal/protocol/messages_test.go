package protocol

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ph4n70mr1ddl3r/holdem/internal/game"
)

func roundTrip(t *testing.T, msg interface{}) interface{} {
	t.Helper()
	data, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal(%T): %v", msg, err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(%s): %v", data, err)
	}
	return decoded
}

func TestRoundTripClientMessages(t *testing.T) {
	cases := []interface{}{
		&Join{Type: TypeJoin, Name: "Alice"},
		&Action{Type: TypeAction, Action: "raise", Amount: 120},
		&Action{Type: TypeAction, Action: "fold"},
		&Chat{Type: TypeChat, Text: "good game"},
		&SitOut{Type: TypeSitOut},
		&SitIn{Type: TypeSitIn},
	}
	for _, msg := range cases {
		decoded := roundTrip(t, msg)
		if !reflect.DeepEqual(decoded, msg) {
			t.Errorf("round trip: got %+v, want %+v", decoded, msg)
		}
	}
}

func TestRoundTripServerMessages(t *testing.T) {
	cases := []interface{}{
		&GameState{
			Type:       TypeGameState,
			HandNumber: 7,
			Stage:      "betting",
			Street:     "flop",
			Button:     1,
			Pot:        60,
			Pots:       []PotState{{Amount: 60, Eligible: []int{0, 1}}},
			Board:      []string{"As", "Td", "7c"},
			Players: []PlayerState{
				{Seat: 0, Name: "Alice", Chips: 970, Status: "active", Bet: 0, TotalBet: 30},
				{Seat: 1, Name: "Bob", Chips: 970, Status: "active", Bet: 0, TotalBet: 30, HoleCards: []string{"Kh", "Kd"}},
			},
			CurrentBet: 0,
			MinRaise:   10,
			ToAct:      0,
		},
		&ActionRequired{
			Type:         TypeActionRequired,
			Seat:         0,
			ValidActions: []string{"fold", "check", "bet", "allin"},
			MinBet:       10,
			MinRaiseTo:   10,
			MaxBet:       970,
			TimeoutMS:    30000,
		},
		&HoleCards{Type: TypeHoleCards, Seat: 1, Cards: []string{"Kh", "Kd"}},
		&Showdown{
			Type:  TypeShowdown,
			Board: []string{"As", "Td", "7c", "2h", "9s"},
			Hands: []ShowdownHand{
				{Seat: 0, Name: "Alice", HoleCards: []string{"Ah", "Ac"}, HandRank: "Three of a Kind"},
				{Seat: 1, Name: "Bob", HoleCards: []string{"Kh", "Kd"}, HandRank: "Pair"},
			},
			Awards: []PotAward{{PotIndex: 0, Amount: 120, Winners: []int{0}}},
		},
		&HandComplete{Type: TypeHandComplete, HandNumber: 7, NextButton: 0, Awards: []PotAward{{Amount: 15, Winners: []int{1}}}},
		&Error{Type: TypeError, Code: CodeOutOfTurn, Message: "not your turn"},
	}
	for _, msg := range cases {
		decoded := roundTrip(t, msg)
		if !reflect.DeepEqual(decoded, msg) {
			t.Errorf("round trip: got %+v, want %+v", decoded, msg)
		}
	}
}

func TestDecodeUnknownType(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"bogus"}`)); !errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("err = %v, want ErrUnknownMessageType", err)
	}
}

func TestMarshalRejectsUnknownStruct(t *testing.T) {
	if _, err := Marshal(struct{ X int }{1}); !errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("err = %v, want ErrUnknownMessageType", err)
	}
}

func TestToPlayerAction(t *testing.T) {
	action, err := ToPlayerAction(1, &Action{Type: TypeAction, Action: "raise", Amount: 60})
	if err != nil {
		t.Fatalf("ToPlayerAction: %v", err)
	}
	want := game.PlayerAction{Seat: 1, Kind: game.Raise, Amount: 60}
	if action != want {
		t.Errorf("action = %+v, want %+v", action, want)
	}

	if _, err := ToPlayerAction(0, &Action{Action: "limp"}); err == nil {
		t.Error("expected error for unknown action verb")
	}
}

func TestErrorForCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{game.ErrOutOfTurn, CodeOutOfTurn},
		{game.ErrInvalidAmount, CodeInvalidAmount},
		{game.ErrIllegalAction, CodeIllegalAction},
		{game.ErrRoundClosed, CodeRoundClosed},
		{game.ErrTableNotReady, CodeTableNotReady},
		{errors.New("boom"), CodeInternal},
	}
	for _, c := range cases {
		if got := ErrorFor(c.err); got.Code != c.code {
			t.Errorf("ErrorFor(%v).Code = %s, want %s", c.err, got.Code, c.code)
		}
	}
}

func TestRedactForStripsOpponentCards(t *testing.T) {
	gs := &GameState{
		Type: TypeGameState,
		Players: []PlayerState{
			{Seat: 0, HoleCards: []string{"As", "Ah"}},
			{Seat: 1, HoleCards: []string{"Kd", "Kc"}},
		},
	}
	redacted := gs.RedactFor(0)
	if len(redacted.Players[0].HoleCards) != 2 {
		t.Error("own hole cards were stripped")
	}
	if redacted.Players[1].HoleCards != nil {
		t.Error("opponent hole cards survived redaction")
	}
	// The original is untouched.
	if len(gs.Players[1].HoleCards) != 2 {
		t.Error("redaction mutated the source message")
	}
}
