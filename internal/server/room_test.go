package server

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ph4n70mr1ddl3r/holdem/internal/protocol"
	"github.com/ph4n70mr1ddl3r/holdem/internal/randutil"
)

// fakeConn captures everything the room sends to one seat.
type fakeConn struct {
	mu   sync.Mutex
	msgs []interface{}
}

func (f *fakeConn) Send(msg interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeConn) all() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.msgs))
	copy(out, f.msgs)
	return out
}

func (f *fakeConn) lastState() *protocol.GameState {
	msgs := f.all()
	for i := len(msgs) - 1; i >= 0; i-- {
		if gs, ok := msgs[i].(*protocol.GameState); ok {
			return gs
		}
	}
	return nil
}

func (f *fakeConn) holeCardCount() int {
	n := 0
	for _, m := range f.all() {
		if _, ok := m.(*protocol.HoleCards); ok {
			n++
		}
	}
	return n
}

func (f *fakeConn) lastError() *protocol.Error {
	msgs := f.all()
	for i := len(msgs) - 1; i >= 0; i-- {
		if e, ok := msgs[i].(*protocol.Error); ok {
			return e
		}
	}
	return nil
}

func (f *fakeConn) hasHandComplete() bool {
	for _, m := range f.all() {
		if _, ok := m.(*protocol.HandComplete); ok {
			return true
		}
	}
	return false
}

var testTableConfig = TableConfig{
	SmallBlind:         5,
	BigBlind:           10,
	StartingChips:      1000,
	TurnTimeoutSeconds: 30,
	HandDelaySeconds:   1,
}

func newTestRoom(t *testing.T, seed int64) (*Room, *quartz.Mock, *fakeConn, *fakeConn) {
	t.Helper()
	mock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	room, err := NewRoom(testTableConfig, logger, mock, randutil.New(seed))
	require.NoError(t, err)

	c0, c1 := &fakeConn{}, &fakeConn{}
	seat0, _, err := room.Join("Alice", c0)
	require.NoError(t, err)
	require.Equal(t, 0, seat0)
	seat1, _, err := room.Join("Bob", c1)
	require.NoError(t, err)
	require.Equal(t, 1, seat1)
	return room, mock, c0, c1
}

func actionFrame(t *testing.T, verb string, amount int) []byte {
	t.Helper()
	data, err := protocol.Marshal(&protocol.Action{Type: protocol.TypeAction, Action: verb, Amount: amount})
	require.NoError(t, err)
	return data
}

func TestRoomStartsHandWhenBothSeated(t *testing.T) {
	_, _, c0, c1 := newTestRoom(t, 1)

	require.Equal(t, 1, c0.holeCardCount())
	require.Equal(t, 1, c1.holeCardCount())

	state := c0.lastState()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.HandNumber)
	assert.Equal(t, 15, state.Pot)
	assert.Equal(t, 0, state.ToAct)

	// Redaction: each seat sees only its own hole cards in the state.
	assert.Len(t, state.Players[0].HoleCards, 2)
	assert.Empty(t, state.Players[1].HoleCards)
	other := c1.lastState()
	require.NotNil(t, other)
	assert.Empty(t, other.Players[0].HoleCards)
	assert.Len(t, other.Players[1].HoleCards, 2)
}

func TestRoomTurnTimeoutFoldsWhenFacingBet(t *testing.T) {
	room, mock, c0, c1 := newTestRoom(t, 2)
	_ = room

	// Seat 0 owes 5 to call, so the timeout folds it.
	mock.Advance(30 * time.Second).MustWait(context.Background())

	assert.True(t, c0.hasHandComplete())
	assert.True(t, c1.hasHandComplete())

	state := c1.lastState()
	require.NotNil(t, state)
	assert.Equal(t, 995, state.Players[0].Chips)
	assert.Equal(t, 1005, state.Players[1].Chips)
}

func TestRoomTurnTimeoutChecksWhenFree(t *testing.T) {
	room, mock, _, c1 := newTestRoom(t, 3)

	// Button limps; the big blind can check, so the timeout checks
	// instead of folding and the flop comes.
	room.HandleMessage(0, actionFrame(t, "call", 0))
	mock.Advance(30 * time.Second).MustWait(context.Background())

	state := c1.lastState()
	require.NotNil(t, state)
	assert.Equal(t, "flop", state.Street)
	assert.Equal(t, "active", state.Players[0].Status)
	assert.Equal(t, "active", state.Players[1].Status)
	assert.False(t, c1.hasHandComplete())
}

func TestRoomOutOfTurnAction(t *testing.T) {
	room, _, c0, c1 := newTestRoom(t, 4)

	room.HandleMessage(1, actionFrame(t, "fold", 0))

	errMsg := c1.lastError()
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.CodeOutOfTurn, errMsg.Code)
	assert.Nil(t, c0.lastError())
	assert.False(t, c1.hasHandComplete())
}

func TestRoomRejectsMalformedFrame(t *testing.T) {
	room, _, c0, _ := newTestRoom(t, 5)

	room.HandleMessage(0, []byte("not json"))

	errMsg := c0.lastError()
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.CodeBadMessage, errMsg.Code)
}

func TestRoomChatRelay(t *testing.T) {
	room, _, c0, c1 := newTestRoom(t, 6)

	frame, err := protocol.Marshal(&protocol.Chat{Type: protocol.TypeChat, Text: "glhf"})
	require.NoError(t, err)
	room.HandleMessage(1, frame)

	for _, c := range []*fakeConn{c0, c1} {
		var got *protocol.Chat
		for _, m := range c.all() {
			if chat, ok := m.(*protocol.Chat); ok {
				got = chat
			}
		}
		require.NotNil(t, got)
		assert.Equal(t, 1, got.Seat)
		assert.Equal(t, "glhf", got.Text)
	}
}

func TestRoomDisconnectFoldsAndSitsOut(t *testing.T) {
	room, mock, _, c1 := newTestRoom(t, 7)

	// Seat 0 is to act; dropping it folds the hand on the spot.
	room.Disconnect(0)
	require.True(t, c1.hasHandComplete())

	// After the inter-hand delay no new hand starts with a seat gone.
	mock.Advance(time.Second).MustWait(context.Background())
	assert.Equal(t, 1, c1.holeCardCount())
}

func TestRoomDeferredSitOut(t *testing.T) {
	room, mock, c0, c1 := newTestRoom(t, 8)

	// Mid-hand sit-out is deferred: no error, hand plays on.
	frame, err := protocol.Marshal(&protocol.SitOut{Type: protocol.TypeSitOut})
	require.NoError(t, err)
	room.HandleMessage(1, frame)
	assert.Nil(t, c1.lastError())

	room.HandleMessage(0, actionFrame(t, "fold", 0))
	require.True(t, c0.hasHandComplete())

	// Seat 1 sits out once the hand ends, so the next hand never starts.
	mock.Advance(time.Second).MustWait(context.Background())
	assert.Equal(t, 1, c0.holeCardCount())
	assert.Equal(t, "sitting_out", c0.lastState().Players[1].Status)

	// Sitting back in resumes play.
	frame, err = protocol.Marshal(&protocol.SitIn{Type: protocol.TypeSitIn})
	require.NoError(t, err)
	room.HandleMessage(1, frame)
	assert.Equal(t, 2, c0.holeCardCount())
}

func TestRoomRejectsThirdPlayer(t *testing.T) {
	room, _, _, _ := newTestRoom(t, 9)

	_, _, err := room.Join("Carol", &fakeConn{})
	require.Error(t, err)
}
