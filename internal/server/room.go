package server

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/ph4n70mr1ddl3r/holdem/internal/game"
	"github.com/ph4n70mr1ddl3r/holdem/internal/protocol"
)

// Sender delivers wire messages to one client connection. Implementations
// must not block; the websocket connection buffers writes.
type Sender interface {
	Send(msg interface{}) error
}

type seatState struct {
	id   string
	name string
	conn Sender

	// gone marks a dropped connection: the seat is folded when action
	// reaches it and sat out once the hand completes.
	gone bool

	// sitOutPending defers a mid-hand sit-out request to hand completion.
	sitOutPending bool
}

// Room drives one heads-up table: it owns the engine, serializes all
// access to it, relays events to the connections and enforces the turn
// timeout policy. The engine itself never blocks or keeps time; the room
// is where the clock lives.
type Room struct {
	mu     sync.Mutex
	logger *log.Logger
	clock  quartz.Clock
	cfg    TableConfig
	table  *game.Table
	seats  []*seatState

	turnTimer *quartz.Timer
}

// NewRoom creates a room around a fresh table. The clock is injected so
// tests can drive timeouts deterministically.
func NewRoom(cfg TableConfig, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) (*Room, error) {
	table, err := game.NewTable(game.Config{
		SmallBlind:    cfg.SmallBlind,
		BigBlind:      cfg.BigBlind,
		StartingChips: cfg.StartingChips,
	}, rng)
	if err != nil {
		return nil, err
	}
	return &Room{
		logger: logger.WithPrefix("room"),
		clock:  clock,
		cfg:    cfg,
		table:  table,
	}, nil
}

// Join seats a player. When the second seat fills, the first hand starts.
func (r *Room) Join(name string, conn Sender) (int, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.seats) >= 2 {
		return 0, "", fmt.Errorf("table is full")
	}

	id := uuid.NewString()
	seat, err := r.table.AddPlayer(id, name)
	if err != nil {
		return 0, "", err
	}
	r.seats = append(r.seats, &seatState{id: id, name: name, conn: conn})
	r.logger.Info("player joined", "seat", seat, "name", name, "id", id)

	r.maybeStartLocked()
	return seat, id, nil
}

// HandleMessage processes one decoded frame from a seated client.
func (r *Room) HandleMessage(seat int, data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		r.sendTo(seat, &protocol.Error{Type: protocol.TypeError, Code: protocol.CodeBadMessage, Message: err.Error()})
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch m := msg.(type) {
	case *protocol.Action:
		action, err := protocol.ToPlayerAction(seat, m)
		if err != nil {
			r.sendToLocked(seat, &protocol.Error{Type: protocol.TypeError, Code: protocol.CodeBadMessage, Message: err.Error()})
			return
		}
		if err := r.applyLocked(action); err != nil {
			r.sendToLocked(seat, protocol.ErrorFor(err))
		}

	case *protocol.Chat:
		_ = r.applyLocked(game.PlayerAction{Seat: seat, Kind: game.Chat, Text: m.Text})

	case *protocol.SitOut:
		if r.table.HandInProgress() {
			// Deferred to hand completion; play on until then.
			r.seats[seat].sitOutPending = true
			return
		}
		if err := r.applyLocked(game.PlayerAction{Seat: seat, Kind: game.SitOut}); err != nil {
			r.sendToLocked(seat, protocol.ErrorFor(err))
		}

	case *protocol.SitIn:
		r.seats[seat].sitOutPending = false
		if err := r.applyLocked(game.PlayerAction{Seat: seat, Kind: game.SitIn}); err != nil {
			r.sendToLocked(seat, protocol.ErrorFor(err))
			return
		}
		r.maybeStartLocked()

	default:
		r.sendToLocked(seat, &protocol.Error{
			Type: protocol.TypeError, Code: protocol.CodeBadMessage,
			Message: fmt.Sprintf("unexpected message type %T", msg),
		})
	}
}

// Disconnect handles a dropped connection: fold when action is on the
// seat, sit out at the next opportunity.
func (r *Room) Disconnect(seat int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seat < 0 || seat >= len(r.seats) {
		return
	}
	r.seats[seat].gone = true
	r.logger.Info("player disconnected", "seat", seat, "name", r.seats[seat].name)

	if r.table.HandInProgress() {
		if snap := r.table.Snapshot(); snap.ToAct == seat {
			_ = r.applyLocked(game.FoldAction(seat))
		}
		return
	}
	_ = r.applyLocked(game.PlayerAction{Seat: seat, Kind: game.SitOut})
}

// maybeStartLocked starts a hand when both seats are filled, connected
// and sitting in.
func (r *Room) maybeStartLocked() {
	if r.table.HandInProgress() || len(r.seats) < 2 {
		return
	}
	for _, s := range r.seats {
		if s.gone || s.sitOutPending {
			return
		}
	}

	snap, events, err := r.table.StartHand()
	if err != nil {
		r.logger.Debug("hand not started", "err", err)
		return
	}
	r.logger.Info("hand started", "hand", snap.HandNumber, "button", snap.ButtonSeat)

	// Private deal notifications before the public state.
	for _, p := range snap.Players {
		if len(p.HoleCards) == 0 {
			continue
		}
		r.sendToLocked(p.Seat, &protocol.HoleCards{
			Type:  protocol.TypeHoleCards,
			Seat:  p.Seat,
			Cards: protocol.CardStrings(p.HoleCards),
		})
	}

	r.dispatchLocked(events)
}

// applyLocked feeds one action to the engine and relays the results. The
// pending turn timer survives rejected actions and chat; an accepted
// betting action cancels it, and dispatch arms a fresh one if the hand
// continues.
func (r *Room) applyLocked(action game.PlayerAction) error {
	_, events, err := r.table.Apply(action)
	if err != nil {
		return err
	}
	if action.Kind != game.Chat {
		r.stopTurnTimerLocked()
	}
	r.dispatchLocked(events)
	return nil
}

// dispatchLocked turns engine events into wire messages.
func (r *Room) dispatchLocked(events []game.GameEvent) {
	autoFold := -1

	for _, event := range events {
		switch e := event.(type) {
		case game.StateUpdateEvent:
			state := protocol.FromSnapshot(e.Snapshot)
			for seat := range r.seats {
				r.sendToLocked(seat, state.RedactFor(seat))
			}

		case game.ActionRequiredEvent:
			if r.seats[e.Seat].gone {
				autoFold = e.Seat
				continue
			}
			r.broadcastLocked(protocol.FromLegalActions(e.Seat, e.Legal, r.cfg.TurnTimeoutSeconds*1000))
			r.startTurnTimerLocked(e.Seat)

		case game.ShowdownEvent:
			r.broadcastLocked(protocol.FromShowdown(e, r.nameLocked))

		case game.HandCompleteEvent:
			r.broadcastLocked(protocol.FromHandComplete(e))
			r.finishHandLocked()

		case game.ChatEvent:
			r.broadcastLocked(&protocol.Chat{Type: protocol.TypeChat, Seat: e.Seat, Text: e.Text})
		}
	}

	if autoFold >= 0 {
		_ = r.applyLocked(game.FoldAction(autoFold))
	}
}

// finishHandLocked applies deferred seating changes and schedules the
// next hand.
func (r *Room) finishHandLocked() {
	for seat, s := range r.seats {
		if s.gone || s.sitOutPending {
			s.sitOutPending = false
			_ = r.applyLocked(game.PlayerAction{Seat: seat, Kind: game.SitOut})
		}
	}

	delay := time.Duration(r.cfg.HandDelaySeconds) * time.Second
	r.clock.AfterFunc(delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.maybeStartLocked()
	})
}

// startTurnTimerLocked arms the turn timeout for the acting seat. On
// expiry the seat checks when free, otherwise folds.
func (r *Room) startTurnTimerLocked(seat int) {
	if r.cfg.TurnTimeoutSeconds <= 0 {
		return
	}

	hand := r.table.Snapshot().HandNumber
	d := time.Duration(r.cfg.TurnTimeoutSeconds) * time.Second
	r.turnTimer = r.clock.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		snap := r.table.Snapshot()
		if snap.Stage != game.StageBetting || snap.ToAct != seat || snap.HandNumber != hand {
			return
		}

		legal, err := r.table.LegalActionsFor(seat)
		if err != nil {
			return
		}
		action := game.FoldAction(seat)
		if legal.Contains(game.Check) {
			action = game.CheckAction(seat)
		}
		r.logger.Info("turn timeout", "seat", seat, "action", action.Kind)
		_ = r.applyLocked(action)
	})
}

func (r *Room) stopTurnTimerLocked() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

func (r *Room) nameLocked(seat int) string {
	if seat >= 0 && seat < len(r.seats) {
		return r.seats[seat].name
	}
	return ""
}

func (r *Room) broadcastLocked(msg interface{}) {
	for seat := range r.seats {
		r.sendToLocked(seat, msg)
	}
}

func (r *Room) sendTo(seat int, msg interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendToLocked(seat, msg)
}

func (r *Room) sendToLocked(seat int, msg interface{}) {
	if seat < 0 || seat >= len(r.seats) {
		return
	}
	s := r.seats[seat]
	if s.conn == nil || s.gone {
		return
	}
	if err := s.conn.Send(msg); err != nil {
		r.logger.Debug("send failed", "seat", seat, "err", err)
	}
}
