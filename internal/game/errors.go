package game

import "errors"

// Expected, recoverable conditions. The engine rejects the action, leaves
// state untouched and returns one of these for the caller to relay.
var (
	// ErrOutOfTurn is returned when a player acts out of turn.
	ErrOutOfTurn = errors.New("not your turn")

	// ErrInvalidAmount is returned for bet or raise amounts below the
	// legal minimum or above the acting player's stack.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrIllegalAction is returned for actions not in the legal set,
	// e.g. Check when a bet is outstanding or Bet when one is open.
	ErrIllegalAction = errors.New("illegal action")

	// ErrRoundClosed is returned for actions arriving after the betting
	// round has closed.
	ErrRoundClosed = errors.New("betting round closed")

	// ErrTableNotReady is returned by StartHand when fewer than two
	// seated players can be dealt in.
	ErrTableNotReady = errors.New("table not ready")
)

// Fatal-class conditions. These indicate a logic defect, never bad input;
// when detected the current hand is aborted rather than continuing with
// corrupted accounting.
var (
	// ErrInsufficientCards is returned when the deck runs dry mid-hand.
	ErrInsufficientCards = errors.New("insufficient cards")

	// ErrInvariantViolation is returned when a post-mutation accounting
	// check fails (chip conservation, pot sums).
	ErrInvariantViolation = errors.New("invariant violation")
)
