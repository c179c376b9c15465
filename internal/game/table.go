package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/ph4n70mr1ddl3r/holdem/internal/deck"
	"github.com/ph4n70mr1ddl3r/holdem/internal/evaluator"
)

// numSeats is fixed: the engine models a heads-up table.
const numSeats = 2

// Config is the table configuration accepted at creation.
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 || c.StartingChips <= 0 {
		return fmt.Errorf("blinds and starting chips must be positive")
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", c.SmallBlind, c.BigBlind)
	}
	return nil
}

// Table owns all per-hand mutable state for one heads-up game and is the
// only component that mutates player chip counts. It is single-threaded:
// callers serialize access (a mutex or a mailbox at the transport
// boundary) and the table itself never blocks.
//
// The engine is deterministic: given the same seed and action sequence,
// every hand replays identically.
type Table struct {
	cfg     Config
	rng     *rand.Rand
	players []*Player

	stage      Stage
	button     int
	handNumber int
	deck       *deck.Deck
	board      []deck.Card
	betting    *BettingState

	// chipTotal is fixed once both seats are filled; every mutation is
	// checked against it.
	chipTotal int
}

// NewTable creates an empty table. The RNG drives every shuffle and is
// required so hands are replayable from a seed.
func NewTable(cfg Config, rng *rand.Rand) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	return &Table{
		cfg:    cfg,
		rng:    rng,
		stage:  StageWaiting,
		button: numSeats - 1, // first StartHand rotates to seat 0
	}, nil
}

// AddPlayer seats a player with the configured starting stack. The table
// holds exactly two seats.
func (t *Table) AddPlayer(id, name string) (int, error) {
	if len(t.players) >= numSeats {
		return 0, fmt.Errorf("table is full")
	}
	seat := len(t.players)
	t.players = append(t.players, &Player{
		Seat:   seat,
		ID:     id,
		Name:   name,
		Chips:  t.cfg.StartingChips,
		Status: Active,
	})
	t.chipTotal += t.cfg.StartingChips
	return seat, nil
}

// Snapshot returns an immutable copy of the current table state.
func (t *Table) Snapshot() Snapshot {
	return t.snapshot()
}

// HandInProgress reports whether a hand is currently being played.
func (t *Table) HandInProgress() bool {
	return t.stage == StageBetting || t.stage == StageShowdown
}

// StartHand begins a new hand: rotates the button, posts blinds, shuffles
// and deals. The table never starts hands on its own; the external driver
// decides when.
func (t *Table) StartHand() (Snapshot, []GameEvent, error) {
	if t.HandInProgress() {
		return t.snapshot(), nil, fmt.Errorf("%w: hand in progress", ErrTableNotReady)
	}

	ready := 0
	for _, p := range t.players {
		if p.Status != SittingOut && p.Chips > 0 {
			ready++
		}
	}
	if ready < numSeats {
		return t.snapshot(), nil, fmt.Errorf("%w: need %d players with chips", ErrTableNotReady, numSeats)
	}

	t.handNumber++
	t.button = (t.button + 1) % numSeats

	for _, p := range t.players {
		p.Bet = 0
		p.TotalBet = 0
		p.HoleCards = nil
		if p.Status != SittingOut {
			p.Status = Active
		}
	}

	t.deck = deck.New(t.rng)
	t.board = nil
	t.stage = StageBetting
	t.betting = newBettingState(Preflop, numSeats, t.cfg.BigBlind, t.button)

	// Heads-up: the button posts the small blind, the other seat the big
	// blind. Blinds bypass action legality but are capped at the stack.
	sb := t.players[t.button]
	bb := t.players[(t.button+1)%numSeats]
	t.postBlind(sb, t.cfg.SmallBlind)
	t.postBlind(bb, t.cfg.BigBlind)
	if sb.Bet > bb.Bet {
		t.betting.CurrentBet = sb.Bet
	} else {
		t.betting.CurrentBet = bb.Bet
	}

	for _, p := range t.players {
		cards, err := t.deck.Deal(2)
		if err != nil {
			return t.abortHand(fmt.Errorf("%w: dealing hole cards", ErrInsufficientCards))
		}
		p.HoleCards = cards
	}

	if err := t.checkConservation(); err != nil {
		return t.abortHand(err)
	}

	events := []GameEvent{}
	if next := t.nextToAct(t.button); next >= 0 {
		t.betting.ToAct = next
		snap := t.snapshot()
		events = append(events, StateUpdateEvent{Snapshot: snap})
		events = append(events, t.actionRequired())
		return snap, events, nil
	}

	// Both seats all-in from the blinds: run the board out immediately.
	resolved, err := t.runOut()
	if err != nil {
		return t.abortHand(err)
	}
	snap := t.snapshot()
	return snap, append([]GameEvent{StateUpdateEvent{Snapshot: snap}}, resolved...), nil
}

// Apply processes one player action. Rejected actions leave state
// untouched and return a typed error; the returned snapshot always
// reflects the post-call state.
func (t *Table) Apply(action PlayerAction) (Snapshot, []GameEvent, error) {
	if action.Seat < 0 || action.Seat >= len(t.players) {
		return t.snapshot(), nil, fmt.Errorf("%w: unknown seat %d", ErrIllegalAction, action.Seat)
	}

	switch action.Kind {
	case Chat:
		// Out-of-band: passed through untouched, never a game action.
		return t.snapshot(), []GameEvent{ChatEvent{Seat: action.Seat, Text: action.Text}}, nil
	case SitOut, SitIn:
		return t.applySeating(action)
	}

	if t.stage != StageBetting {
		return t.snapshot(), nil, fmt.Errorf("%w: no betting round in progress", ErrRoundClosed)
	}
	if action.Seat != t.betting.ToAct {
		return t.snapshot(), nil, fmt.Errorf("%w: seat %d to act", ErrOutOfTurn, t.betting.ToAct)
	}

	p := t.players[action.Seat]
	legal := legalActions(p, t.betting)

	// Validation happens in full before any mutation so a rejected
	// action leaves the snapshot bit-for-bit identical.
	if err := t.validateAction(p, legal, action); err != nil {
		return t.snapshot(), nil, err
	}

	t.mutate(p, action)
	t.betting.markActed(p.Seat)

	if err := t.checkConservation(); err != nil {
		return t.abortHand(err)
	}

	return t.afterAction()
}

// LegalActionsFor returns the legal action set for a seat, or an error if
// it is not that seat's turn.
func (t *Table) LegalActionsFor(seat int) (LegalActions, error) {
	if t.stage != StageBetting {
		return LegalActions{}, ErrRoundClosed
	}
	if seat != t.betting.ToAct {
		return LegalActions{}, ErrOutOfTurn
	}
	return legalActions(t.players[seat], t.betting), nil
}

func (t *Table) applySeating(action PlayerAction) (Snapshot, []GameEvent, error) {
	p := t.players[action.Seat]
	if t.HandInProgress() && p.InHand() {
		return t.snapshot(), nil, fmt.Errorf("%w: cannot change seating mid-hand", ErrIllegalAction)
	}
	switch action.Kind {
	case SitOut:
		p.Status = SittingOut
	case SitIn:
		if p.Status == SittingOut {
			p.Status = Active
		}
	}
	snap := t.snapshot()
	return snap, []GameEvent{StateUpdateEvent{Snapshot: snap}}, nil
}

func (t *Table) validateAction(p *Player, legal LegalActions, action PlayerAction) error {
	switch action.Kind {
	case Fold:
		return nil
	case Check, Call, AllInAction:
		if !legal.Contains(action.Kind) {
			return fmt.Errorf("%w: %s not available", ErrIllegalAction, action.Kind)
		}
		return nil
	case Bet:
		if !legal.Contains(Bet) {
			return fmt.Errorf("%w: bet not available", ErrIllegalAction)
		}
		if action.Amount < legal.MinBet || action.Amount > legal.MaxBet {
			return fmt.Errorf("%w: bet %d outside [%d, %d]", ErrInvalidAmount, action.Amount, legal.MinBet, legal.MaxBet)
		}
		return nil
	case Raise:
		if !legal.Contains(Raise) {
			return fmt.Errorf("%w: raise not available", ErrIllegalAction)
		}
		if action.Amount < legal.MinRaiseTo || action.Amount > legal.MaxBet {
			return fmt.Errorf("%w: raise to %d outside [%d, %d]", ErrInvalidAmount, action.Amount, legal.MinRaiseTo, legal.MaxBet)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported action %s", ErrIllegalAction, action.Kind)
	}
}

// mutate applies a validated action to player and betting state.
func (t *Table) mutate(p *Player, action PlayerAction) {
	bs := t.betting

	switch action.Kind {
	case Fold:
		p.Status = Folded

	case Check:
		// No chips move.

	case Call:
		toCall := bs.CurrentBet - p.Bet
		if toCall > p.Chips {
			toCall = p.Chips
		}
		t.commit(p, toCall)

	case Bet:
		t.commit(p, action.Amount-p.Bet)
		bs.MinRaise = action.Amount
		bs.CurrentBet = action.Amount
		bs.reopen(p.Seat)

	case Raise:
		increment := action.Amount - bs.CurrentBet
		t.commit(p, action.Amount-p.Bet)
		bs.MinRaise = increment
		bs.CurrentBet = action.Amount
		bs.reopen(p.Seat)

	case AllInAction:
		newBet := p.Bet + p.Chips
		t.commit(p, p.Chips)
		if newBet > bs.CurrentBet {
			increment := newBet - bs.CurrentBet
			bs.CurrentBet = newBet
			if increment >= bs.MinRaise {
				bs.MinRaise = increment
				bs.reopen(p.Seat)
			}
			// An under-raise all-in does not reopen the action: seats
			// that already acted keep their flags and may only call.
		}
	}
}

// commit moves chips from the stack into the street and hand commitments,
// flipping the player all-in when the stack empties.
func (t *Table) commit(p *Player, amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.Status = AllIn
	}
}

// postBlind forces a blind post capped at the stack. A short stack posts
// an all-in blind.
func (t *Table) postBlind(p *Player, amount int) {
	if amount > p.Chips {
		amount = p.Chips
	}
	t.commit(p, amount)
}

// afterAction decides what the action just taken leads to: an uncontested
// win, a street close, or the next player's turn.
func (t *Table) afterAction() (Snapshot, []GameEvent, error) {
	if t.countInHand() == 1 {
		resolved, err := t.awardUncontested()
		if err != nil {
			return t.abortHand(err)
		}
		snap := t.snapshot()
		return snap, append([]GameEvent{StateUpdateEvent{Snapshot: snap}}, resolved...), nil
	}

	if t.betting.complete(t.players) {
		resolved, err := t.closeStreet()
		if err != nil {
			return t.abortHand(err)
		}
		snap := t.snapshot()
		events := append([]GameEvent{StateUpdateEvent{Snapshot: snap}}, resolved...)
		if t.stage == StageBetting {
			events = append(events, t.actionRequired())
		}
		return snap, events, nil
	}

	t.betting.ToAct = t.nextToAct(t.betting.ToAct + 1)
	snap := t.snapshot()
	return snap, []GameEvent{StateUpdateEvent{Snapshot: snap}, t.actionRequired()}, nil
}

// closeStreet collects the street and advances. When fewer than two
// players can still act, the remaining board is run out to showdown.
func (t *Table) closeStreet() ([]GameEvent, error) {
	if t.betting.Street == River {
		return t.showdown()
	}

	if t.countCanAct() < 2 {
		return t.runOut()
	}

	if err := t.advanceStreet(); err != nil {
		return nil, err
	}

	// Postflop the non-button seat acts first.
	t.betting.ToAct = t.nextToAct((t.button + 1) % numSeats)
	return nil, nil
}

// advanceStreet resets street state and deals the next community cards.
func (t *Table) advanceStreet() error {
	for _, p := range t.players {
		p.Bet = 0
	}

	next := t.betting.Street + 1
	t.betting = newBettingState(next, numSeats, t.cfg.BigBlind, -1)

	var n int
	switch next {
	case Flop:
		n = 3
	case Turn, River:
		n = 1
	default:
		return nil
	}

	cards, err := t.deck.Deal(n)
	if err != nil {
		return fmt.Errorf("%w: dealing %s", ErrInsufficientCards, next)
	}
	t.board = append(t.board, cards...)
	return nil
}

// runOut deals all remaining streets with no betting and resolves the
// showdown. Used when every contender is all-in.
func (t *Table) runOut() ([]GameEvent, error) {
	for t.betting.Street != River {
		if err := t.advanceStreet(); err != nil {
			return nil, err
		}
	}
	return t.showdown()
}

// showdown evaluates every contender's best hand, resolves each pot
// independently against its eligible players, and applies chip deltas.
func (t *Table) showdown() ([]GameEvent, error) {
	t.stage = StageShowdown

	results := make(map[int]evaluator.HandResult, numSeats)
	contenders := make([]ShowdownContender, 0, numSeats)
	for _, p := range t.players {
		if !p.InHand() {
			continue
		}
		result, err := evaluator.Evaluate(append(append([]deck.Card(nil), p.HoleCards...), t.board...))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
		results[p.Seat] = result
		contenders = append(contenders, ShowdownContender{
			Seat:      p.Seat,
			PlayerID:  p.ID,
			HoleCards: append([]deck.Card(nil), p.HoleCards...),
			Result:    result,
		})
	}

	awards, err := t.resolvePots(func(eligible []int) []int {
		best := evaluator.HandResult{Category: -1}
		var winners []int
		for _, seat := range eligible {
			r := results[seat]
			switch cmp := compareOrFirst(r, best); {
			case cmp > 0:
				best = r
				winners = []int{seat}
			case cmp == 0:
				winners = append(winners, seat)
			}
		}
		return winners
	})
	if err != nil {
		return nil, err
	}

	event := ShowdownEvent{
		CommunityCards: append([]deck.Card(nil), t.board...),
		Contenders:     contenders,
		Awards:         awards,
	}

	complete := t.completeHand(awards)
	return []GameEvent{event, complete}, nil
}

// awardUncontested pays every pot to the sole remaining player.
func (t *Table) awardUncontested() ([]GameEvent, error) {
	awards, err := t.resolvePots(func(eligible []int) []int {
		return eligible
	})
	if err != nil {
		return nil, err
	}
	return []GameEvent{t.completeHand(awards)}, nil
}

// resolvePots computes pots from hand commitments, picks winners per pot
// via the supplied function, and moves chips. Remainder chips from a
// split go one each to winners in seat order clockwise from the button.
func (t *Table) resolvePots(pickWinners func(eligible []int) []int) ([]PotAward, error) {
	pots := ComputePots(t.contributions())

	committed := 0
	for _, p := range t.players {
		committed += p.TotalBet
	}
	if potTotal(pots) != committed {
		return nil, fmt.Errorf("%w: pots %d != committed %d", ErrInvariantViolation, potTotal(pots), committed)
	}

	order := func(seat int) int {
		return (seat - t.button - 1 + numSeats) % numSeats
	}

	awards := make([]PotAward, 0, len(pots))
	for i, pot := range pots {
		winners := pickWinners(pot.Eligible)
		shares := splitPot(pot.Amount, winners, order)

		ordered := make([]int, 0, len(shares))
		for _, p := range t.players {
			if _, ok := shares[p.Seat]; ok {
				ordered = append(ordered, p.Seat)
			}
		}

		for seat, share := range shares {
			t.players[seat].Chips += share
		}
		awards = append(awards, PotAward{PotIndex: i, Amount: pot.Amount, Winners: ordered})
	}

	for _, p := range t.players {
		p.Bet = 0
		p.TotalBet = 0
	}

	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	if total != t.chipTotal {
		return nil, fmt.Errorf("%w: chips %d != table total %d after payout", ErrInvariantViolation, total, t.chipTotal)
	}

	return awards, nil
}

// completeHand transitions to HandComplete and clears folded hole cards.
func (t *Table) completeHand(awards []PotAward) HandCompleteEvent {
	t.stage = StageHandComplete
	for _, p := range t.players {
		if p.Status == Folded {
			p.HoleCards = nil
		}
	}
	return HandCompleteEvent{
		HandNumber:     t.handNumber,
		NextButtonSeat: (t.button + 1) % numSeats,
		Awards:         awards,
	}
}

// abortHand handles fatal-class failures: the hand stops rather than
// continuing with corrupted accounting.
func (t *Table) abortHand(err error) (Snapshot, []GameEvent, error) {
	t.stage = StageHandComplete
	return t.snapshot(), nil, err
}

func (t *Table) actionRequired() ActionRequiredEvent {
	seat := t.betting.ToAct
	return ActionRequiredEvent{
		Seat:     seat,
		PlayerID: t.players[seat].ID,
		Legal:    legalActions(t.players[seat], t.betting),
	}
}

func (t *Table) contributions() []Contribution {
	contribs := make([]Contribution, len(t.players))
	for i, p := range t.players {
		contribs[i] = Contribution{Seat: p.Seat, Amount: p.TotalBet, Folded: p.Status == Folded}
	}
	return contribs
}

func (t *Table) nextToAct(from int) int {
	for i := 0; i < numSeats; i++ {
		seat := (from + i) % numSeats
		if t.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (t *Table) countInHand() int {
	n := 0
	for _, p := range t.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (t *Table) countCanAct() int {
	n := 0
	for _, p := range t.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// checkConservation verifies that chips are neither created nor destroyed:
// stacks plus committed amounts always equal the table total.
func (t *Table) checkConservation() error {
	total := 0
	for _, p := range t.players {
		total += p.Chips + p.TotalBet
	}
	if total != t.chipTotal {
		return fmt.Errorf("%w: chips+committed %d != table total %d", ErrInvariantViolation, total, t.chipTotal)
	}
	return nil
}

// compareOrFirst treats an unset best (negative category) as losing.
func compareOrFirst(r, best evaluator.HandResult) int {
	if best.Category < 0 {
		return 1
	}
	return r.Compare(best)
}
