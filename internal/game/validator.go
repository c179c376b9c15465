package game

// LegalActions describes the action set and bounds for the player to act.
// MinBet and MinRaiseTo are street totals, not increments; MaxBet is
// capped by the player's stack.
type LegalActions struct {
	Kinds      []ActionKind
	CallAmount int // chips needed to call, after capping at the stack
	MinBet     int // minimum opening bet (big blind)
	MinRaiseTo int // minimum legal raise-to total
	MaxBet     int // player's stack plus current street commitment
	CurrentBet int
}

// Contains reports whether the kind is in the legal set.
func (la LegalActions) Contains(kind ActionKind) bool {
	for _, k := range la.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// legalActions determines the legal action set for a player given the
// betting state. Fold is always offered; Check only when calling is free;
// Bet only when no bet is open; Raise only when the stack covers a full
// raise and the action has not already closed on this player.
func legalActions(p *Player, bs *BettingState) LegalActions {
	la := LegalActions{
		MinBet:     bs.bigBlind,
		MinRaiseTo: bs.CurrentBet + bs.MinRaise,
		MaxBet:     p.Chips + p.Bet,
		CurrentBet: bs.CurrentBet,
	}
	la.Kinds = append(la.Kinds, Fold)

	toCall := bs.CurrentBet - p.Bet
	if toCall > p.Chips {
		toCall = p.Chips
	}
	la.CallAmount = toCall

	if bs.CurrentBet == p.Bet {
		la.Kinds = append(la.Kinds, Check)
		if bs.CurrentBet == 0 {
			// Opening bet; a short stack opens by going all-in instead
			if p.Chips >= bs.bigBlind {
				la.Kinds = append(la.Kinds, Bet)
			}
		} else if bs.raiseAllowed(p.Seat) && la.MaxBet >= la.MinRaiseTo {
			// Big blind option: bet is matched but a raise remains legal
			la.Kinds = append(la.Kinds, Raise)
		}
	} else {
		la.Kinds = append(la.Kinds, Call)
		if bs.raiseAllowed(p.Seat) && la.MaxBet >= la.MinRaiseTo {
			la.Kinds = append(la.Kinds, Raise)
		}
	}

	if p.Chips > 0 {
		la.Kinds = append(la.Kinds, AllInAction)
	}

	return la
}
