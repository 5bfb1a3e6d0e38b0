package engine

import (
	"context"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// defaultMaxRaises is the number of reopening raises permitted per
// street before further raises/all-ins are downgraded to calls. This is
// a table convention, not a rule of hold'em, and is configurable via
// BettingRound.MaxRaises.
const defaultMaxRaises = 4

// BettingRound drives one street from first-to-act until the street is
// resolved. It owns the running pot add-amount, the current table bet,
// and the bookkeeping (acted set, last raiser, raise count) needed to
// decide when every player still in the hand has had a chance to
// respond to the largest bet on the table.
type BettingRound struct {
	Pot        *int // running pot total, mutated in place
	BigBlind   int
	CurrentBet int
	MinRaise   int
	MaxRaises  int

	raiseCount int
	lastRaiser int // seat, -1 if none yet this round
	acted      map[int]bool

	// reopened is false when the most recent aggressive action was an
	// undersized all-in (short of a full raise) rather than a full
	// raise. While false, any player whose CurrentBet already met
	// matchedBet — the bet level they faced before that undersized
	// all-in — may only call or fold, not raise again: an under-raise
	// never reopens the betting for someone who already called or
	// raised the bet it fell short of.
	reopened   bool
	matchedBet int
}

// NewBettingRound creates a round with the given initial table bet
// (big blind preflop, 0 postflop) and minimum raise increment (the big
// blind, at the start of every street).
func NewBettingRound(pot *int, bigBlind, currentBet, minRaise int) *BettingRound {
	if minRaise == 0 {
		minRaise = bigBlind
	}
	maxRaises := defaultMaxRaises
	return &BettingRound{
		Pot:        pot,
		BigBlind:   bigBlind,
		CurrentBet: currentBet,
		MinRaise:   minRaise,
		MaxRaises:  maxRaises,
		lastRaiser: -1,
		acted:      make(map[int]bool),
		reopened:   true,
	}
}

// onAction, when set, is invoked synchronously after every canonicalized
// action is applied — this is how Run surfaces the on_action observer
// event without the betting round needing to know about the rest of the
// Observer interface.
type onAction func(p *Player, a Action)

// snapshotFor builds the read-only Snapshot handed to the decider ahead
// of player p's turn.
func (br *BettingRound) snapshotFor(p *Player, street Street, community []poker.Card, numActive int, posLabel string) Snapshot {
	toCall := br.CurrentBet - p.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	return Snapshot{
		HoleCards:        p.HoleCards,
		Community:        community,
		PotTotal:         *br.Pot,
		ToCall:           toCall,
		MinRaiseTo:       br.CurrentBet + br.MinRaise,
		MaxRaiseTo:       p.CurrentBet + p.Chips,
		CurrentBet:       p.CurrentBet,
		Street:           street,
		NumActivePlayers: numActive,
		PositionLabel:    posLabel,
	}
}

// Run drives the state machine for one street. order is the
// street-specific action order (already rotated/filtered by the
// caller); community and posLabels are passed straight through into the
// snapshot. notify, if non-nil, is called after every canonicalized
// action is applied — including the conservative fallback substituted
// for a decider that returned an error.
func (br *BettingRound) Run(
	ctx context.Context,
	order []*Player,
	street Street,
	community []poker.Card,
	posLabels map[int]string,
	decide Decider,
	notify onAction,
) {
	countInHand := func() int {
		n := 0
		for _, p := range order {
			if p.IsInHand() {
				n++
			}
		}
		return n
	}

	for {
		if countInHand() <= 1 {
			return
		}

		progressed := false
		for _, p := range order {
			if p.IsFolded || p.IsAllIn {
				continue
			}
			if br.acted[p.Seat] && (br.lastRaiser == -1 || p.Seat == br.lastRaiser) {
				continue
			}
			if br.acted[p.Seat] && p.CurrentBet >= br.CurrentBet {
				continue
			}

			snap := br.snapshotFor(p, street, community, countInHand(), posLabels[p.Seat])
			action, err := decide.Decide(ctx, p, snap)
			if err != nil {
				action = conservativeFallback(snap.ToCall)
			}
			action = canonicalize(action, snap, br.CurrentBet, br.MinRaise)

			if br.raiseCount >= br.MaxRaises && (action.Type == ActionRaise || action.Type == ActionAllIn) {
				if snap.ToCall > 0 {
					action = Action{Type: ActionCall}
				} else {
					action = Action{Type: ActionCheck}
				}
			}

			// An undersized all-in does not reopen the action: a player
			// who already matched the bet it fell short of may only call
			// or fold this time around, never re-raise.
			if !br.reopened && p.CurrentBet >= br.matchedBet &&
				(action.Type == ActionRaise || action.Type == ActionAllIn) {
				action = Action{Type: ActionCall}
			}

			br.apply(p, action)
			br.acted[p.Seat] = true
			if notify != nil {
				notify(p, action)
			}

			if action.Type == ActionRaise || (action.Type == ActionAllIn && p.CurrentBet > br.CurrentBet) {
				raiseIncrement := p.CurrentBet - br.CurrentBet
				fullRaise := raiseIncrement >= br.MinRaise
				priorBet := br.CurrentBet
				br.CurrentBet = p.CurrentBet
				if raiseIncrement > br.MinRaise {
					br.MinRaise = raiseIncrement
				}
				br.lastRaiser = p.Seat
				br.raiseCount++
				if fullRaise {
					br.reopened = true
				} else {
					br.reopened = false
					br.matchedBet = priorBet
				}
				progressed = true
				break // restart the outer pass: everyone still owing must respond
			}

			if countInHand() <= 1 {
				return
			}
		}

		if progressed {
			continue
		}
		if br.isComplete(order) {
			return
		}
	}
}

// isComplete reports whether every non-folded, non-all-in player has
// acted and nobody still owes chips.
func (br *BettingRound) isComplete(order []*Player) bool {
	for _, p := range order {
		if p.IsFolded || p.IsAllIn {
			continue
		}
		if !br.acted[p.Seat] {
			return false
		}
		if p.CurrentBet < br.CurrentBet {
			return false
		}
	}
	return true
}

// apply mutates player and pot state for a canonicalized action.
func (br *BettingRound) apply(p *Player, a Action) {
	switch a.Type {
	case ActionFold:
		p.Fold()
		p.LastActionDesc = "Folds"
	case ActionCheck:
		p.LastActionDesc = "Checks"
	case ActionCall:
		toCall := br.CurrentBet - p.CurrentBet
		if toCall > 0 {
			committed := p.Bet(toCall)
			*br.Pot += committed
		}
		p.LastActionDesc = "Calls"
	case ActionRaise:
		delta := a.Amount - p.CurrentBet
		if delta > 0 {
			committed := p.Bet(delta)
			*br.Pot += committed
		}
		p.LastActionDesc = "Raises"
	case ActionAllIn:
		committed := p.Bet(p.Chips)
		*br.Pot += committed
		p.LastActionDesc = "All-In"
	}
}

// conservativeFallback is what a failed or timed-out decider is treated
// as having returned: Check if nothing is owed, otherwise Fold.
func conservativeFallback(toCall int) Action {
	if toCall == 0 {
		return Action{Type: ActionCheck}
	}
	return Action{Type: ActionFold}
}

// canonicalize repairs an illegal action in place rather than
// surfacing an error: fold-with-nothing-owed becomes check,
// check-with-something-owed becomes call, an undersized raise is
// clamped up to the minimum legal raise, and an oversized raise becomes
// all-in.
func canonicalize(a Action, snap Snapshot, currentBet, minRaise int) Action {
	switch a.Type {
	case ActionFold:
		if snap.ToCall == 0 {
			return Action{Type: ActionCheck}
		}
		return a

	case ActionCheck:
		if snap.ToCall > 0 {
			return Action{Type: ActionCall}
		}
		return a

	case ActionCall:
		return a

	case ActionRaise:
		maxTo := snap.MaxRaiseTo
		minTo := currentBet + minRaise
		amountTo := a.Amount
		if amountTo <= currentBet {
			if snap.ToCall > 0 {
				return Action{Type: ActionCall}
			}
			return Action{Type: ActionCheck}
		}
		if amountTo >= maxTo {
			return Action{Type: ActionAllIn, Amount: maxTo}
		}
		if amountTo < minTo {
			amountTo = minTo
		}
		return Action{Type: ActionRaise, Amount: amountTo}

	case ActionAllIn:
		return Action{Type: ActionAllIn, Amount: snap.MaxRaiseTo}

	default:
		return conservativeFallback(snap.ToCall)
	}
}
