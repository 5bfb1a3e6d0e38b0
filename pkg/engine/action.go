package engine

import (
	"context"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// ActionType is the kind of action a player takes during a betting
// round.
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionRaise
	ActionAllIn
)

// String implements fmt.Stringer.
func (a ActionType) String() string {
	return [...]string{"Fold", "Check", "Call", "Raise", "All-In"}[a]
}

// Action is a concrete decision returned by a Decider. Amount is the
// player's new total current-street bet ("raise to") for Raise and
// AllIn; it is ignored for Fold, Check, and Call.
type Action struct {
	Type   ActionType
	Amount int
}

// Snapshot is the read-only view of a betting round handed to a Decider
// ahead of each decision. All monetary fields are in chips.
type Snapshot struct {
	HoleCards        []poker.Card
	Community        []poker.Card
	PotTotal         int
	ToCall           int
	MinRaiseTo       int
	MaxRaiseTo       int
	CurrentBet       int
	Street           Street
	NumActivePlayers int
	PositionLabel    string
}

// Decider maps a public game snapshot and a player's hole cards to an
// Action. The core engine depends only on this interface: it never
// inspects a concrete decider's internals, whether that decider is a
// human CLI prompt, a rule-based heuristic policy, or an external AI
// process. Decide may block — the core imposes no deadline of its own,
// but passes through ctx for deciders that choose to honor one.
//
// A Decider that returns an error is treated by the betting round as
// having produced the conservative fallback (Check if nothing is owed,
// otherwise Fold); see BettingRound.Run.
type Decider interface {
	Decide(ctx context.Context, p *Player, snap Snapshot) (Action, error)
}

// DeciderFunc adapts a plain function to the Decider interface.
type DeciderFunc func(ctx context.Context, p *Player, snap Snapshot) (Action, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, p *Player, snap Snapshot) (Action, error) {
	return f(ctx, p, snap)
}
