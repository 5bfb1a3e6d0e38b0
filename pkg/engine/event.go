package engine

import "github.com/alexajuno/pokerithm/pkg/poker"

// Observer receives every notable event during a hand and a
// tournament, in the order they occur. It generalizes a table's and a
// tournament's separate callback sets into a single interface; a
// caller that only cares about some events can embed NoopObserver and
// override the rest.
//
// Implementations must not block: Run calls these synchronously on the
// hand's own goroutine, so a slow observer (e.g. one writing to a
// terminal) slows down play itself.
type Observer interface {
	OnHandStart(handNumber, blindLevel, dealerSeat int, players []*Player)
	OnDeal(street string, community []poker.Card)
	OnBeforeAction(p *Player)
	OnAction(p *Player, a Action)
	OnShowdown(potWinners []PotWinners)
	OnHandEnd(result HandResult)
	OnBlindIncrease(level int, smallBlind, bigBlind int)
	OnElimination(p *Player, finishPosition int)
	OnTournamentEnd(winner *Player)
}

// NoopObserver implements Observer with no-op methods so callers can
// embed it and override only the events they care about.
type NoopObserver struct{}

func (NoopObserver) OnHandStart(int, int, int, []*Player) {}
func (NoopObserver) OnDeal(string, []poker.Card)          {}
func (NoopObserver) OnBeforeAction(*Player)               {}
func (NoopObserver) OnAction(*Player, Action)             {}
func (NoopObserver) OnShowdown([]PotWinners)              {}
func (NoopObserver) OnHandEnd(HandResult)                 {}
func (NoopObserver) OnBlindIncrease(int, int, int)        {}
func (NoopObserver) OnElimination(*Player, int)           {}
func (NoopObserver) OnTournamentEnd(*Player)              {}

var _ Observer = NoopObserver{}

// ActionEvent represents a significant action taken by a player during
// a betting round, in a form suitable for logging or transcript
// display. Observers that want a flattened, display-ready record
// rather than the live Player/Action pair can build one of these from
// their OnAction callback.
type ActionEvent struct {
	PlayerName string
	Action     ActionType
	Amount     int
}

// BlindEvent represents the posting or increase of the small and big
// blinds, in a form suitable for logging or transcript display.
type BlindEvent struct {
	SmallBlind int
	BigBlind   int
}
