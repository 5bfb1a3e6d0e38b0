package engine

import (
	"fmt"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// Player is a single seat at the tournament table. Chip and status
// fields are mutated in place by blinds, bets, and folds, the way the
// teacher's engine mutates its own Player records across the betting
// round and pot distribution.
type Player struct {
	Name  string
	Seat  int
	Chips int
	IsCPU bool

	HoleCards      []poker.Card
	CurrentBet     int // this street only
	TotalBetInHand int // across the whole hand; survives street resets
	IsFolded       bool
	IsAllIn        bool

	// LastActionDesc is a short human-readable description of the most
	// recent action taken, surfaced for observers/CLI display only; it
	// has no effect on game logic.
	LastActionDesc string
}

// NewPlayer creates a player seated at seat with the given starting
// stack.
func NewPlayer(name string, seat, chips int, isCPU bool) *Player {
	return &Player{Name: name, Seat: seat, Chips: chips, IsCPU: isCPU}
}

// IsInHand reports whether the player is still competing for the pot
// (i.e. has not folded).
func (p *Player) IsInHand() bool { return !p.IsFolded }

// IsActive reports whether the player can still act this betting round:
// not folded, not all-in, and holding chips.
func (p *Player) IsActive() bool { return !p.IsFolded && !p.IsAllIn && p.Chips > 0 }

// IsEliminated reports whether the player is out of the tournament: no
// chips and not mid-way through an all-in resolution.
func (p *Player) IsEliminated() bool { return p.Chips == 0 && !p.IsAllIn }

// ResetForNewHand clears all per-hand state ahead of a fresh deal.
func (p *Player) ResetForNewHand() {
	p.HoleCards = nil
	p.IsFolded = false
	p.IsAllIn = false
	p.CurrentBet = 0
	p.TotalBetInHand = 0
	p.LastActionDesc = ""
}

// ResetForNewStreet clears only the current-street bet counter; total
// hand investment persists for side-pot accounting.
func (p *Player) ResetForNewStreet() {
	p.CurrentBet = 0
}

// Bet commits amount to the pot, capped at the player's remaining
// chips, and returns the amount actually committed. Going to zero chips
// marks the player all-in.
func (p *Player) Bet(amount int) int {
	actual := amount
	if actual > p.Chips {
		actual = p.Chips
	}
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBetInHand += actual
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	return actual
}

// Fold marks the player as out of the hand.
func (p *Player) Fold() { p.IsFolded = true }

func (p *Player) String() string {
	return fmt.Sprintf(
		"Player{Name: %s, Seat: %d, Chips: %d, Folded: %t, AllIn: %t, CurrentBet: %d}",
		p.Name, p.Seat, p.Chips, p.IsFolded, p.IsAllIn, p.CurrentBet,
	)
}
