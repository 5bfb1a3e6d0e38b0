package engine

import (
	"sort"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// SidePot is a single pot — main or side — paired with the subset of
// non-folded players who may win it.
type SidePot struct {
	Amount   int
	Eligible []*Player
}

// BuildSidePots constructs the main pot and any side pots from player
// bet counters, without consulting a running pot total.
//
// Algorithm: collect the unique TotalBetInHand values across all
// players who contributed anything, sorted ascending. For each level,
// every contributor puts in min(their total, level) - min(their total,
// prevLevel); the pot at that level is eligible to non-folded players
// whose total bet reached at least that level. Folded players' chips
// remain in the pots — they are simply never eligible to win them.
//
// A player with TotalBetInHand == 0 (folded before committing anything,
// including the blinds) is dropped from consideration entirely: with
// zero contribution they cannot be owed a share of any pot, folded or
// not, so omitting them from the level set changes nothing observable.
func BuildSidePots(players []*Player) []SidePot {
	inHand := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.TotalBetInHand > 0 {
			inHand = append(inHand, p)
		}
	}
	if len(inHand) == 0 {
		return nil
	}

	levelSet := make(map[int]bool)
	for _, p := range inHand {
		levelSet[p.TotalBetInHand] = true
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		amount := 0
		for _, p := range inHand {
			amount += min(p.TotalBetInHand, level) - min(p.TotalBetInHand, prev)
		}

		var eligible []*Player
		for _, p := range inHand {
			if !p.IsFolded && p.TotalBetInHand >= level {
				eligible = append(eligible, p)
			}
		}

		if amount > 0 {
			pots = append(pots, SidePot{Amount: amount, Eligible: eligible})
		}
		prev = level
	}
	return pots
}

// PotWinners pairs a SidePot with the players who won it and, when the
// hand reached showdown, the HandValue that won it (nil when the pot
// was awarded uncontested with no hands ever compared).
type PotWinners struct {
	Pot          SidePot
	Winners      []*Player
	WinningValue *poker.HandValue
}
