package cli

import (
	"fmt"
	"strings"

	"github.com/alexajuno/pokerithm/internal/util"
	"github.com/alexajuno/pokerithm/pkg/engine"
	"github.com/alexajuno/pokerithm/pkg/poker"
)

// DisplaySnapshot prints the acting player's view of the table ahead
// of a prompt: the board, the pot, what's owed, and their hole cards.
func DisplaySnapshot(p *engine.Player, snap engine.Snapshot) {
	fmt.Printf("\n--- %s TO ACT | %s | POT: %s ---\n",
		p.Name, strings.ToUpper(snap.Street.String()), util.FormatNumber(snap.PotTotal))
	fmt.Printf("Board: %s\n", poker.JoinCards(snap.Community))
	fmt.Printf("Your hand: %s | Position: %s\n", poker.JoinCards(snap.HoleCards), snap.PositionLabel)
	if snap.ToCall > 0 {
		fmt.Printf("To call: %s\n", util.FormatNumber(snap.ToCall))
	}
}

// TerminalObserver is an engine.Observer that narrates a hand and a
// tournament to the terminal: deals, actions, showdowns, blind
// increases, and eliminations. It embeds NoopObserver so new Observer
// methods added later default to silence instead of a compile error.
type TerminalObserver struct {
	engine.NoopObserver
}

func (TerminalObserver) OnHandStart(handNumber, blindLevel, dealerSeat int, players []*engine.Player) {
	fmt.Printf("\n======== HAND #%d (level %d, dealer seat %d) ========\n", handNumber, blindLevel, dealerSeat)
	for _, p := range players {
		fmt.Printf("  %-10s chips: %s\n", p.Name, util.FormatNumber(p.Chips))
	}
}

func (TerminalObserver) OnDeal(street string, community []poker.Card) {
	if street == "hole_cards" {
		return
	}
	fmt.Printf("\n-- %s: %s --\n", strings.ToUpper(street), poker.JoinCards(community))
}

func (TerminalObserver) OnAction(p *engine.Player, a engine.Action) {
	switch a.Type {
	case engine.ActionFold:
		fmt.Printf("%s folds\n", p.Name)
	case engine.ActionCheck:
		fmt.Printf("%s checks\n", p.Name)
	case engine.ActionCall:
		fmt.Printf("%s calls %s\n", p.Name, util.FormatNumber(p.CurrentBet))
	case engine.ActionRaise:
		fmt.Printf("%s raises to %s\n", p.Name, util.FormatNumber(a.Amount))
	case engine.ActionAllIn:
		fmt.Printf("%s is all-in for %s\n", p.Name, util.FormatNumber(p.CurrentBet))
	}
}

func (TerminalObserver) OnShowdown(potWinners []engine.PotWinners) {
	if len(potWinners) == 0 {
		return
	}
	fmt.Println("\n--- SHOWDOWN ---")
	for _, pw := range potWinners {
		names := make([]string, 0, len(pw.Winners))
		for _, w := range pw.Winners {
			names = append(names, w.Name)
		}
		if pw.WinningValue != nil {
			fmt.Printf("%s wins %s with %s\n", strings.Join(names, " & "), util.FormatNumber(pw.Pot.Amount), pw.WinningValue.Category)
		} else {
			fmt.Printf("%s wins %s\n", strings.Join(names, " & "), util.FormatNumber(pw.Pot.Amount))
		}
	}
}

func (TerminalObserver) OnHandEnd(result engine.HandResult) {
	fmt.Println("--------------------------------")
}

func (TerminalObserver) OnBlindIncrease(level int, smallBlind, bigBlind int) {
	fmt.Printf("\n*** BLINDS UP: %s/%s ***\n", util.FormatNumber(smallBlind), util.FormatNumber(bigBlind))
}

func (TerminalObserver) OnElimination(p *engine.Player, finishPosition int) {
	fmt.Printf("%s has been eliminated — finished #%d\n", p.Name, finishPosition)
}

func (TerminalObserver) OnTournamentEnd(winner *engine.Player) {
	if winner == nil {
		fmt.Println("\n--- TOURNAMENT OVER ---")
		return
	}
	fmt.Printf("\n--- TOURNAMENT OVER: %s WINS! ---\n", winner.Name)
}

var _ engine.Observer = TerminalObserver{}
