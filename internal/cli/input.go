package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexajuno/pokerithm/internal/util"
	"github.com/alexajuno/pokerithm/pkg/engine"
)

// TerminalDecider is a Decider that prompts a human at the terminal
// for every action, the way the original CLI's PromptForAction loop
// did — displaying the table first, then reading a single-letter
// command and, for bets and raises, a chip amount.
type TerminalDecider struct {
	In  *bufio.Reader
	Out *strings.Builder // unused hook for test capture; nil means os.Stdout
}

// NewTerminalDecider creates a decider that reads from stdin.
func NewTerminalDecider() *TerminalDecider {
	return &TerminalDecider{In: bufio.NewReader(os.Stdin)}
}

// Decide implements engine.Decider.
func (t *TerminalDecider) Decide(_ context.Context, p *engine.Player, snap engine.Snapshot) (engine.Action, error) {
	DisplaySnapshot(p, snap)

	canCheck := snap.ToCall == 0

	for {
		var prompt strings.Builder
		prompt.WriteString("Choose your action: ")

		if canCheck {
			prompt.WriteString("chec(k), (b)et, (f)old > ")
		} else {
			prompt.WriteString(fmt.Sprintf("(c)all %s, ", util.FormatNumber(snap.ToCall)))
			if p.Chips > snap.ToCall {
				prompt.WriteString("(r)aise, ")
			}
			prompt.WriteString("(f)old > ")
		}

		fmt.Print(prompt.String())
		line, _ := t.In.ReadString('\n')
		line = strings.TrimSpace(line)

		switch line {
		case "f":
			return engine.Action{Type: engine.ActionFold}, nil
		case "k":
			if canCheck {
				return engine.Action{Type: engine.ActionCheck}, nil
			}
		case "c":
			if !canCheck {
				return engine.Action{Type: engine.ActionCall}, nil
			}
		case "b":
			if canCheck {
				return t.promptForAmount(snap, engine.ActionRaise)
			}
		case "r":
			if !canCheck {
				return t.promptForAmount(snap, engine.ActionRaise)
			}
		}

		fmt.Println("Invalid action.")
	}
}

// promptForAmount reads a chip amount for a bet or raise, reprompting
// until it falls within the snapshot's legal range. The returned
// Action is still subject to BettingRound's own canonicalization, so
// an out-of-range value here is a usability nicety, not a safety net.
func (t *TerminalDecider) promptForAmount(snap engine.Snapshot, actionType engine.ActionType) (engine.Action, error) {
	for {
		fmt.Printf(
			"Enter amount to raise to (min: %s, max: %s): ",
			util.FormatNumber(snap.MinRaiseTo), util.FormatNumber(snap.MaxRaiseTo),
		)

		line, _ := t.In.ReadString('\n')
		amount, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || amount < snap.MinRaiseTo || amount > snap.MaxRaiseTo {
			fmt.Println("Invalid amount. Please try again.")
			continue
		}
		return engine.Action{Type: actionType, Amount: amount}, nil
	}
}

var _ engine.Decider = (*TerminalDecider)(nil)
