package engine

import (
	"context"
	"math/rand"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// HandResult is the outcome of a single hand: the side pots constructed
// at showdown (or uncontested), the winners of each, the community
// cards actually dealt, and whether the hand reached a real showdown.
type HandResult struct {
	Pots           []SidePot
	PotWinners     []PotWinners
	Community      []poker.Card
	WentToShowdown bool
}

// HandConfig bundles the fixed, per-hand inputs the orchestrator needs
// beyond the players themselves.
type HandConfig struct {
	DealerSeat         int
	SmallBlind         int
	BigBlind           int
	MaxRaisesPerStreet int
}

// PlayHand plays one complete hand to resolution: posting blinds,
// dealing hole cards, streeting through preflop/flop/turn/river with a
// betting round each, and resolving the pot at showdown or earlier if
// only one player remains in the hand.
//
// alivePlayers must already be filtered to non-eliminated players;
// PlayHand resets their per-hand state itself. obs receives the
// hand-level observer events (OnDeal, OnBeforeAction, OnAction,
// OnShowdown, OnHandEnd) in the order they occur; obs may be nil.
func PlayHand(
	ctx context.Context,
	alivePlayers []*Player,
	cfg HandConfig,
	decide Decider,
	rng *rand.Rand,
	obs Observer,
) (HandResult, error) {
	deck := poker.NewDeck()
	deck.Shuffle(rng)
	pot := 0
	var community []poker.Card

	for _, p := range alivePlayers {
		p.ResetForNewHand()
	}

	_, bbPlayer, err := postBlinds(alivePlayers, cfg, &pot)
	if err != nil {
		return HandResult{}, err
	}

	for _, p := range alivePlayers {
		cards, err := deck.Deal(2)
		if err != nil {
			return HandResult{}, err
		}
		p.HoleCards = cards
	}
	notifyDeal(obs, "hole_cards", nil)

	positions, err := assignPositions(alivePlayers, cfg.DealerSeat)
	if err != nil {
		return HandResult{}, err
	}

	wentToShowdown := false

	for street := Preflop; street <= River; street++ {
		if err := dealStreet(deck, street, &community, obs); err != nil {
			return HandResult{}, err
		}

		// Preflop keeps the posted blinds as each poster's current bet.
		if street != Preflop {
			for _, p := range alivePlayers {
				p.ResetForNewStreet()
			}
		}

		var order []*Player
		initialBet := 0
		if street == Preflop {
			order = preflopOrder(alivePlayers, bbPlayer)
			initialBet = cfg.BigBlind
		} else {
			order = postflopOrder(alivePlayers, cfg.DealerSeat)
		}

		br := NewBettingRound(&pot, cfg.BigBlind, initialBet, cfg.BigBlind)
		if cfg.MaxRaisesPerStreet > 0 {
			br.MaxRaises = cfg.MaxRaisesPerStreet
		}

		notify := func(p *Player, a Action) { notifyAction(obs, p, a) }
		notifyBeforeEach := wrapDeciderWithBeforeAction(decide, obs)

		br.Run(ctx, order, street, community, positions, notifyBeforeEach, notify)

		if countInHand(alivePlayers) <= 1 {
			break
		}
	}

	inHand := filterInHand(alivePlayers)
	pots := BuildSidePots(alivePlayers)
	if len(pots) == 0 && pot > 0 {
		pots = []SidePot{{Amount: pot, Eligible: inHand}}
	}

	var potWinners []PotWinners

	if len(inHand) == 1 {
		winner := inHand[0]
		total := 0
		for _, sp := range pots {
			total += sp.Amount
		}
		winner.Chips += total
		potWinners = []PotWinners{{Pot: SidePot{Amount: total, Eligible: []*Player{winner}}, Winners: []*Player{winner}}}
	} else {
		wentToShowdown = true
		if err := completeBoard(deck, &community, obs); err != nil {
			return HandResult{}, err
		}

		for _, sp := range pots {
			eligible := filterInHand(sp.Eligible)
			if len(eligible) == 0 {
				continue
			}

			best := eligible[0]
			bestValue, err := poker.EvaluateSeven(append(append([]poker.Card{}, best.HoleCards...), community...))
			if err != nil {
				return HandResult{}, err
			}
			winners := []*Player{best}

			for _, p := range eligible[1:] {
				v, err := poker.EvaluateSeven(append(append([]poker.Card{}, p.HoleCards...), community...))
				if err != nil {
					return HandResult{}, err
				}
				switch v.Compare(bestValue) {
				case 1:
					bestValue = v
					winners = []*Player{p}
				case 0:
					winners = append(winners, p)
				}
			}

			distributeRemainder(sp.Amount, winners)
			potWinners = append(potWinners, PotWinners{Pot: sp, Winners: winners, WinningValue: &bestValue})
		}
	}

	if obs != nil {
		obs.OnShowdown(potWinners)
	}

	result := HandResult{
		Pots:           pots,
		PotWinners:     potWinners,
		Community:      community,
		WentToShowdown: wentToShowdown,
	}

	if obs != nil {
		obs.OnHandEnd(result)
	}

	return result, nil
}

// distributeRemainder pays sp.Amount evenly across winners, handing any
// indivisible remainder one chip at a time in seat order.
func distributeRemainder(amount int, winners []*Player) {
	if len(winners) == 0 {
		return
	}
	share := amount / len(winners)
	remainder := amount % len(winners)
	for i, w := range winners {
		w.Chips += share
		if i < remainder {
			w.Chips++
		}
	}
}

func countInHand(players []*Player) int {
	n := 0
	for _, p := range players {
		if p.IsInHand() {
			n++
		}
	}
	return n
}

func filterInHand(players []*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.IsInHand() {
			out = append(out, p)
		}
	}
	return out
}

func postBlinds(alive []*Player, cfg HandConfig, pot *int) (sb, bb *Player, err error) {
	dealerIdx := seatIndex(alive, cfg.DealerSeat)

	var sbIdx, bbIdx int
	if len(alive) == 2 {
		sbIdx = dealerIdx
		bbIdx = (dealerIdx + 1) % len(alive)
	} else {
		sbIdx = (dealerIdx + 1) % len(alive)
		bbIdx = (dealerIdx + 2) % len(alive)
	}

	sb = alive[sbIdx]
	bb = alive[bbIdx]

	*pot += sb.Bet(cfg.SmallBlind)
	*pot += bb.Bet(cfg.BigBlind)
	return sb, bb, nil
}

// preflopOrder starts from the seat after the big blind, wrapping; the
// big blind acts last.
func preflopOrder(alive []*Player, bb *Player) []*Player {
	bbIdx := seatIndex(alive, bb.Seat)
	order := make([]*Player, 0, len(alive))
	for i := 1; i < len(alive); i++ {
		order = append(order, alive[(bbIdx+i)%len(alive)])
	}
	order = append(order, bb)
	return order
}

// postflopOrder starts from the seat after the dealer, wrapping, and
// skips players who have already folded.
func postflopOrder(alive []*Player, dealerSeat int) []*Player {
	dealerIdx := seatIndex(alive, dealerSeat)
	order := make([]*Player, 0, len(alive))
	for i := 1; i <= len(alive); i++ {
		p := alive[(dealerIdx+i)%len(alive)]
		if p.IsInHand() {
			order = append(order, p)
		}
	}
	return order
}

// assignPositions maps each seat to its position label, keyed by
// distance from the seat that acts first preflop (UTG): the dealer
// itself heads-up, dealer+3 otherwise. PositionLabel then counts
// forward from there.
func assignPositions(alive []*Player, dealerSeat int) (map[int]string, error) {
	dealerIdx := seatIndex(alive, dealerSeat)
	n := len(alive)

	var utgIdx int
	if n == 2 {
		utgIdx = dealerIdx
	} else {
		utgIdx = (dealerIdx + 3) % n
	}

	positions := make(map[int]string, n)
	for i := 0; i < n; i++ {
		idx := (utgIdx + i) % n
		p := alive[idx]
		label, err := PositionLabel(i, n)
		if err != nil {
			label = "?"
		}
		positions[p.Seat] = label
	}
	return positions, nil
}

// seatIndex finds target's index in alive, or, if that seat is no
// longer occupied (its holder was eliminated between hands), the next
// occupied seat clockwise.
func seatIndex(alive []*Player, target int) int {
	for i, p := range alive {
		if p.Seat == target {
			return i
		}
	}
	for i, p := range alive {
		if p.Seat > target {
			return i
		}
	}
	return 0
}

func dealStreet(deck *poker.Deck, street Street, community *[]poker.Card, obs Observer) error {
	switch street {
	case Flop:
		if _, err := deck.DealOne(); err != nil { // burn
			return err
		}
		cards, err := deck.Deal(3)
		if err != nil {
			return err
		}
		*community = append(*community, cards...)
		notifyDeal(obs, "flop", *community)
	case Turn:
		if _, err := deck.DealOne(); err != nil {
			return err
		}
		card, err := deck.DealOne()
		if err != nil {
			return err
		}
		*community = append(*community, card)
		notifyDeal(obs, "turn", *community)
	case River:
		if _, err := deck.DealOne(); err != nil {
			return err
		}
		card, err := deck.DealOne()
		if err != nil {
			return err
		}
		*community = append(*community, card)
		notifyDeal(obs, "river", *community)
	}
	return nil
}

// completeBoard deals any remaining community cards needed when the
// hand goes all-in before the river, burning a card each time just as a
// normal street deal would.
func completeBoard(deck *poker.Deck, community *[]poker.Card, obs Observer) error {
	for len(*community) < 5 {
		if _, err := deck.DealOne(); err != nil {
			return err
		}
		card, err := deck.DealOne()
		if err != nil {
			return err
		}
		*community = append(*community, card)
	}
	return nil
}

func wrapDeciderWithBeforeAction(decide Decider, obs Observer) Decider {
	return DeciderFunc(func(ctx context.Context, p *Player, snap Snapshot) (Action, error) {
		if obs != nil {
			obs.OnBeforeAction(p)
		}
		return decide.Decide(ctx, p, snap)
	})
}

func notifyDeal(obs Observer, street string, community []poker.Card) {
	if obs != nil {
		obs.OnDeal(street, community)
	}
}

func notifyAction(obs Observer, p *Player, a Action) {
	if obs != nil {
		obs.OnAction(p, a)
	}
}
