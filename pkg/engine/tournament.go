package engine

import (
	"context"
	"math/rand"
	"sort"
)

// BlindLevel is one entry in a tournament's blind schedule.
type BlindLevel struct {
	SmallBlind int
	BigBlind   int
}

// DefaultBlindSchedule is a ten-level schedule rising from 10/20 to
// 500/1000, used when a TournamentConfig doesn't supply its own.
var DefaultBlindSchedule = []BlindLevel{
	{SmallBlind: 10, BigBlind: 20},
	{SmallBlind: 15, BigBlind: 30},
	{SmallBlind: 25, BigBlind: 50},
	{SmallBlind: 50, BigBlind: 100},
	{SmallBlind: 75, BigBlind: 150},
	{SmallBlind: 100, BigBlind: 200},
	{SmallBlind: 150, BigBlind: 300},
	{SmallBlind: 200, BigBlind: 400},
	{SmallBlind: 300, BigBlind: 600},
	{SmallBlind: 500, BigBlind: 1000},
}

const (
	DefaultStartingStack = 1500
	DefaultHandsPerLevel = 10
)

// TournamentConfig holds the fixed parameters of a tournament: how
// many chips everyone starts with, how many hands pass before blinds
// rise, and the schedule itself.
type TournamentConfig struct {
	StartingStack      int
	HandsPerLevel      int
	BlindSchedule      []BlindLevel
	MaxRaisesPerStreet int
}

// Tournament runs hands back to back against a fixed set of players
// until only one remains, advancing the blind schedule and the dealer
// button between hands.
type Tournament struct {
	Config     TournamentConfig
	Players    []*Player
	Decide     func(p *Player) Decider
	Rand       *rand.Rand
	Obs        Observer

	dealerSeat   int
	handNumber   int
	blindLevelIx int
}

// NewTournament creates a tournament from a player roster already
// seated and stacked. decide selects the Decider to use for a given
// player's turn (e.g. a human terminal decider for seat 0, bot
// deciders for the rest); it is called fresh every action, so it may
// return different deciders over time if desired.
func NewTournament(cfg TournamentConfig, players []*Player, decide func(p *Player) Decider, rng *rand.Rand, obs Observer) *Tournament {
	if len(cfg.BlindSchedule) == 0 {
		cfg.BlindSchedule = DefaultBlindSchedule
	}
	if cfg.HandsPerLevel <= 0 {
		cfg.HandsPerLevel = DefaultHandsPerLevel
	}
	return &Tournament{
		Config:     cfg,
		Players:    players,
		Decide:     decide,
		Rand:       rng,
		Obs:        obs,
		dealerSeat: players[0].Seat,
	}
}

// Run plays hands until a single player remains with chips, returning
// that player. It has no hand cap of its own; ctx is checked before
// each hand (a hand already in progress plays to completion), so a
// caller that wants a cap can cancel ctx.
func (t *Tournament) Run(ctx context.Context) (*Player, error) {
	for {
		alive := t.alivePlayers()
		if len(alive) <= 1 {
			var winner *Player
			if len(alive) == 1 {
				winner = alive[0]
			}
			if t.Obs != nil {
				t.Obs.OnTournamentEnd(winner)
			}
			return winner, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t.handNumber++
		if t.handNumber > 1 && (t.handNumber-1)%t.Config.HandsPerLevel == 0 {
			if t.blindLevelIx < len(t.Config.BlindSchedule)-1 {
				t.blindLevelIx++
			}
			level := t.Config.BlindSchedule[t.blindLevelIx]
			if t.Obs != nil {
				t.Obs.OnBlindIncrease(t.blindLevelIx, level.SmallBlind, level.BigBlind)
			}
		}
		level := t.Config.BlindSchedule[t.blindLevelIx]

		if t.Obs != nil {
			t.Obs.OnHandStart(t.handNumber, t.blindLevelIx, t.dealerSeat, alive)
		}

		decider := t.perSeatDecider(alive)
		cfg := HandConfig{
			DealerSeat:         t.dealerSeat,
			SmallBlind:         level.SmallBlind,
			BigBlind:           level.BigBlind,
			MaxRaisesPerStreet: t.Config.MaxRaisesPerStreet,
		}

		if _, err := PlayHand(ctx, alive, cfg, decider, t.Rand, t.Obs); err != nil {
			return nil, err
		}

		for _, p := range alive {
			p.IsAllIn = false
			p.IsFolded = false
		}

		t.reportEliminations(alive)
		t.dealerSeat = t.nextDealerSeat()
	}
}

// perSeatDecider wraps t.Decide into a single Decider that dispatches
// by the acting player's identity, since BettingRound.Run only knows
// about one Decider for the whole street.
func (t *Tournament) perSeatDecider(alive []*Player) Decider {
	return DeciderFunc(func(ctx context.Context, p *Player, snap Snapshot) (Action, error) {
		return t.Decide(p).Decide(ctx, p, snap)
	})
}

func (t *Tournament) alivePlayers() []*Player {
	var alive []*Player
	for _, p := range t.Players {
		if !p.IsEliminated() {
			alive = append(alive, p)
		}
	}
	return alive
}

// reportEliminations finds the players who busted in the hand just
// played and emits OnElimination for each, in seat order, with finish
// positions counted from the bottom: the
// first player eliminated in the whole tournament finishes last.
func (t *Tournament) reportEliminations(alive []*Player) {
	var busted []*Player
	for _, p := range alive {
		if p.Chips == 0 {
			busted = append(busted, p)
		}
	}
	if len(busted) == 0 {
		return
	}

	alreadyGone := 0
	for _, p := range t.Players {
		if p.Chips == 0 {
			isBusted := false
			for _, b := range busted {
				if b == p {
					isBusted = true
					break
				}
			}
			if !isBusted {
				alreadyGone++
			}
		}
	}

	sort.Slice(busted, func(i, j int) bool { return busted[i].Seat < busted[j].Seat })
	for _, p := range busted {
		alreadyGone++
		finishPosition := len(t.Players) - alreadyGone + 1
		if t.Obs != nil {
			t.Obs.OnElimination(p, finishPosition)
		}
	}
}

// nextDealerSeat finds the next occupied seat clockwise from the
// current dealer among still-alive players, wrapping around.
func (t *Tournament) nextDealerSeat() int {
	alive := t.alivePlayers()
	if len(alive) == 0 {
		return t.dealerSeat
	}
	sort.Slice(alive, func(i, j int) bool { return alive[i].Seat < alive[j].Seat })
	for _, p := range alive {
		if p.Seat > t.dealerSeat {
			return p.Seat
		}
	}
	return alive[0].Seat
}
