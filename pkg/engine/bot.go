package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/alexajuno/pokerithm/pkg/poker"
)

// AIProfile defines the behavioral characteristics of a CPU player: how
// tight or loose it plays, how often it bluffs, and how aggressive it is
// with a made hand. MinRaiseMultiplier and MaxRaiseMultiplier are part of
// the profile table, but BotDecider.Decide does not read them: it raises
// to twice the minimum raise-to amount, or to half the pot when bluffing
// into an unbet pot.
type AIProfile struct {
	Name               string
	PlayHandThreshold  float64 // Minimum preflop strength score to play. Higher is tighter.
	RaiseHandThreshold float64 // Minimum preflop strength score to raise.
	BluffingFrequency  float64 // Chance to bluff with a weak hand (0.0 to 1.0).
	AggressionFactor   float64 // How likely to bet/raise vs. check/call with a made hand.
	MinRaiseMultiplier float64
	MaxRaiseMultiplier float64
}

// aiProfiles contains a set of predefined personalities that dictate how a
// bot decider behaves. Each profile has different thresholds for playing,
// raising, and bluffing, creating varied opponent styles.
var aiProfiles = map[string]AIProfile{
	"Tight-Aggressive": {
		Name:               "Tight-Aggressive",
		PlayHandThreshold:  20,
		RaiseHandThreshold: 25,
		BluffingFrequency:  0.15,
		AggressionFactor:   0.7,
		MinRaiseMultiplier: 2.5,
		MaxRaiseMultiplier: 4.0,
	},
	"Loose-Aggressive": {
		Name:               "Loose-Aggressive",
		PlayHandThreshold:  10,
		RaiseHandThreshold: 20,
		BluffingFrequency:  0.35,
		AggressionFactor:   0.9,
		MinRaiseMultiplier: 2.0,
		MaxRaiseMultiplier: 3.5,
	},
	"Tight-Passive": {
		Name:               "Tight-Passive",
		PlayHandThreshold:  22,
		RaiseHandThreshold: 28,
		BluffingFrequency:  0.05,
		AggressionFactor:   0.3,
		MinRaiseMultiplier: 2.0,
		MaxRaiseMultiplier: 2.5,
	},
	"Loose-Passive": {
		Name:               "Loose-Passive",
		PlayHandThreshold:  8,
		RaiseHandThreshold: 24,
		BluffingFrequency:  0.10,
		AggressionFactor:   0.2,
		MinRaiseMultiplier: 2.0,
		MaxRaiseMultiplier: 3.0,
	},
}

// ProfilesForDifficulty returns the ordered list of profile names to
// assign to numBots bots at the given difficulty, easiest table setups
// favoring passive opponents and harder ones mixing in aggression.
func ProfilesForDifficulty(difficulty Difficulty, numBots int) ([]string, error) {
	if numBots < 1 || numBots > 8 {
		return nil, newInvalidInputErr(fmt.Sprintf("numBots must be between 1 and 8, got %d", numBots))
	}

	pool := map[Difficulty][]string{
		DifficultyEasy: {
			"Loose-Passive", "Loose-Passive", "Loose-Passive",
			"Loose-Passive", "Loose-Passive", "Loose-Passive",
			"Loose-Passive", "Loose-Passive",
		},
		DifficultyMedium: {
			"Loose-Passive", "Loose-Passive", "Tight-Passive",
			"Tight-Passive", "Tight-Passive", "Loose-Passive",
			"Tight-Passive", "Loose-Passive",
		},
		DifficultyHard: {
			"Tight-Passive", "Loose-Aggressive", "Loose-Aggressive",
			"Tight-Aggressive", "Tight-Aggressive", "Loose-Aggressive",
			"Tight-Aggressive", "Loose-Passive",
		},
	}[difficulty]
	if pool == nil {
		return nil, newInvalidInputErr(fmt.Sprintf("unknown difficulty: %v", difficulty))
	}
	return pool[:numBots], nil
}

// byRank sorts poker.Rank values in descending order (ace high).
type byRank []poker.Rank

func (a byRank) Len() int           { return len(a) }
func (a byRank) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byRank) Less(i, j int) bool { return a[i] > a[j] }

// BotDecider is a Decider backed by an AIProfile heuristic: preflop it
// scores the hole cards, postflop it uses the category of the best
// five-card hand from the hole cards and the board so far. It never calls the Monte Carlo equity estimator —
// that cost is reserved for callers that explicitly want precise
// equity, not for every bot decision every street.
type BotDecider struct {
	Profile AIProfile
	Rand    *rand.Rand
}

// NewBotDecider builds a BotDecider for the named profile. profileName
// must be a key of ProfilesForDifficulty's pool (one of the four
// personalities above).
func NewBotDecider(profileName string, rng *rand.Rand) (*BotDecider, error) {
	profile, ok := aiProfiles[profileName]
	if !ok {
		return nil, newInvalidInputErr(fmt.Sprintf("unknown AI profile: %s", profileName))
	}
	return &BotDecider{Profile: profile, Rand: rng}, nil
}

// Decide implements Decider.
func (b *BotDecider) Decide(_ context.Context, p *Player, snap Snapshot) (Action, error) {
	canCheck := snap.ToCall == 0
	minRaiseAmount := snap.MinRaiseTo

	if snap.Street == Preflop {
		strength := preflopStrength(snap.HoleCards)

		if strength < b.Profile.PlayHandThreshold {
			if canCheck {
				return Action{Type: ActionCheck}, nil
			}
			return Action{Type: ActionFold}, nil
		}
		if strength >= b.Profile.RaiseHandThreshold {
			return Action{Type: ActionRaise, Amount: minRaiseAmount * 2}, nil
		}
		if canCheck {
			return Action{Type: ActionCheck}, nil
		}
		return Action{Type: ActionCall}, nil
	}

	strength, err := postflopStrength(snap.HoleCards, snap.Community)
	if err != nil {
		return Action{}, err
	}

	isBluffing := b.Rand.Float64() < b.Profile.BluffingFrequency
	if isBluffing && strength < poker.OnePair {
		if canCheck {
			return Action{Type: ActionRaise, Amount: snap.PotTotal / 2}, nil
		}
		return Action{Type: ActionRaise, Amount: minRaiseAmount * 2}, nil
	}

	switch {
	case strength >= poker.TwoPair:
		if b.Rand.Float64() < b.Profile.AggressionFactor {
			return Action{Type: ActionRaise, Amount: minRaiseAmount * 2}, nil
		}
		if canCheck {
			return Action{Type: ActionCheck}, nil
		}
		return Action{Type: ActionCall}, nil

	case strength >= poker.OnePair:
		if canCheck {
			return Action{Type: ActionCheck}, nil
		}
		return Action{Type: ActionCall}, nil

	default:
		if canCheck {
			return Action{Type: ActionCheck}, nil
		}
		potOdds := float64(snap.ToCall) / float64(snap.PotTotal+snap.ToCall)
		if potOdds < b.Profile.BluffingFrequency*0.5 {
			return Action{Type: ActionCall}, nil
		}
		return Action{Type: ActionFold}, nil
	}
}

var _ Decider = (*BotDecider)(nil)

// postflopStrength returns the category of the best hand available to
// the player given however much of the board is showing (flop, turn, or
// river).
func postflopStrength(hole, community []poker.Card) (poker.Category, error) {
	cards := append(append([]poker.Card{}, hole...), community...)
	value, err := poker.EvaluateBest(cards)
	if err != nil {
		return 0, err
	}
	return value.Category, nil
}

// preflopStrength scores two hole cards using a simplified heuristic:
// points for high cards, a large bonus for a pocket pair, a small bonus
// for suitedness, and a bonus for connectivity.
func preflopStrength(hole []poker.Card) float64 {
	if len(hole) != 2 {
		return 0
	}

	rankPoints := map[poker.Rank]float64{
		poker.Ace: 10, poker.King: 8, poker.Queen: 7, poker.Jack: 6, poker.Ten: 5,
	}

	var score float64
	for _, c := range hole {
		score += rankPoints[c.Rank]
	}

	if hole[0].Rank == hole[1].Rank {
		score += 15 + float64(hole[0].Rank)
	}
	if hole[0].Suit == hole[1].Suit {
		score += 2
	}

	ranks := []poker.Rank{hole[0].Rank, hole[1].Rank}
	sort.Sort(byRank(ranks))
	if ranks[0] == ranks[1]+1 {
		score += 2
	}
	if ranks[0] >= poker.Ten && int(ranks[0])-int(ranks[1]) < 5 {
		score += 1
	}

	return score
}
