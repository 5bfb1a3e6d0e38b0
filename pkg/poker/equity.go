package poker

import (
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EquityResult is the outcome of a Monte Carlo equity estimation:
// win/tie/loss rates over the simulations actually run, plus how often
// the hero made each hand category.
type EquityResult struct {
	WinRate           float64
	TieRate           float64
	LoseRate          float64
	Simulations       int
	CategoryHistogram map[Category]int
}

// Equity returns the hero's expected share of the pot: P(win) + P(tie)/2.
func (r EquityResult) Equity() float64 {
	return r.WinRate + r.TieRate/2
}

// parallelThreshold is the simulation count at or above which EstimateEquity
// fans work out across workers; below it the fixed cost of spinning up
// goroutines outweighs the benefit.
const parallelThreshold = 500

// EstimateEquity runs a Monte Carlo rollout of hero's hand against
// numOpponents opponents from an optionally partially known community
// board. If villainCards is non-nil it fixes a single opponent's hole
// cards (numOpponents is then implicitly 1); otherwise numOpponents
// opponents are dealt random hands each trial.
//
// rng seeds the whole estimation; for numSimulations at or above
// parallelThreshold, work is split across min(runtime.NumCPU(), 8)
// workers using golang.org/x/sync/errgroup. Determinism is preserved
// under that parallelism because each worker's sub-seed is drawn from
// rng serially, in worker-index order, before any goroutine is spawned —
// the split of work never depends on goroutine scheduling, only on the
// input seed.
func EstimateEquity(
	heroCards []Card,
	villainCards []Card,
	community []Card,
	numOpponents int,
	numSimulations int,
	rng *rand.Rand,
) (EquityResult, error) {
	if len(heroCards) != 2 {
		return EquityResult{}, newInvalidInputError("hero must have exactly 2 hole cards")
	}
	if villainCards != nil && len(villainCards) != 2 {
		return EquityResult{}, newInvalidInputError("villain must have exactly 2 hole cards when given")
	}
	if len(community) > 5 {
		return EquityResult{}, newInvalidInputError("community may have at most 5 cards")
	}
	if numSimulations <= 0 {
		return EquityResult{}, newInvalidInputError("numSimulations must be positive")
	}
	if villainCards != nil {
		numOpponents = 1
	}
	if numOpponents < 1 {
		return EquityResult{}, newInvalidInputError("numOpponents must be at least 1")
	}

	known := make([]Card, 0, 2+2+5)
	known = append(known, heroCards...)
	known = append(known, villainCards...)
	known = append(known, community...)

	if numSimulations < parallelThreshold {
		return estimateEquitySequential(heroCards, villainCards, community, numOpponents, numSimulations, known, rng)
	}
	return estimateEquityParallel(heroCards, villainCards, community, numOpponents, numSimulations, known, rng)
}

func estimateEquitySequential(
	heroCards, villainCards, community []Card,
	numOpponents, numSimulations int,
	known []Card,
	rng *rand.Rand,
) (EquityResult, error) {
	wins, ties, hist := runTrials(heroCards, villainCards, community, numOpponents, numSimulations, known, rng)
	return buildResult(wins, ties, numSimulations, hist), nil
}

func estimateEquityParallel(
	heroCards, villainCards, community []Card,
	numOpponents, numSimulations int,
	known []Card,
	rng *rand.Rand,
) (EquityResult, error) {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers < 1 {
		workers = 1
	}

	perWorker := numSimulations / workers
	remainder := numSimulations % workers

	type workerResult struct {
		wins, ties int
		hist       map[Category]int
	}
	resultsCh := make(chan workerResult, workers)

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		if trials == 0 {
			continue
		}
		// Serial seed derivation: called in worker-index order, before
		// the goroutine below is launched, so the sequence of sub-seeds
		// never depends on scheduling order.
		subSeed := rng.Int63()

		g.Go(func() error {
			workerRng := rand.New(rand.NewSource(subSeed))
			wins, ties, hist := runTrials(heroCards, villainCards, community, numOpponents, trials, known, workerRng)
			resultsCh <- workerResult{wins: wins, ties: ties, hist: hist}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultsCh)
	}()

	totalWins, totalTies := 0, 0
	hist := make(map[Category]int)
	for r := range resultsCh {
		totalWins += r.wins
		totalTies += r.ties
		for cat, n := range r.hist {
			hist[cat] += n
		}
	}

	return buildResult(totalWins, totalTies, numSimulations, hist), nil
}

func runTrials(
	heroCards, villainCards, community []Card,
	numOpponents, trials int,
	known []Card,
	rng *rand.Rand,
) (wins, ties int, hist map[Category]int) {
	hist = make(map[Category]int)

	for t := 0; t < trials; t++ {
		deck := NewDeck()
		deck.Remove(known...)
		deck.Shuffle(rng)

		opponents := make([][]Card, numOpponents)
		if villainCards != nil {
			opponents[0] = villainCards
			for i := 1; i < numOpponents; i++ {
				hand, err := deck.Deal(2)
				if err != nil {
					return wins, ties, hist
				}
				opponents[i] = hand
			}
		} else {
			for i := 0; i < numOpponents; i++ {
				hand, err := deck.Deal(2)
				if err != nil {
					return wins, ties, hist
				}
				opponents[i] = hand
			}
		}

		board := make([]Card, len(community), 5)
		copy(board, community)
		needed := 5 - len(board)
		if needed > 0 {
			extra, err := deck.Deal(needed)
			if err != nil {
				return wins, ties, hist
			}
			board = append(board, extra...)
		}

		heroSeven := append(append([]Card{}, heroCards...), board...)
		heroValue, err := EvaluateSeven(heroSeven)
		if err != nil {
			return wins, ties, hist
		}
		hist[heroValue.Category]++

		var bestOpp HandValue
		haveBestOpp := false
		for _, opp := range opponents {
			oppSeven := append(append([]Card{}, opp...), board...)
			oppValue, err := EvaluateSeven(oppSeven)
			if err != nil {
				return wins, ties, hist
			}
			if !haveBestOpp || oppValue.Compare(bestOpp) > 0 {
				bestOpp = oppValue
				haveBestOpp = true
			}
		}

		switch {
		case heroValue.Compare(bestOpp) > 0:
			wins++
		case heroValue.Compare(bestOpp) == 0:
			ties++
		}
	}
	return wins, ties, hist
}

func buildResult(wins, ties, simulations int, hist map[Category]int) EquityResult {
	return EquityResult{
		WinRate:           float64(wins) / float64(simulations),
		TieRate:           float64(ties) / float64(simulations),
		LoseRate:          float64(simulations-wins-ties) / float64(simulations),
		Simulations:       simulations,
		CategoryHistogram: hist,
	}
}
