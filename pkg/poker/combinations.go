package poker

// combinations returns all C(len(pool), n) unique n-card subsets of pool,
// order not significant. Used by the seven-card evaluator to enumerate
// every five-card hand a player could form from two hole cards and five
// community cards.
func combinations(pool []Card, n int) [][]Card {
	if n == 0 {
		return [][]Card{{}}
	}
	if len(pool) < n {
		return nil
	}
	if len(pool) == n {
		newPool := make([]Card, len(pool))
		copy(newPool, pool)
		return [][]Card{newPool}
	}

	withFirst := combinations(pool[1:], n-1)
	for i := range withFirst {
		withFirst[i] = append([]Card{pool[0]}, withFirst[i]...)
	}

	withoutFirst := combinations(pool[1:], n)

	return append(withFirst, withoutFirst...)
}
