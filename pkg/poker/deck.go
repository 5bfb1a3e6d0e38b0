package poker

import "math/rand"

// Deck is an ordered sequence of up to 52 unique cards together with the
// set of cards already removed from it (dealt or explicitly withdrawn).
// The invariant held at all times is that remaining ∪ removed equals the
// canonical 52-card set, with no overlap.
//
// A Deck never seeds its own randomness from wall-clock time; the caller
// always supplies the *rand.Rand used for Shuffle, so that any component
// built on top of a Deck (a single hand, a Monte Carlo trial) is
// independently seedable and reproducible.
type Deck struct {
	cards   []Card
	removed map[Card]bool
}

// NewDeck returns a full, unshuffled 52-card deck.
func NewDeck() *Deck {
	d := &Deck{}
	d.Reset()
	return d
}

// Reset restores the deck to a full, unshuffled 52 cards.
func (d *Deck) Reset() {
	d.cards = make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := Two; r <= Ace; r++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	d.removed = make(map[Card]bool)
}

// Len returns the number of cards remaining in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Contains reports whether card is still in the deck.
func (d *Deck) Contains(card Card) bool {
	for _, c := range d.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Shuffle randomizes the order of the remaining cards using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns n cards from the top of the deck. Returns
// ErrExhausted if fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, newExhaustedError(n, len(d.cards))
	}
	dealt := d.cards[:n]
	d.cards = d.cards[n:]
	for _, c := range dealt {
		d.removed[c] = true
	}
	return dealt, nil
}

// DealOne deals a single card.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remove withdraws specific known cards from the deck (e.g. cards
// already dealt as someone's hole cards before this deck is used for a
// simulation). Removing a card already removed is a no-op.
func (d *Deck) Remove(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	toRemove := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !d.removed[c] {
			toRemove[c] = true
		}
	}
	if len(toRemove) == 0 {
		return
	}
	remaining := d.cards[:0]
	for _, c := range d.cards {
		if toRemove[c] {
			d.removed[c] = true
			continue
		}
		remaining = append(remaining, c)
	}
	d.cards = remaining
}

type exhaustedError struct {
	requested, remaining int
}

func (e *exhaustedError) Error() string {
	return "poker: deck exhausted: requested deal of cards beyond what remains"
}

func (e *exhaustedError) Unwrap() error { return ErrExhausted }

func newExhaustedError(requested, remaining int) error {
	return &exhaustedError{requested: requested, remaining: remaining}
}
