package poker

import (
	"math/rand"
	"testing"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	if d.Len() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Len())
	}
	seen := make(map[Card]bool, 52)
	for i := 0; i < 52; i++ {
		c, err := d.DealOne()
		if err != nil {
			t.Fatalf("DealOne: unexpected error: %v", err)
		}
		if seen[c] {
			t.Fatalf("duplicate card dealt: %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestDealExhausted(t *testing.T) {
	d := NewDeck()
	if _, err := d.Deal(52); err != nil {
		t.Fatalf("unexpected error dealing all 52: %v", err)
	}
	if _, err := d.DealOne(); err == nil {
		t.Fatal("expected ErrExhausted dealing from an empty deck")
	}
}

func TestRemoveKnownCards(t *testing.T) {
	d := NewDeck()
	known := Card{Rank: Ace, Suit: Spades}
	d.Remove(known)
	if d.Len() != 51 {
		t.Fatalf("expected 51 cards after removal, got %d", d.Len())
	}
	if d.Contains(known) {
		t.Fatalf("removed card %v still present in deck", known)
	}
	for i := 0; i < 51; i++ {
		c, err := d.DealOne()
		if err != nil {
			t.Fatalf("DealOne: unexpected error: %v", err)
		}
		if c == known {
			t.Fatalf("dealt a card that should have been removed: %v", c)
		}
	}
}

func TestShuffleIsDeterministicForAGivenSeed(t *testing.T) {
	d1 := NewDeck()
	d1.Shuffle(rand.New(rand.NewSource(42)))

	d2 := NewDeck()
	d2.Shuffle(rand.New(rand.NewSource(42)))

	for i := 0; i < 52; i++ {
		c1, _ := d1.DealOne()
		c2, _ := d2.DealOne()
		if c1 != c2 {
			t.Fatalf("shuffle with identical seed diverged at card %d: %v != %v", i, c1, c2)
		}
	}
}
