package poker

import (
	"errors"
	"testing"
)

func TestCardFromString(t *testing.T) {
	cases := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Kd", King, Diamonds},
		{"Tc", Ten, Clubs},
		{"10c", Ten, Clubs},
		{"2h", Two, Hearts},
		{"ah", Ace, Hearts},
	}
	for _, c := range cases {
		got, err := CardFromString(c.in)
		if err != nil {
			t.Fatalf("CardFromString(%q): unexpected error: %v", c.in, err)
		}
		if got.Rank != c.rank || got.Suit != c.suit {
			t.Errorf("CardFromString(%q) = %+v, want rank=%v suit=%v", c.in, got, c.rank, c.suit)
		}
	}
}

func TestCardFromStringInvalid(t *testing.T) {
	for _, in := range []string{"", "A", "Zs", "Ax", "100s"} {
		_, err := CardFromString(in)
		if err == nil {
			t.Errorf("CardFromString(%q): expected error, got nil", in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("CardFromString(%q): error %v does not wrap ErrParse", in, err)
		}
	}
}

func TestCardsFromString(t *testing.T) {
	cards, err := CardsFromString("As Kd Tc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0] != (Card{Rank: Ace, Suit: Spades}) {
		t.Errorf("cards[0] = %+v, want As", cards[0])
	}
}
