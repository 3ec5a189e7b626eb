package engine

import "testing"

// TestCardSuitRank verifies Suit/Rank roundtrip for every suit×rank combo.
func TestCardSuitRank(t *testing.T) {
	for s := uint8(0); s < NumFoundations; s++ {
		for r := RankAce; r <= RankKing; r++ {
			c := NewCard(s, r)
			if c.Suit() != s {
				t.Errorf("NewCard(%d,%d).Suit() = %d, want %d", s, r, c.Suit(), s)
			}
			if c.Rank() != r {
				t.Errorf("NewCard(%d,%d).Rank() = %d, want %d", s, r, c.Rank(), r)
			}
			if c.FaceUp() {
				t.Errorf("NewCard(%d,%d) should start face-down", s, r)
			}
			up := c.Up()
			if !up.FaceUp() || up.Suit() != s || up.Rank() != r {
				t.Errorf("Up() changed identity: %v -> %v", c, up)
			}
			if up.Identity() != c || up.Down() != c {
				t.Errorf("Identity/Down of %v = %v/%v, want %v", up, up.Identity(), up.Down(), c)
			}
			if !c.Valid() {
				t.Errorf("%v should be valid", c)
			}
		}
	}
}

// TestCardIndexDense verifies Index maps the 52 identities onto 0..51 exactly once.
func TestCardIndexDense(t *testing.T) {
	var seen [DeckSize]bool
	for _, c := range NewDeck() {
		idx := c.Index()
		if idx < 0 || idx >= DeckSize {
			t.Fatalf("%v.Index() = %d out of range", c, idx)
		}
		if seen[idx] {
			t.Fatalf("%v.Index() = %d already used", c, idx)
		}
		seen[idx] = true
	}
}

func TestEmptyCardInvalid(t *testing.T) {
	if EmptyCard.Valid() {
		t.Error("EmptyCard must not be a valid card")
	}
	if EmptyCard.String() != "--" {
		t.Errorf("EmptyCard.String() = %q, want %q", EmptyCard.String(), "--")
	}
}

func TestCardColor(t *testing.T) {
	tests := []struct {
		suit uint8
		red  bool
	}{
		{SuitSpades, false},
		{SuitHearts, true},
		{SuitDiamonds, true},
		{SuitClubs, false},
	}
	for _, tt := range tests {
		if got := NewCard(tt.suit, RankFive).IsRed(); got != tt.red {
			t.Errorf("suit %d IsRed() = %v, want %v", tt.suit, got, tt.red)
		}
	}
	if !OppositeColor(MustParseCard("5h"), MustParseCard("6s")) {
		t.Error("hearts and spades should be opposite colours")
	}
	if OppositeColor(MustParseCard("5h"), MustParseCard("6d")) {
		t.Error("hearts and diamonds share a colour")
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(SuitSpades, RankAce), "A♠"},
		{NewCard(SuitHearts, RankTen), "10♥"},
		{NewCard(SuitDiamonds, RankQueen).Up(), "Q♦"},
		{NewCard(SuitClubs, RankKing), "K♣"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"A♠", NewCard(SuitSpades, RankAce)},
		{"10♥", NewCard(SuitHearts, RankTen)},
		{"10h", NewCard(SuitHearts, RankTen)},
		{"Td", NewCard(SuitDiamonds, RankTen)},
		{"qc", NewCard(SuitClubs, RankQueen)},
		{"K♦", NewCard(SuitDiamonds, RankKing)},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "♠", "14h"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{TableauToTableau(0, 3, 2), "tableau_to_tableau(1->4 x2)"},
		{TableauToFoundation(6), "tableau_to_foundation(7)"},
		{ReserveToTableau(1), "reserve_to_tableau(2)"},
		{Draw(), "draw"},
		{Reshuffle(), "reshuffle"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
