package engine

import "testing"

// TestNewGameSeedZero verifies that seed 0 is corrected so the RNG does not stall.
func TestNewGameSeedZero(t *testing.T) {
	g := NewGame(0, DefaultRules())
	if g.RNG == 0 {
		t.Fatal("RNG must not be zero after NewGame(0)")
	}
	before := g.RNG
	g.nextRand()
	if g.RNG == before {
		t.Error("nextRand did not advance the RNG")
	}
}

// TestDealLayout verifies the initial layout: column i holds i+1 cards with
// only the top face-up, and 24 face-down cards remain in the stock.
func TestDealLayout(t *testing.T) {
	g := newDealtGame(t)

	for i := 0; i < NumColumns; i++ {
		if got := g.ColumnLen(i); got != i+1 {
			t.Errorf("column %d len = %d, want %d", i, got, i+1)
		}
		if got := g.FaceUpCount(i); got != 1 {
			t.Errorf("column %d FaceUpCount = %d, want 1", i, got)
		}
		if got := g.FaceDownCount(i); got != i {
			t.Errorf("column %d FaceDownCount = %d, want %d", i, got, i)
		}
	}
	if g.StockLen != StockSize {
		t.Errorf("StockLen = %d, want %d", g.StockLen, StockSize)
	}
	if g.ReserveLen != 0 || g.DiscardLen != 0 {
		t.Errorf("reserve/discard = %d/%d, want 0/0", g.ReserveLen, g.DiscardLen)
	}
	if g.CountFoundationCards() != 0 {
		t.Errorf("CountFoundationCards = %d, want 0", g.CountFoundationCards())
	}
	if g.CardCount() != DeckSize {
		t.Errorf("CardCount = %d, want %d", g.CardCount(), DeckSize)
	}
	if g.Moves != 0 {
		t.Errorf("Moves = %d, want 0", g.Moves)
	}
}

// TestDealDeterministic verifies that the same seed produces the same deal.
func TestDealDeterministic(t *testing.T) {
	a := NewDealtGame(12345, DefaultRules())
	b := NewDealtGame(12345, DefaultRules())
	if a != b {
		t.Fatal("same seed produced different deals")
	}
}

// TestDealSeedsDiffer verifies that different seeds shuffle differently.
func TestDealSeedsDiffer(t *testing.T) {
	a := NewDealtGame(1, DefaultRules())
	b := NewDealtGame(2, DefaultRules())
	if a.Tableau == b.Tableau && a.Stock == b.Stock {
		t.Fatal("seeds 1 and 2 produced identical deals")
	}
}

// TestDealResetsTable verifies that dealing twice starts from a clean table.
func TestDealResetsTable(t *testing.T) {
	g := newDealtGame(t)
	g.TryMove(Draw())
	g.TryMove(DiscardReserve())
	g.Deal()
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("re-deal: %v", err)
	}
	if g.DiscardLen != 0 || g.ReserveLen != 0 || g.Moves != 0 {
		t.Errorf("re-deal left discard=%d reserve=%d moves=%d", g.DiscardLen, g.ReserveLen, g.Moves)
	}
}

func TestTopAndEmptyColumns(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	if g.EmptyColumns() != NumColumns {
		t.Errorf("EmptyColumns = %d, want %d", g.EmptyColumns(), NumColumns)
	}
	if g.Top(0) != EmptyCard {
		t.Errorf("Top of empty column = %v, want EmptyCard", g.Top(0))
	}
	g.PlaceColumn(0, 1, MustParseCards("3c 9h")...)
	if g.Top(0) != MustParseCard("9h").Up() {
		t.Errorf("Top(0) = %v, want face-up 9♥", g.Top(0))
	}
	if g.EmptyColumns() != NumColumns-1 {
		t.Errorf("EmptyColumns = %d, want %d", g.EmptyColumns(), NumColumns-1)
	}
	if col := g.Column(0); len(col) != 2 || col[0].FaceUp() || !col[1].FaceUp() {
		t.Errorf("Column(0) = %v, want [3♣ face-down, 9♥ face-up]", col)
	}
}

// TestSaveRestore verifies that Restore returns the game to the saved position.
func TestSaveRestore(t *testing.T) {
	g := newDealtGame(t)
	snap := g.Save()
	orig := g

	g.TryMove(Draw())
	g.TryMove(DiscardReserve())
	if g == orig {
		t.Fatal("moves did not change the state")
	}
	g.Restore(snap)
	if g != orig {
		t.Error("Restore did not return to the saved state")
	}
}
