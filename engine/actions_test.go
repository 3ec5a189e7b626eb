package engine

import (
	"errors"
	"testing"
)

func TestMoveTableauRevealsNewTop(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	g.PlaceColumn(0, 2, MustParseCards("3c 7d 10s")...)
	g.PlaceColumn(1, 0, MustParseCards("Jh")...)

	if err := g.ApplyMove(TableauToTableau(0, 1, 1)); err != nil {
		t.Fatalf("10♠ onto J♥: %v", err)
	}
	if g.ColumnLen(0) != 2 || g.ColumnLen(1) != 2 {
		t.Fatalf("column lens = %d/%d, want 2/2", g.ColumnLen(0), g.ColumnLen(1))
	}
	if top := g.Top(0); !top.FaceUp() || top.Identity() != MustParseCard("7d") {
		t.Errorf("new top of column 0 = %v (up=%v), want face-up 7♦", top, top.FaceUp())
	}
	if g.Top(1).Identity() != MustParseCard("10s") {
		t.Errorf("top of column 1 = %v, want 10♠", g.Top(1))
	}
	if g.Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.Moves)
	}
}

func TestMoveRunToEmptyColumn(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	g.PlaceColumn(0, 1, MustParseCards("4h Kd Qc Jd")...)

	if !g.TryMove(TableauToTableau(0, 5, 3)) {
		t.Fatal("K♦ run should move to an empty column")
	}
	want := MustParseCards("Kd Qc Jd")
	col := g.Column(5)
	if len(col) != len(want) {
		t.Fatalf("column 5 len = %d, want %d", len(col), len(want))
	}
	for k := range want {
		if col[k].Identity() != want[k] || !col[k].FaceUp() {
			t.Errorf("column 5[%d] = %v, want face-up %v", k, col[k], want[k])
		}
	}
	if !g.Top(0).FaceUp() {
		t.Error("4♥ should be revealed")
	}
}

// TestIllegalMoveLeavesState verifies that a refused move does not mutate.
func TestIllegalMoveLeavesState(t *testing.T) {
	g := newDealtGame(t)
	before := g

	g.TryMove(Draw())
	afterDraw := g
	illegal := []Move{
		Draw(),                    // reserve full
		Reshuffle(),               // stock not empty
		TableauToTableau(6, 0, 7), // face-down cards in run
	}
	for _, m := range illegal {
		if g.TryMove(m) {
			t.Errorf("%v should be illegal", m)
		}
		if g != afterDraw {
			t.Fatalf("%v mutated the state", m)
		}
	}
	if before == afterDraw {
		t.Error("draw should have changed the state")
	}
}

func TestApplyMoveErrors(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())

	err := g.ApplyMove(Draw())
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("draw from empty stock: err = %v, want ErrIllegalMove", err)
	}
	err = g.ApplyMove(TableauToTableau(0, 7, 1))
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("dst 7: err = %v, want ErrInvalidMove", err)
	}
	err = g.ApplyMove(TableauToTableau(0, 1, 0))
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("count 0: err = %v, want ErrInvalidMove", err)
	}
	err = g.ApplyMove(TableauToTableau(2, 2, 1))
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("src == dst: err = %v, want ErrInvalidMove", err)
	}
	err = g.ApplyMove(Move{Kind: MoveKind(99)})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("unknown kind: err = %v, want ErrInvalidMove", err)
	}
}

// TestTryMovePanicsOnMalformed verifies that out-of-range columns are a
// programming error rather than an ordinary refusal.
func TestTryMovePanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("TryMove with column 9 should panic")
		}
	}()
	g := newDealtGame(t)
	g.TryMove(TableauToFoundation(9))
}

func TestTryMovePanicsOnSameColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("TryMove from column 3 onto itself should panic")
		}
	}()
	g := newDealtGame(t)
	g.TryMove(TableauToTableau(2, 2, 1))
}

func TestFoundationMoves(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	g.PlaceColumn(0, 1, MustParseCards("5c 2h")...)
	g.PlaceColumn(1, 0, MustParseCards("Ah")...)

	if g.TryMove(TableauToFoundation(0)) {
		t.Fatal("2♥ must not start a foundation")
	}
	if !g.TryMove(TableauToFoundation(1)) {
		t.Fatal("A♥ should go to the foundation")
	}
	if !g.TryMove(TableauToFoundation(0)) {
		t.Fatal("2♥ should follow A♥")
	}
	if h := g.FoundationHeight(SuitHearts); h != 2 {
		t.Errorf("hearts height = %d, want 2", h)
	}
	if g.FoundationTop(SuitHearts).Identity() != MustParseCard("2h") {
		t.Errorf("hearts top = %v, want 2♥", g.FoundationTop(SuitHearts))
	}
	if g.ColumnLen(1) != 0 {
		t.Errorf("column 1 len = %d, want 0", g.ColumnLen(1))
	}
	if !g.Top(0).FaceUp() {
		t.Error("5♣ should be revealed after 2♥ left")
	}
}

// TestDrawThenDiscard covers scenario 2: a single-slot reserve receives the
// stock top, refuses a second draw, and the discard empties it.
func TestDrawThenDiscard(t *testing.T) {
	g := newDealtGame(t)
	stockTop := g.Stock[g.StockLen-1]

	if !g.TryMove(Draw()) {
		t.Fatal("draw failed")
	}
	if g.StockLen != StockSize-1 || g.ReserveLen != 1 {
		t.Fatalf("stock/reserve = %d/%d, want %d/1", g.StockLen, g.ReserveLen, StockSize-1)
	}
	if top := g.ReserveTop(); top.Identity() != stockTop.Identity() || !top.FaceUp() {
		t.Errorf("reserve top = %v (up=%v), want face-up %v", top, top.FaceUp(), stockTop)
	}
	if g.TryMove(Draw()) {
		t.Fatal("second draw must fail while the reserve is occupied")
	}
	if !g.TryMove(DiscardReserve()) {
		t.Fatal("discard failed")
	}
	if g.ReserveLen != 0 || g.DiscardLen != 1 {
		t.Errorf("reserve/discard = %d/%d, want 0/1", g.ReserveLen, g.DiscardLen)
	}
	if g.DiscardTop().Identity() != stockTop.Identity() {
		t.Errorf("discard top = %v, want %v", g.DiscardTop(), stockTop)
	}
	if err := g.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

// TestReshuffle covers scenario 3: an empty stock and a 10-card discard pile
// become a 10-card shuffled stock.
func TestReshuffle(t *testing.T) {
	g := NewEmptyGame(99, DefaultRules())
	discard := MustParseCards("Ah 2h 3h 4h 5h 6h 7h 8h 9h 10h")
	g.PlaceDiscard(discard...)

	if !g.TryMove(Reshuffle()) {
		t.Fatal("reshuffle failed")
	}
	if g.StockLen != 10 || g.DiscardLen != 0 {
		t.Fatalf("stock/discard = %d/%d, want 10/0", g.StockLen, g.DiscardLen)
	}
	var seen [DeckSize]bool
	for _, c := range g.Stock[:g.StockLen] {
		if c.FaceUp() {
			t.Errorf("%v is face-up in the stock", c)
		}
		seen[c.Index()] = true
	}
	for _, c := range discard {
		if !seen[c.Index()] {
			t.Errorf("%v lost in reshuffle", c)
		}
	}
	if g.Reshuffles != 1 {
		t.Errorf("Reshuffles = %d, want 1", g.Reshuffles)
	}
	if g.TryMove(Reshuffle()) {
		t.Error("reshuffle with a non-empty stock must fail")
	}
}

func TestReserveToTableau(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	g.PlaceColumn(0, 0, MustParseCards("9c")...)
	g.PlaceReserve(MustParseCard("8h"))

	if g.TryMove(ReserveToTableau(1)) {
		t.Fatal("8♥ must not go to an empty column")
	}
	if !g.TryMove(ReserveToTableau(0)) {
		t.Fatal("8♥ should go on 9♣")
	}
	if g.ReserveLen != 0 || g.ColumnLen(0) != 2 {
		t.Errorf("reserve/column = %d/%d, want 0/2", g.ReserveLen, g.ColumnLen(0))
	}
	if g.TryMove(ReserveToTableau(0)) {
		t.Error("empty reserve must refuse")
	}
}

func TestReserveToFoundation(t *testing.T) {
	g := NewEmptyGame(1, DefaultRules())
	g.SetFoundation(SuitClubs, 4)
	g.PlaceReserve(MustParseCard("5c"))

	if !g.TryMove(ReserveToFoundation()) {
		t.Fatal("5♣ should follow 4♣")
	}
	if g.FoundationHeight(SuitClubs) != 5 {
		t.Errorf("clubs height = %d, want 5", g.FoundationHeight(SuitClubs))
	}
}

// TestStackingReserveExposesNext verifies that with a stacking reserve only
// the top card is playable and discarding it exposes the one beneath.
func TestStackingReserveExposesNext(t *testing.T) {
	rules := DefaultRules()
	rules.ReserveCapacity = 0
	g := NewEmptyGame(1, rules)
	g.PlaceReserve(MustParseCards("As 7d")...)

	if g.TryMove(ReserveToFoundation()) {
		t.Fatal("7♦ is on top and cannot go to a foundation")
	}
	g.TryMove(DiscardReserve())
	if !g.TryMove(ReserveToFoundation()) {
		t.Fatal("A♠ should be playable after 7♦ is discarded")
	}
}
