package engine

import (
	"math/rand/v2"
	"testing"
)

// newDealtGame returns a dealt game with default rules and a fixed seed.
func newDealtGame(t *testing.T) GameState {
	t.Helper()
	g := NewDealtGame(42, DefaultRules())
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("fresh deal: %v", err)
	}
	return g
}

// remainingCards returns the deck minus the given cards, in deck order.
func remainingCards(used ...Card) []Card {
	var taken [DeckSize]bool
	for _, c := range used {
		taken[c.Identity().Index()] = true
	}
	var out []Card
	for _, c := range NewDeck() {
		if !taken[c.Index()] {
			out = append(out, c)
		}
	}
	return out
}

// blockedGame builds a reachable stalemate: stock and discard empty, a lone
// 5♠ in the reserve with no home, every column showing a single black top
// over face-down cards, and empty foundations.
func blockedGame(t *testing.T) GameState {
	t.Helper()
	g := NewEmptyGame(1, DefaultRules())
	tops := MustParseCards("K♠ Q♠ J♠ 10♠ 9♠ 8♠ 7♠")
	reserve := MustParseCard("5♠")
	rest := remainingCards(append(tops, reserve)...)
	sizes := [NumColumns]int{7, 7, 7, 7, 7, 8, 8}
	next := 0
	for i := 0; i < NumColumns; i++ {
		n := sizes[i] - 1
		cards := append(append([]Card{}, rest[next:next+n]...), tops[i])
		next += n
		g.PlaceColumn(i, n, cards...)
	}
	if next != len(rest) {
		t.Fatalf("stalemate layout placed %d of %d hidden cards", next, len(rest))
	}
	g.PlaceReserve(reserve)
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("stalemate layout: %v", err)
	}
	return g
}

// hiddenTopsGame builds scenario 4 literally: stock, discard and reserve
// empty, every column either empty or topped by a face-down card. Aces to
// fours sit on the foundations; the other 36 cards are hidden in six
// columns and the last column is empty. The engine never leaves a hidden
// card on top, so this position fails CheckInvariants by construction.
func hiddenTopsGame() GameState {
	g := NewEmptyGame(1, DefaultRules())
	var home []Card
	for s := uint8(0); s < NumFoundations; s++ {
		g.SetFoundation(s, 4)
		for r := RankAce; r <= 4; r++ {
			home = append(home, NewCard(s, r))
		}
	}
	rest := remainingCards(home...)
	for i := 0; i < NumColumns-1; i++ {
		col := rest[i*6 : i*6+6]
		g.PlaceColumn(i, len(col), col...)
	}
	return g
}

// wonGame builds scenario 3: every card on the foundations.
func wonGame() GameState {
	g := NewEmptyGame(1, DefaultRules())
	for s := uint8(0); s < NumFoundations; s++ {
		g.SetFoundation(s, RankKing)
	}
	return g
}

// everyMove enumerates all well-formed moves, legal or not.
func everyMove() []Move {
	var moves []Move
	for i := uint8(0); i < NumColumns; i++ {
		moves = append(moves, TableauToFoundation(i), ReserveToTableau(i))
		for j := uint8(0); j < NumColumns; j++ {
			if i == j {
				continue
			}
			for n := uint8(1); n <= MaxColumnLen; n++ {
				moves = append(moves, TableauToTableau(i, j, n))
			}
		}
	}
	return append(moves, ReserveToFoundation(), Draw(), Reshuffle(), DiscardReserve())
}

// randomPlayout applies up to steps random legal moves, calling check after
// each one. It stops early when no move is left.
func randomPlayout(t *testing.T, g *GameState, rng *rand.Rand, steps int, check func(step int, before GameState, m Move)) {
	t.Helper()
	for step := 0; step < steps; step++ {
		moves := g.LegalMoves()
		if len(moves) == 0 {
			return
		}
		m := moves[rng.IntN(len(moves))]
		before := *g
		if err := g.ApplyMove(m); err != nil {
			t.Fatalf("step %d: legal move %v failed: %v", step, m, err)
		}
		if check != nil {
			check(step, before, m)
		}
	}
}
