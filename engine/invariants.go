package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every CheckInvariants failure.
var ErrInvariant = errors.New("invariant violated")

// CheckInvariants verifies the structural rules every reachable position
// obeys:
//   - the 52 card identities are partitioned across all piles, each exactly once;
//   - no foundation is taller than a King;
//   - in every column, face-down cards only sit below face-up ones and the top
//     card is face-up;
//   - reserve and discard cards are face-up, stock cards face-down;
//   - array slots beyond each pile's length are empty.
func (g *GameState) CheckInvariants() error {
	var seen [DeckSize]bool
	mark := func(c Card, where string) error {
		if !c.Valid() {
			return fmt.Errorf("%w: bad card %#x in %s", ErrInvariant, uint8(c), where)
		}
		idx := c.Index()
		if seen[idx] {
			return fmt.Errorf("%w: duplicate %s in %s", ErrInvariant, c, where)
		}
		seen[idx] = true
		return nil
	}

	for s := uint8(0); s < NumFoundations; s++ {
		h := g.Foundations[s]
		if h > RankKing {
			return fmt.Errorf("%w: foundation %d has height %d", ErrInvariant, s, h)
		}
		for r := RankAce; r <= h; r++ {
			if err := mark(NewCard(s, r), "foundation"); err != nil {
				return err
			}
		}
	}

	for i := 0; i < NumColumns; i++ {
		col := &g.Tableau[i]
		if int(col.Len) > MaxColumnLen {
			return fmt.Errorf("%w: column %d length %d", ErrInvariant, i+1, col.Len)
		}
		where := fmt.Sprintf("column %d", i+1)
		seenUp := false
		for k := 0; k < int(col.Len); k++ {
			c := col.Cards[k]
			if err := mark(c.Identity(), where); err != nil {
				return err
			}
			if c.FaceUp() {
				seenUp = true
			} else if seenUp {
				return fmt.Errorf("%w: face-down %s above a face-up card in %s", ErrInvariant, c, where)
			}
		}
		if col.Len > 0 && !col.Cards[col.Len-1].FaceUp() {
			return fmt.Errorf("%w: top of %s is face-down", ErrInvariant, where)
		}
		for k := int(col.Len); k < MaxColumnLen; k++ {
			if col.Cards[k] != EmptyCard {
				return fmt.Errorf("%w: stale slot %d in %s", ErrInvariant, k, where)
			}
		}
	}

	piles := []struct {
		name   string
		cards  *[StockSize]Card
		n      uint8
		faceUp bool
	}{
		{"stock", &g.Stock, g.StockLen, false},
		{"reserve", &g.Reserve, g.ReserveLen, true},
		{"discard", &g.Discard, g.DiscardLen, true},
	}
	for _, p := range piles {
		if int(p.n) > StockSize {
			return fmt.Errorf("%w: %s length %d", ErrInvariant, p.name, p.n)
		}
		for k := 0; k < int(p.n); k++ {
			c := p.cards[k]
			if err := mark(c.Identity(), p.name); err != nil {
				return err
			}
			if c.FaceUp() != p.faceUp {
				return fmt.Errorf("%w: %s in %s has wrong orientation", ErrInvariant, c, p.name)
			}
		}
		for k := int(p.n); k < StockSize; k++ {
			if p.cards[k] != EmptyCard {
				return fmt.Errorf("%w: stale slot %d in %s", ErrInvariant, k, p.name)
			}
		}
	}
	if limit := g.Rules.reserveCap(); g.ReserveLen > limit {
		return fmt.Errorf("%w: reserve holds %d card(s), capacity %d", ErrInvariant, g.ReserveLen, limit)
	}

	for idx, ok := range seen {
		if !ok {
			c := NewCard(uint8(idx/13), uint8(idx%13)+1)
			return fmt.Errorf("%w: %s is missing", ErrInvariant, c)
		}
	}
	return nil
}

// CardCount returns the number of cards across every pile.
func (g *GameState) CardCount() int {
	n := g.CountFoundationCards() + int(g.StockLen) + int(g.ReserveLen) + int(g.DiscardLen)
	for i := range g.Tableau {
		n += int(g.Tableau[i].Len)
	}
	return n
}
