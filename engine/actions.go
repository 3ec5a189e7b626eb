package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned when a well-formed move breaks the rules.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidMove is returned for malformed input: unknown kind, column
	// index out of range, an empty run or a column moved onto itself.
	ErrInvalidMove = errors.New("invalid move")
)

// Validate checks that m is well formed. It does not check legality.
func (m Move) Validate() error {
	switch m.Kind {
	case MoveTableauToTableau:
		if m.Src >= NumColumns || m.Dst >= NumColumns {
			return fmt.Errorf("%w: column index out of range (%d -> %d)", ErrInvalidMove, m.Src, m.Dst)
		}
		if m.Count == 0 {
			return fmt.Errorf("%w: run length must be at least 1", ErrInvalidMove)
		}
		if m.Src == m.Dst {
			return fmt.Errorf("%w: source and destination are both column %d", ErrInvalidMove, m.Src+1)
		}
	case MoveTableauToFoundation:
		if m.Src >= NumColumns {
			return fmt.Errorf("%w: column index %d out of range", ErrInvalidMove, m.Src)
		}
	case MoveReserveToTableau:
		if m.Dst >= NumColumns {
			return fmt.Errorf("%w: column index %d out of range", ErrInvalidMove, m.Dst)
		}
	case MoveReserveToFoundation, MoveDraw, MoveReshuffle, MoveDiscardReserve:
	default:
		return fmt.Errorf("%w: unknown move kind %d", ErrInvalidMove, uint8(m.Kind))
	}
	return nil
}

// ApplyMove applies m. It returns an error wrapping ErrInvalidMove for
// malformed input and ErrIllegalMove when the rules forbid the move; the
// state is untouched in both cases.
func (g *GameState) ApplyMove(m Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	switch m.Kind {
	case MoveTableauToTableau:
		return g.moveTableau(int(m.Src), int(m.Dst), int(m.Count))
	case MoveTableauToFoundation:
		return g.moveToFoundation(int(m.Src))
	case MoveReserveToTableau:
		return g.moveReserveToTableau(int(m.Dst))
	case MoveReserveToFoundation:
		return g.moveReserveToFoundation()
	case MoveDraw:
		return g.draw()
	case MoveReshuffle:
		return g.reshuffle()
	default:
		return g.discardReserve()
	}
}

// TryMove applies m and reports whether it succeeded. Illegal moves return
// false with the state unchanged. Malformed moves are a programming error
// and panic.
func (g *GameState) TryMove(m Move) bool {
	err := g.ApplyMove(m)
	if err == nil {
		return true
	}
	if errors.Is(err, ErrInvalidMove) {
		panic(err)
	}
	return false
}

// revealTop turns the top card of column i face-up.
func (g *GameState) revealTop(i int) {
	col := &g.Tableau[i]
	if col.Len > 0 {
		col.Cards[col.Len-1] = col.Cards[col.Len-1].Up()
	}
}

// moveTableau moves the top count cards of src onto dst.
func (g *GameState) moveTableau(src, dst, count int) error {
	if !g.CanMoveTableau(src, dst, count) {
		return fmt.Errorf("%w: cannot move %d card(s) from column %d to column %d",
			ErrIllegalMove, count, src+1, dst+1)
	}
	from := &g.Tableau[src]
	to := &g.Tableau[dst]
	start := int(from.Len) - count
	copy(to.Cards[to.Len:], from.Cards[start:from.Len])
	to.Len += uint8(count)
	for k := start; k < int(from.Len); k++ {
		from.Cards[k] = EmptyCard
	}
	from.Len = uint8(start)
	g.revealTop(src)
	g.Moves++
	return nil
}

// pushFoundation places card on its suit pile.
func (g *GameState) pushFoundation(card Card) {
	g.Foundations[card.Suit()]++
}

// moveToFoundation moves the top of column src to its foundation.
func (g *GameState) moveToFoundation(src int) error {
	if !g.CanMoveToFoundation(src) {
		return fmt.Errorf("%w: top of column %d cannot go to a foundation", ErrIllegalMove, src+1)
	}
	col := &g.Tableau[src]
	col.Len--
	card := col.Cards[col.Len]
	col.Cards[col.Len] = EmptyCard
	g.pushFoundation(card)
	g.revealTop(src)
	g.Moves++
	return nil
}

// popReserve removes and returns the reserve top.
func (g *GameState) popReserve() Card {
	g.ReserveLen--
	card := g.Reserve[g.ReserveLen]
	g.Reserve[g.ReserveLen] = EmptyCard
	return card
}

// moveReserveToTableau places the reserve top on column dst.
func (g *GameState) moveReserveToTableau(dst int) error {
	if !g.CanMoveReserveToTableau(dst) {
		if g.ReserveLen == 0 {
			return fmt.Errorf("%w: reserve is empty", ErrIllegalMove)
		}
		return fmt.Errorf("%w: %s cannot be placed on column %d", ErrIllegalMove, g.ReserveTop(), dst+1)
	}
	card := g.popReserve()
	col := &g.Tableau[dst]
	col.Cards[col.Len] = card.Up()
	col.Len++
	g.Moves++
	return nil
}

// moveReserveToFoundation moves the reserve top to its foundation.
func (g *GameState) moveReserveToFoundation() error {
	if !g.CanMoveReserveToFoundation() {
		if g.ReserveLen == 0 {
			return fmt.Errorf("%w: reserve is empty", ErrIllegalMove)
		}
		return fmt.Errorf("%w: %s cannot go to a foundation", ErrIllegalMove, g.ReserveTop())
	}
	g.pushFoundation(g.popReserve())
	g.Moves++
	return nil
}

// draw moves the stock top into the reserve, face-up.
func (g *GameState) draw() error {
	if g.StockLen == 0 {
		return fmt.Errorf("%w: stock is empty", ErrIllegalMove)
	}
	if !g.CanDraw() {
		return fmt.Errorf("%w: reserve is full (%d card(s))", ErrIllegalMove, g.ReserveLen)
	}
	g.StockLen--
	card := g.Stock[g.StockLen]
	g.Stock[g.StockLen] = EmptyCard
	g.Reserve[g.ReserveLen] = card.Up()
	g.ReserveLen++
	g.Moves++
	return nil
}

// reshuffle appends the discard pile to the (empty) stock, shuffles the stock
// with the game RNG and empties the discard pile.
func (g *GameState) reshuffle() error {
	if !g.CanReshuffle() {
		switch {
		case g.StockLen != 0:
			return fmt.Errorf("%w: stock still holds %d card(s)", ErrIllegalMove, g.StockLen)
		case g.DiscardLen == 0:
			return fmt.Errorf("%w: discard pile is empty", ErrIllegalMove)
		default:
			return fmt.Errorf("%w: redeal limit of %d reached", ErrIllegalMove, g.Rules.MaxReshuffles)
		}
	}
	for i := uint8(0); i < g.DiscardLen; i++ {
		g.Stock[g.StockLen] = g.Discard[i].Down()
		g.StockLen++
		g.Discard[i] = EmptyCard
	}
	g.DiscardLen = 0
	g.shuffle(g.Stock[:g.StockLen])
	g.Reshuffles++
	g.Moves++
	return nil
}

// discardReserve moves the reserve top to the discard pile.
func (g *GameState) discardReserve() error {
	if !g.CanDiscardReserve() {
		return fmt.Errorf("%w: reserve is empty", ErrIllegalMove)
	}
	g.Discard[g.DiscardLen] = g.popReserve()
	g.DiscardLen++
	g.Moves++
	return nil
}
