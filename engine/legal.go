package engine

// CanStack reports whether card may be placed on onto in the tableau.
// onto == EmptyCard stands for an empty column, which only accepts a King.
func CanStack(card, onto Card) bool {
	if onto == EmptyCard {
		return card.Rank() == RankKing
	}
	return onto.FaceUp() && onto.Rank() == card.Rank()+1 && OppositeColor(card, onto)
}

// CanPlayOnFoundation reports whether card extends a foundation pile of the
// given height. An empty pile (height 0) accepts only the Ace.
func CanPlayOnFoundation(card Card, height uint8) bool {
	return card != EmptyCard && card.Rank() == height+1
}

func validColumn(i int) bool { return i >= 0 && i < NumColumns }

// CanMoveTableau reports whether the top count cards of column src can be
// moved onto column dst. All count cards must be face-up and the bottom card
// of the run must stack on dst.
func (g *GameState) CanMoveTableau(src, dst, count int) bool {
	if !validColumn(src) || !validColumn(dst) || src == dst || count <= 0 {
		return false
	}
	col := &g.Tableau[src]
	if count > int(col.Len) || count > g.FaceUpCount(src) {
		return false
	}
	bottom := col.Cards[int(col.Len)-count]
	return CanStack(bottom, g.Top(dst))
}

// CanMoveToFoundation reports whether the top of column src can go to its
// foundation.
func (g *GameState) CanMoveToFoundation(src int) bool {
	if !validColumn(src) {
		return false
	}
	top := g.Top(src)
	return top != EmptyCard && top.FaceUp() && CanPlayOnFoundation(top, g.Foundations[top.Suit()])
}

// CanMoveReserveToTableau reports whether the reserve top can be placed on
// column dst.
func (g *GameState) CanMoveReserveToTableau(dst int) bool {
	if !validColumn(dst) || g.ReserveLen == 0 {
		return false
	}
	return CanStack(g.ReserveTop(), g.Top(dst))
}

// CanMoveReserveToFoundation reports whether the reserve top can go to its
// foundation.
func (g *GameState) CanMoveReserveToFoundation() bool {
	if g.ReserveLen == 0 {
		return false
	}
	top := g.ReserveTop()
	return CanPlayOnFoundation(top, g.Foundations[top.Suit()])
}

// CanDraw reports whether the stock has a card and the reserve has room.
func (g *GameState) CanDraw() bool {
	return g.StockLen > 0 && g.ReserveLen < g.Rules.reserveCap()
}

// CanReshuffle reports whether the discard pile can become the new stock.
func (g *GameState) CanReshuffle() bool {
	if g.StockLen != 0 || g.DiscardLen == 0 {
		return false
	}
	return g.Rules.MaxReshuffles == 0 || g.Reshuffles < g.Rules.MaxReshuffles
}

// CanDiscardReserve reports whether the reserve has a card to discard.
func (g *GameState) CanDiscardReserve() bool { return g.ReserveLen > 0 }

// IsLegal reports whether m would succeed. Malformed moves are never legal.
func (g *GameState) IsLegal(m Move) bool {
	switch m.Kind {
	case MoveTableauToTableau:
		return g.CanMoveTableau(int(m.Src), int(m.Dst), int(m.Count))
	case MoveTableauToFoundation:
		return g.CanMoveToFoundation(int(m.Src))
	case MoveReserveToTableau:
		return g.CanMoveReserveToTableau(int(m.Dst))
	case MoveReserveToFoundation:
		return g.CanMoveReserveToFoundation()
	case MoveDraw:
		return g.CanDraw()
	case MoveReshuffle:
		return g.CanReshuffle()
	case MoveDiscardReserve:
		return g.CanDiscardReserve()
	}
	return false
}

// LegalMoves returns every legal move in a fixed order: tableau to
// foundation, reserve moves, tableau to tableau (short runs first), then
// stock handling. Allocates; intended for policies and tests, not hot loops.
func (g *GameState) LegalMoves() []Move {
	var moves []Move
	for i := 0; i < NumColumns; i++ {
		if g.CanMoveToFoundation(i) {
			moves = append(moves, TableauToFoundation(uint8(i)))
		}
	}
	if g.CanMoveReserveToFoundation() {
		moves = append(moves, ReserveToFoundation())
	}
	for j := 0; j < NumColumns; j++ {
		if g.CanMoveReserveToTableau(j) {
			moves = append(moves, ReserveToTableau(uint8(j)))
		}
	}
	for i := 0; i < NumColumns; i++ {
		up := g.FaceUpCount(i)
		for n := 1; n <= up; n++ {
			for j := 0; j < NumColumns; j++ {
				if g.CanMoveTableau(i, j, n) {
					moves = append(moves, TableauToTableau(uint8(i), uint8(j), uint8(n)))
				}
			}
		}
	}
	if g.CanDraw() {
		moves = append(moves, Draw())
	}
	if g.CanReshuffle() {
		moves = append(moves, Reshuffle())
	}
	if g.CanDiscardReserve() {
		moves = append(moves, DiscardReserve())
	}
	return moves
}
