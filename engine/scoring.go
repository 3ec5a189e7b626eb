package engine

// FoundationHeight returns the number of cards on the given suit's pile.
func (g *GameState) FoundationHeight(suit uint8) uint8 { return g.Foundations[suit&0x03] }

// FoundationTop returns the top card of the given suit's pile, face-up, or
// EmptyCard if the pile is empty.
func (g *GameState) FoundationTop(suit uint8) Card {
	h := g.FoundationHeight(suit)
	if h == 0 {
		return EmptyCard
	}
	return NewCard(suit, h).Up()
}

// CountFoundationCards returns the number of cards on all foundations (0..52).
func (g *GameState) CountFoundationCards() int {
	n := 0
	for _, h := range g.Foundations {
		n += int(h)
	}
	return n
}

// IsWon reports whether all four foundations are complete.
func (g *GameState) IsWon() bool {
	for _, h := range g.Foundations {
		if h != RankKing {
			return false
		}
	}
	return true
}

// Completion returns the share of the deck on the foundations, in percent.
func (g *GameState) Completion() float64 {
	return float64(g.CountFoundationCards()) * 100 / DeckSize
}
