package engine

import (
	"fmt"
	"strings"
)

// ParseCard parses a card written as rank then suit, e.g. "A♠", "10h", "Qd".
// Suits may be given as symbols or as one of the letters s, h, d, c.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return EmptyCard, fmt.Errorf("card %q: too short", s)
	}
	var suit uint8
	var rankPart string
	switch {
	case strings.HasSuffix(s, "♠"):
		suit, rankPart = SuitSpades, strings.TrimSuffix(s, "♠")
	case strings.HasSuffix(s, "♥"):
		suit, rankPart = SuitHearts, strings.TrimSuffix(s, "♥")
	case strings.HasSuffix(s, "♦"):
		suit, rankPart = SuitDiamonds, strings.TrimSuffix(s, "♦")
	case strings.HasSuffix(s, "♣"):
		suit, rankPart = SuitClubs, strings.TrimSuffix(s, "♣")
	default:
		rankPart = s[:len(s)-1]
		switch strings.ToLower(s[len(s)-1:]) {
		case "s":
			suit = SuitSpades
		case "h":
			suit = SuitHearts
		case "d":
			suit = SuitDiamonds
		case "c":
			suit = SuitClubs
		default:
			return EmptyCard, fmt.Errorf("card %q: unknown suit", s)
		}
	}
	for r := RankAce; r <= RankKing; r++ {
		if strings.EqualFold(rankNames[r], rankPart) {
			return NewCard(suit, r), nil
		}
	}
	if strings.EqualFold(rankPart, "T") {
		return NewCard(suit, RankTen), nil
	}
	return EmptyCard, fmt.Errorf("card %q: unknown rank", s)
}

// MustParseCard is ParseCard for literals; it panics on malformed input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseCards parses a whitespace-separated list of cards.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, len(fields))
	for i, f := range fields {
		cards[i] = MustParseCard(f)
	}
	return cards
}

// ---------------------------------------------------------------------------
// Position setup
// ---------------------------------------------------------------------------

// NewEmptyGame returns a table with no cards on it. Use the Place helpers to
// lay out a specific position; the caller is responsible for placing all 52
// cards if CheckInvariants is to pass.
func NewEmptyGame(seed uint64, rules Rules) GameState {
	return NewGame(seed, rules)
}

// PlaceColumn replaces column i with cards, bottom to top. The first down
// cards are face-down and the rest face-up.
func (g *GameState) PlaceColumn(i, down int, cards ...Card) {
	col := &g.Tableau[i]
	*col = Column{}
	for k, c := range cards {
		if k < down {
			c = c.Down()
		} else {
			c = c.Up()
		}
		col.Cards[k] = c
	}
	col.Len = uint8(len(cards))
}

// PlaceStock replaces the stock. The last card is drawn first.
func (g *GameState) PlaceStock(cards ...Card) {
	g.Stock = [StockSize]Card{}
	for k, c := range cards {
		g.Stock[k] = c.Down()
	}
	g.StockLen = uint8(len(cards))
}

// PlaceReserve replaces the reserve. The last card is the playable top.
func (g *GameState) PlaceReserve(cards ...Card) {
	g.Reserve = [StockSize]Card{}
	for k, c := range cards {
		g.Reserve[k] = c.Up()
	}
	g.ReserveLen = uint8(len(cards))
}

// PlaceDiscard replaces the discard pile.
func (g *GameState) PlaceDiscard(cards ...Card) {
	g.Discard = [StockSize]Card{}
	for k, c := range cards {
		g.Discard[k] = c.Up()
	}
	g.DiscardLen = uint8(len(cards))
}

// SetFoundation sets the height of the given suit's pile.
func (g *GameState) SetFoundation(suit, height uint8) {
	g.Foundations[suit&0x03] = height
}
