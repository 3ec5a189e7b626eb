// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/klondike/engine"
)

// ViewCard is a card as shown to an observer. Face-down cards hide their
// rank and suit.
type ViewCard struct {
	Known bool   `json:"known"`
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
}

// ViewFoundation is one suit's foundation pile.
type ViewFoundation struct {
	Suit   string `json:"suit"`
	Height int    `json:"height"`
}

// BoardView is an observer's snapshot of the board: hidden cards stay hidden
// and the stock is reported only by size.
type BoardView struct {
	GameID      uuid.UUID        `json:"gameId"`
	Turn        int              `json:"turn"`
	GameOver    bool             `json:"gameOver"`
	Columns     [][]ViewCard     `json:"columns"`
	Foundations []ViewFoundation `json:"foundations"`
	StockSize   int              `json:"stockSize"`
	Reserve     []ViewCard       `json:"reserve"`
	DiscardSize int              `json:"discardSize"`
	DiscardTop  *ViewCard        `json:"discardTop,omitempty"`
	Completion  float64          `json:"completion"`
}

// View builds a BoardView of the current position.
func (g *KlondikeGame) View() BoardView {
	return NewBoardView(g.ID, g.Turn, g.GameOver, &g.Engine)
}

// NewBoardView builds a BoardView of st.
func NewBoardView(id uuid.UUID, turn int, over bool, st *engine.GameState) BoardView {
	v := BoardView{
		GameID:      id,
		Turn:        turn,
		GameOver:    over || st.IsTerminal(),
		Columns:     make([][]ViewCard, engine.NumColumns),
		Foundations: make([]ViewFoundation, engine.NumFoundations),
		StockSize:   int(st.StockLen),
		DiscardSize: int(st.DiscardLen),
		Completion:  st.Completion(),
	}
	for i := 0; i < engine.NumColumns; i++ {
		col := st.Column(i)
		v.Columns[i] = make([]ViewCard, len(col))
		for j, c := range col {
			v.Columns[i][j] = viewCard(c)
		}
	}
	for s := uint8(0); s < engine.NumFoundations; s++ {
		v.Foundations[s] = ViewFoundation{
			Suit:   engine.NewCard(s, engine.RankAce).SuitString(),
			Height: int(st.FoundationHeight(s)),
		}
	}
	v.Reserve = make([]ViewCard, st.ReserveLen)
	for i := 0; i < int(st.ReserveLen); i++ {
		v.Reserve[i] = viewCard(st.Reserve[i])
	}
	if st.DiscardLen > 0 {
		top := viewCard(st.DiscardTop())
		v.DiscardTop = &top
	}
	return v
}

func viewCard(c engine.Card) ViewCard {
	if !c.FaceUp() {
		return ViewCard{}
	}
	return ViewCard{Known: true, Rank: c.RankString(), Suit: c.SuitString()}
}
