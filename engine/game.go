// Package engine implements Klondike-style solitaire rules.
//
// GameState is a flat value type: every pile is a fixed array, so copying a
// game, snapshotting it for undo and comparing two positions are plain Go
// assignment and ==. All legality checks are pure predicates over the state
// and are shared by the move mutators and the terminal-state detector.
package engine

const (
	DeckSize       = 52
	NumColumns     = 7
	NumFoundations = 4
	// StockSize is the number of cards left after the deal. Tableau cards
	// never return to the stock, so stock, discard and reserve are bounded by it.
	StockSize = DeckSize - NumColumns*(NumColumns+1)/2
	// MaxColumnLen covers six face-down cards under a full King-to-Ace run.
	MaxColumnLen = NumColumns - 1 + 13
)

// Column is one tableau pile, bottom to top.
type Column struct {
	Cards [MaxColumnLen]Card
	Len   uint8
}

// GameState holds the complete, self-contained state of one game.
type GameState struct {
	Tableau     [NumColumns]Column
	Foundations [NumFoundations]uint8 // height per suit; pile holds ranks 1..height
	Stock       [StockSize]Card       // last element is the next card drawn
	StockLen    uint8
	Reserve     [StockSize]Card
	ReserveLen  uint8
	Discard     [StockSize]Card
	DiscardLen  uint8
	Moves       uint32 // successful mutations
	Reshuffles  uint16
	RNG         uint64
	Rules       Rules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// shuffle runs Fisher-Yates over cards with the game RNG.
func (g *GameState) shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame initializes an empty table with the given seed and rules.
// Cards are placed by Deal.
func NewGame(seed uint64, rules Rules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	return g
}

// NewDealtGame returns a game that has already been shuffled and dealt.
func NewDealtGame(seed uint64, rules Rules) GameState {
	g := NewGame(seed, rules)
	g.Deal()
	return g
}

// NewDeck returns the 52 cards in suit-major, rank-ascending order, face-down.
func NewDeck() [DeckSize]Card {
	var deck [DeckSize]Card
	idx := 0
	for suit := uint8(0); suit < NumFoundations; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			deck[idx] = NewCard(suit, rank)
			idx++
		}
	}
	return deck
}

// Deal shuffles a fresh deck and lays out the table: column i receives i+1
// cards with only the top one face-up, and the remaining 24 cards form the
// stock. Any previous layout is discarded.
func (g *GameState) Deal() {
	deck := NewDeck()
	g.shuffle(deck[:])
	*g = GameState{RNG: g.RNG, Rules: g.Rules}

	n := DeckSize
	for i := 0; i < NumColumns; i++ {
		col := &g.Tableau[i]
		for j := 0; j <= i; j++ {
			n--
			card := deck[n]
			if j == i {
				card = card.Up()
			}
			col.Cards[col.Len] = card
			col.Len++
		}
	}

	copy(g.Stock[:], deck[:n])
	g.StockLen = uint8(n)
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Column returns the cards of column i, bottom to top. The slice aliases the
// game state and must not be modified.
func (g *GameState) Column(i int) []Card {
	col := &g.Tableau[i]
	return col.Cards[:col.Len]
}

// ColumnLen returns the number of cards in column i.
func (g *GameState) ColumnLen(i int) int { return int(g.Tableau[i].Len) }

// Top returns the top card of column i, or EmptyCard if the column is empty.
func (g *GameState) Top(i int) Card {
	col := &g.Tableau[i]
	if col.Len == 0 {
		return EmptyCard
	}
	return col.Cards[col.Len-1]
}

// FaceUpCount returns the length of the face-up run on top of column i.
func (g *GameState) FaceUpCount(i int) int {
	col := &g.Tableau[i]
	n := 0
	for k := int(col.Len) - 1; k >= 0 && col.Cards[k].FaceUp(); k-- {
		n++
	}
	return n
}

// FaceDownCount returns the number of face-down cards in column i.
func (g *GameState) FaceDownCount(i int) int {
	return g.ColumnLen(i) - g.FaceUpCount(i)
}

// EmptyColumns returns how many tableau columns hold no cards.
func (g *GameState) EmptyColumns() int {
	n := 0
	for i := range g.Tableau {
		if g.Tableau[i].Len == 0 {
			n++
		}
	}
	return n
}

// ReserveTop returns the playable reserve card, or EmptyCard.
func (g *GameState) ReserveTop() Card {
	if g.ReserveLen == 0 {
		return EmptyCard
	}
	return g.Reserve[g.ReserveLen-1]
}

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.Discard[g.DiscardLen-1]
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
