package engine

// ---------------------------------------------------------------------------
// Terminal-state detector
// ---------------------------------------------------------------------------

// HasLegalMove reports whether at least one move can change the position.
// Checks run cheapest first and stop at the first hit:
//
//  1. a non-empty stock can always be drawn from or, with a full reserve,
//     the reserve can be discarded to make room;
//  2. a non-empty discard pile can be recycled (the stock is empty here);
//  3. the reserve top can go to a foundation or a column, or a stacked
//     reserve can be discarded to expose a different card;
//  4. any run of 1..faceUp cards can move between two columns;
//  5. any column top can go to a foundation.
//
// Discarding a lone reserve card while stock and discard are empty is not
// counted: recycling and redrawing it only returns to the same position.
// Every check evaluates the same predicates the mutators use, so the state
// is never touched.
func (g *GameState) HasLegalMove() bool {
	if g.StockLen > 0 {
		return true
	}
	if g.CanReshuffle() {
		return true
	}
	if g.ReserveLen > 0 {
		if g.CanMoveReserveToFoundation() {
			return true
		}
		for j := 0; j < NumColumns; j++ {
			if g.CanMoveReserveToTableau(j) {
				return true
			}
		}
		if g.ReserveLen > 1 {
			return true
		}
	}
	for i := 0; i < NumColumns; i++ {
		up := g.FaceUpCount(i)
		if up == 0 {
			continue
		}
		for j := 0; j < NumColumns; j++ {
			if i == j {
				continue
			}
			for n := 1; n <= up; n++ {
				if g.CanMoveTableau(i, j, n) {
					return true
				}
			}
		}
	}
	for i := 0; i < NumColumns; i++ {
		if g.CanMoveToFoundation(i) {
			return true
		}
	}
	return false
}

// HasLegalMove is the free-function form of (*GameState).HasLegalMove.
func HasLegalMove(g *GameState) bool { return g.HasLegalMove() }

// Status classifies the position as won, stuck or still in progress.
func (g *GameState) Status() GameStatus {
	if g.IsWon() {
		return StatusWon
	}
	if !g.HasLegalMove() {
		return StatusStuck
	}
	return StatusInProgress
}

// IsTerminal returns true when the game is won or no move remains.
func (g *GameState) IsTerminal() bool { return g.Status() != StatusInProgress }

// ---------------------------------------------------------------------------
// Fingerprint
// ---------------------------------------------------------------------------

// Fingerprint returns a compact 64-bit hash of the position as seen by the
// loop detector: per column its size and top card (or empty), the four
// foundation heights, and the stock, reserve and discard sizes. Cards below
// the top are not hashed, so positions that differ only there collide.
func (g *GameState) Fingerprint() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)

	for i := 0; i < NumColumns; i++ {
		col := &g.Tableau[i]
		h ^= uint64(col.Len)
		h *= prime
		top := EmptyCard
		if col.Len > 0 {
			top = col.Cards[col.Len-1].Identity()
		}
		h ^= uint64(top) << 8
		h *= prime
	}
	for s := 0; s < NumFoundations; s++ {
		h ^= uint64(g.Foundations[s]) << 16
		h *= prime
	}
	h ^= uint64(g.StockLen) << 24
	h *= prime
	h ^= uint64(g.ReserveLen) << 32
	h *= prime
	h ^= uint64(g.DiscardLen) << 40
	h *= prime
	return h
}
