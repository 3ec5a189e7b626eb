// Package agent implements a greedy, priority-ordered solitaire player with
// loop detection.
//
// Each turn the agent walks a fixed ladder of move families, most productive
// first, and performs the first legal move whose action tag does not trip
// the loop detector. When every ordinary option is exhausted or the play is
// clearly cycling, a diversion policy forces a different kind of move, and
// after too many consecutive diversions the agent gives up.
//
// An Agent holds per-game memory and must not be shared between games that
// run concurrently; call Reset before reusing it for a new deal.
package agent

import (
	"fmt"
	"sort"

	engine "github.com/jason-s-yu/klondike/engine"
)

// Agent chooses and performs one move per turn.
type Agent struct {
	cfg Config
	mem memory
}

// New returns an agent with the given thresholds.
func New(cfg Config) *Agent {
	return &Agent{cfg: cfg}
}

// Config returns the agent's thresholds.
func (a *Agent) Config() Config { return a.cfg }

// Reset clears the per-game memory.
func (a *Agent) Reset() { a.mem.reset() }

// History returns a copy of the recorded action tags, oldest first.
func (a *Agent) History() []Tag {
	out := make([]Tag, len(a.mem.tags))
	copy(out, a.mem.tags)
	return out
}

// DiversionStreak returns the number of consecutive diversion turns.
func (a *Agent) DiversionStreak() int { return a.mem.diversions }

// ChooseMove performs at most one move on g and returns its tag and a
// human-readable description. TagNone and TagForcedEnd mean no move was made
// and the game should end.
func (a *Agent) ChooseMove(g *engine.GameState) (Tag, string) {
	fp := g.Fingerprint()
	tag, desc := a.choose(g, fp)
	a.mem.record(&a.cfg, tag, fp)
	return tag, desc
}

func (a *Agent) choose(g *engine.GameState, fp uint64) (Tag, string) {
	// P1, P2: foundation-bound moves raise the foundation count, which never
	// decreases, so they cannot close a cycle and skip the loop check.
	for _, c := range foundationCandidates(g) {
		card := g.Top(int(c.move.Src))
		if g.TryMove(c.move) {
			return TagFoundation, fmt.Sprintf("moved %s from column %d to the foundation", card, c.move.Src+1)
		}
	}
	if g.CanMoveReserveToFoundation() {
		card := g.ReserveTop()
		if g.TryMove(engine.ReserveToFoundation()) {
			return TagReserveFoundation, fmt.Sprintf("moved %s from the reserve to the foundation", card)
		}
	}

	// P3
	if !a.mem.looping(&a.cfg, TagTableau, fp) {
		for _, c := range a.columnCandidates(g) {
			desc := describeColumnMove(g, c.move)
			if g.TryMove(c.move) {
				return TagTableau, desc
			}
		}
	}

	// P4
	if tag, desc, ok := a.reserveToTableau(g, fp); ok {
		return tag, desc
	}

	// P5–P7
	if g.CanDraw() && !a.mem.looping(&a.cfg, TagDraw, fp) {
		if g.TryMove(engine.Draw()) {
			return TagDraw, fmt.Sprintf("drew %s into the reserve", g.ReserveTop())
		}
	}
	if g.CanReshuffle() && !a.mem.looping(&a.cfg, TagReshuffle, fp) {
		n := g.DiscardLen
		if g.TryMove(engine.Reshuffle()) {
			return TagReshuffle, fmt.Sprintf("recycled %d card(s) into the stock", n)
		}
	}
	if g.CanDiscardReserve() && !a.mem.looping(&a.cfg, TagDiscard, fp) {
		card := g.ReserveTop()
		if g.TryMove(engine.DiscardReserve()) {
			return TagDiscard, fmt.Sprintf("discarded %s", card)
		}
	}

	// P8, P9
	if a.mem.stockHeavy(&a.cfg) || a.mem.recurring(&a.cfg, fp) {
		return a.divert(g)
	}

	// P10
	if g.StockLen > 0 && g.TryMove(engine.Draw()) {
		return TagEmergencyDraw, fmt.Sprintf("emergency draw of %s", g.ReserveTop())
	}

	// P11
	return TagNone, "no action available"
}

// reserveToTableau tries the reserve top on the tableau: a King onto an
// empty column first, otherwise onto any matching sequence.
func (a *Agent) reserveToTableau(g *engine.GameState, fp uint64) (Tag, string, bool) {
	if g.ReserveLen == 0 {
		return "", "", false
	}
	card := g.ReserveTop()
	if card.Rank() == engine.RankKing && !a.mem.looping(&a.cfg, TagReserveKing, fp) {
		for j := 0; j < engine.NumColumns; j++ {
			if g.ColumnLen(j) == 0 && g.TryMove(engine.ReserveToTableau(uint8(j))) {
				return TagReserveKing, fmt.Sprintf("placed %s from the reserve on empty column %d", card, j+1), true
			}
		}
	}
	if a.mem.looping(&a.cfg, TagReserveTableau, fp) {
		return "", "", false
	}
	for j := 0; j < engine.NumColumns; j++ {
		if g.ColumnLen(j) > 0 && g.TryMove(engine.ReserveToTableau(uint8(j))) {
			return TagReserveTableau, fmt.Sprintf("placed %s from the reserve on column %d", card, j+1), true
		}
	}
	return "", "", false
}

// ---------------------------------------------------------------------------
// Candidate scoring
// ---------------------------------------------------------------------------

type candidate struct {
	move  engine.Move
	score int
}

const (
	scoreFoundationBase   = 90
	scoreFoundationAce    = 100
	bonusRevealAce        = 50
	bonusRevealFoundation = 40

	scoreKingToEmpty   = 25
	scoreSequence      = 10
	bonusRevealColumn  = 15
	malusCrowdedColumn = 5
	crowdedColumnLen   = 6
)

// revealsCard reports whether moving the top n cards of column i turns a
// face-down card over.
func revealsCard(g *engine.GameState, i, n int) bool {
	return n == g.FaceUpCount(i) && g.ColumnLen(i) > n
}

// foundationCandidates lists every column top that can go to a foundation,
// best first: Aces, then cards whose removal reveals a hidden card.
func foundationCandidates(g *engine.GameState) []candidate {
	var out []candidate
	for i := 0; i < engine.NumColumns; i++ {
		if !g.CanMoveToFoundation(i) {
			continue
		}
		score := scoreFoundationBase
		reveal := revealsCard(g, i, 1)
		if g.Top(i).Rank() == engine.RankAce {
			score = scoreFoundationAce
			if reveal {
				score += bonusRevealAce
			}
		} else if reveal {
			score += bonusRevealFoundation
		}
		out = append(out, candidate{move: engine.TableauToFoundation(uint8(i)), score: score})
	}
	sort.SliceStable(out, func(x, y int) bool { return out[x].score > out[y].score })
	return out
}

// columnCandidates scores column-to-column moves of up to MaxRunScan cards
// and returns the best ColumnAttempts of them.
func (a *Agent) columnCandidates(g *engine.GameState) []candidate {
	var out []candidate
	for i := 0; i < engine.NumColumns; i++ {
		up := g.FaceUpCount(i)
		maxN := min(up, a.cfg.MaxRunScan)
		for n := 1; n <= maxN; n++ {
			if idleShift(g, i, n) {
				continue
			}
			reveal := revealsCard(g, i, n)
			for j := 0; j < engine.NumColumns; j++ {
				if !g.CanMoveTableau(i, j, n) {
					continue
				}
				var score int
				if g.ColumnLen(j) == 0 {
					if n == g.ColumnLen(i) {
						continue // King already at the bottom of its column
					}
					score = scoreKingToEmpty
				} else {
					score = scoreSequence
					if g.ColumnLen(j) > crowdedColumnLen {
						score -= malusCrowdedColumn
					}
				}
				if reveal {
					score += bonusRevealColumn
				}
				out = append(out, candidate{move: engine.TableauToTableau(uint8(i), uint8(j), uint8(n)), score: score})
			}
		}
	}
	sort.SliceStable(out, func(x, y int) bool { return out[x].score > out[y].score })
	if len(out) > a.cfg.ColumnAttempts {
		out = out[:a.cfg.ColumnAttempts]
	}
	return out
}

// idleShift reports whether moving the top n cards of column i only slides a
// run from one valid parent to an equivalent one: nothing is revealed and the
// card left on top cannot go to a foundation either.
func idleShift(g *engine.GameState, i, n int) bool {
	col := g.Column(i)
	if len(col) <= n {
		return false
	}
	parent := col[len(col)-n-1]
	if !parent.FaceUp() || !engine.CanStack(col[len(col)-n], parent) {
		return false
	}
	return !engine.CanPlayOnFoundation(parent, g.FoundationHeight(parent.Suit()))
}

// describeColumnMove renders a column-to-column move before it is applied.
func describeColumnMove(g *engine.GameState, m engine.Move) string {
	col := g.Column(int(m.Src))
	bottom := col[len(col)-int(m.Count)]
	if m.Count == 1 {
		return fmt.Sprintf("moved %s from column %d to column %d", bottom, m.Src+1, m.Dst+1)
	}
	return fmt.Sprintf("moved %d cards (%s…) from column %d to column %d", m.Count, bottom, m.Src+1, m.Dst+1)
}
