package agent

import (
	"fmt"

	engine "github.com/jason-s-yu/klondike/engine"
)

// divert breaks a suspected loop by forcing a move of a different family.
// Tableau moves come first; the stock is touched only when none exist. It
// does not consult the loop detector for its own moves. Once the streak
// of diversion turns reaches DiversionLimit it gives up with TagForcedEnd.
func (a *Agent) divert(g *engine.GameState) (Tag, string) {
	if a.mem.diversions >= a.cfg.DiversionLimit {
		return TagForcedEnd, fmt.Sprintf("gave up after %d consecutive diversions", a.mem.diversions)
	}

	var kings, others []engine.Move
	for _, m := range g.LegalMoves() {
		if m.Kind != engine.MoveTableauToTableau {
			continue
		}
		if g.ColumnLen(int(m.Dst)) == 0 {
			if int(m.Count) == g.ColumnLen(int(m.Src)) {
				continue // moving a whole column to another empty one changes nothing
			}
			kings = append(kings, m)
			continue
		}
		others = append(others, m)
	}
	// Rotate by streak length to vary the pick.
	if len(kings) > 0 {
		m := kings[a.mem.diversions%len(kings)]
		desc := describeColumnMove(g, m)
		if g.TryMove(m) {
			return TagDiversionKing, "diversion: " + desc
		}
	}
	if len(others) > 0 {
		m := others[a.mem.diversions%len(others)]
		desc := describeColumnMove(g, m)
		if g.TryMove(m) {
			return TagDiversionMove, "diversion: " + desc
		}
	}

	if g.ReserveLen > 0 {
		card := g.ReserveTop()
		if j, ok := reserveTarget(g); ok && g.TryMove(engine.ReserveToTableau(uint8(j))) {
			return TagDiversionReserve, fmt.Sprintf("diversion: placed %s from the reserve on column %d", card, j+1)
		}
		if g.TryMove(engine.DiscardReserve()) {
			return TagDiversionDiscard, fmt.Sprintf("diversion: discarded %s", card)
		}
	}
	if g.TryMove(engine.Draw()) {
		return TagDiversionDraw, fmt.Sprintf("diversion: drew %s", g.ReserveTop())
	}
	if n := g.DiscardLen; g.TryMove(engine.Reshuffle()) {
		return TagDiversionReshuffle, fmt.Sprintf("diversion: recycled %d card(s)", n)
	}
	return TagForcedEnd, "diversion found nothing to do"
}

// reserveTarget returns the first column the reserve top can go to.
func reserveTarget(g *engine.GameState) (int, bool) {
	for j := 0; j < engine.NumColumns; j++ {
		if g.CanMoveReserveToTableau(j) {
			return j, true
		}
	}
	return 0, false
}
