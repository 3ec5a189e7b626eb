// Package render draws a game position as text for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	engine "github.com/jason-s-yu/klondike/engine"
)

// hiddenCard stands in for a face-down card.
const hiddenCard = "[#]"

const boxWidth = 44

// Palette holds the colours used for the board.
type Palette struct {
	Red, Black, Hidden, Header, Empty *color.Color
}

// DefaultPalette is used by NewRenderer.
var DefaultPalette = Palette{
	Red:    color.New(color.FgRed, color.Bold),
	Black:  color.New(color.FgHiWhite, color.Bold),
	Hidden: color.New(color.FgBlue),
	Header: color.New(color.FgCyan, color.Bold),
	Empty:  color.New(color.FgHiBlack),
}

// Renderer writes boards to an io.Writer.
type Renderer struct {
	W       io.Writer
	Colored bool
	Palette Palette
}

// NewRenderer returns a renderer for w.
func NewRenderer(w io.Writer, colored bool) *Renderer {
	return &Renderer{W: w, Colored: colored, Palette: DefaultPalette}
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.Colored || c == nil {
		return s
	}
	return c.Sprint(s)
}

// cell right-aligns s in a cell of the given width. Width is measured before colouring.
func (r *Renderer) cell(c *color.Color, s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		s = strings.Repeat(" ", n) + s
	}
	return r.paint(c, s)
}

// Card renders one card: hidden when face-down, suit-coloured otherwise.
func (r *Renderer) Card(c engine.Card) string {
	return r.cardCell(c, 0)
}

func (r *Renderer) cardCell(c engine.Card, width int) string {
	switch {
	case c == engine.EmptyCard:
		return r.cell(r.Palette.Empty, "--", width)
	case !c.FaceUp():
		return r.cell(r.Palette.Hidden, hiddenCard, width)
	case c.IsRed():
		return r.cell(r.Palette.Red, c.String(), width)
	default:
		return r.cell(r.Palette.Black, c.String(), width)
	}
}

// Board writes the foundations, the piles and the tableau, one row per
// depth with the columns side by side.
func (r *Renderer) Board(g *engine.GameState) {
	w := r.W
	fmt.Fprintln(w, r.paint(r.Palette.Header, "Foundations"))
	var parts []string
	for s := uint8(0); s < engine.NumFoundations; s++ {
		suit := engine.NewCard(s, engine.RankAce).SuitString()
		parts = append(parts, fmt.Sprintf("%s:%s", suit, r.cardCell(g.FoundationTop(s), 3)))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, "  "))

	reserve := "--"
	if g.ReserveLen > 0 {
		reserve = r.Card(g.ReserveTop())
		if g.ReserveLen > 1 {
			reserve += fmt.Sprintf(" (+%d)", g.ReserveLen-1)
		}
	}
	discard := "--"
	if g.DiscardLen > 0 {
		discard = r.Card(g.DiscardTop())
	}
	fmt.Fprintf(w, "%s  stock %d  reserve %s  discard %s (%d)\n",
		r.paint(r.Palette.Header, "Piles"), g.StockLen, reserve, discard, g.DiscardLen)

	fmt.Fprintln(w, r.paint(r.Palette.Header, "Tableau"))
	depth := 0
	header := make([]string, engine.NumColumns)
	for i := 0; i < engine.NumColumns; i++ {
		depth = max(depth, g.ColumnLen(i))
		header[i] = fmt.Sprintf("%4s", fmt.Sprintf("C%d", i+1))
	}
	fmt.Fprintln(w, strings.Join(header, " "))
	if depth == 0 {
		fmt.Fprintln(w, "  (empty)")
	}
	for row := 0; row < depth; row++ {
		cells := make([]string, engine.NumColumns)
		for i := 0; i < engine.NumColumns; i++ {
			col := g.Column(i)
			switch {
			case row < len(col):
				cells[i] = r.cardCell(col[row], 4)
			case row == 0:
				cells[i] = r.cell(r.Palette.Empty, "--", 4)
			default:
				cells[i] = "    "
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

// GameOver writes a boxed summary of a finished position.
func (r *Renderer) GameOver(g *engine.GameState, outcome, cause string, turns int) {
	w := r.W
	line := "+" + strings.Repeat("-", boxWidth) + "+"
	row := func(format string, args ...any) {
		s := fmt.Sprintf(format, args...)
		if n := boxWidth - 1 - len([]rune(s)); n > 0 {
			s += strings.Repeat(" ", n)
		}
		fmt.Fprintf(w, "| %s|\n", s)
	}
	title := "GAME OVER"
	if g.IsWon() {
		title = "VICTORY"
	}
	fmt.Fprintln(w, line)
	row("%s", title)
	fmt.Fprintln(w, line)
	row("Outcome: %s (%s)", outcome, cause)
	row("Turns: %d, moves: %d", turns, g.Moves)
	row("Foundation cards: %d/%d", g.CountFoundationCards(), engine.DeckSize)
	row("Completion: %.1f%%", g.Completion())
	row("Stock %d, reserve %d, discard %d", g.StockLen, g.ReserveLen, g.DiscardLen)
	row("Reshuffles: %d", g.Reshuffles)
	fmt.Fprintln(w, line)
}
