package console

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cory-johannsen/rps/internal/game/moveset"
	"github.com/cory-johannsen/rps/internal/game/outcome"
	"github.com/cory-johannsen/rps/internal/game/round"
)

// helpCorner labels the table's top-left cell: rows are the computer's move,
// columns the user's.
const helpCorner = `< PC\User >`

// Renderer formats game output for the terminal.
type Renderer struct {
	p Palette
}

// NewRenderer returns a Renderer that colors output when color is true.
func NewRenderer(color bool) *Renderer {
	return &Renderer{p: Palette{Enabled: color}}
}

// Commitment renders the line published before the user moves.
func (r *Renderer) Commitment(hmac string) string {
	return r.p.Colorize(Dim, "HMAC: ") + r.p.Colorize(BrightCyan, hmac)
}

// Menu lists the moves numbered from 1 followed by the exit and help entries.
func (r *Renderer) Menu(moves []string) string {
	var b strings.Builder
	b.WriteString(r.p.Colorize(BrightYellow, "Available moves:"))
	b.WriteString("\n")
	for i, m := range moves {
		fmt.Fprintf(&b, "%s - %s\n", r.p.Colorf(Cyan, "%d", i+1), m)
	}
	fmt.Fprintf(&b, "%s - Exit\n", r.p.Colorize(Cyan, "0"))
	fmt.Fprintf(&b, "%s - Help\n", r.p.Colorize(Cyan, "?"))
	return b.String()
}

// Prompt is shown before each line of input.
func (r *Renderer) Prompt() string {
	return "Enter your move: "
}

// Invalid is shown for input that is not a menu entry.
func (r *Renderer) Invalid(n int) string {
	return r.p.Colorf(Red, "Invalid option. Enter a number from 0 to %d or ?.", n)
}

// Goodbye is shown when the user exits without playing.
func (r *Renderer) Goodbye() string {
	return "Closing the program..."
}

// Help renders the outcome table for ms as a bordered grid. Each cell reads
// from the user's point of view.
//
// Postcondition: Every line of the result has the same printable width.
func (r *Renderer) Help(ms moveset.MoveSet) string {
	moves := ms.Moves()
	table := outcome.Table(ms)

	header := append([]string{helpCorner}, moves...)
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for i, row := range table {
		if w := utf8.RuneCountInString(moves[i]); w > widths[0] {
			widths[0] = w
		}
		for j, c := range row {
			if w := utf8.RuneCountInString(string(c)); w > widths[j+1] {
				widths[j+1] = w
			}
		}
	}

	var b strings.Builder
	sep := separator(widths)
	b.WriteString(r.p.Colorize(BrightYellow, "Results are from the user's point of view."))
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString(r.row(widths, header, func(int, string) string { return Bold }))
	b.WriteString(sep)
	for i, row := range table {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, moves[i])
		for _, c := range row {
			cells = append(cells, string(c))
		}
		b.WriteString(r.row(widths, cells, func(col int, text string) string {
			if col == 0 {
				return Bold
			}
			return cellColor(outcome.Cell(text))
		}))
		b.WriteString(sep)
	}
	return b.String()
}

// Outcome renders the result and the reveal needed to verify the commitment.
func (r *Renderer) Outcome(o round.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your move: %s\n", r.p.Colorize(Bold, o.UserMove))
	fmt.Fprintf(&b, "Computer move: %s\n", r.p.Colorize(Bold, o.ComputerMove))
	switch o.Result {
	case outcome.SecondWins:
		b.WriteString(r.p.Colorize(Green, "You win!"))
	case outcome.FirstWins:
		b.WriteString(r.p.Colorize(Red, "You lose!"))
	default:
		b.WriteString(r.p.Colorize(Yellow, "Draw!"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s\n", r.p.Colorize(Dim, "HMAC key: "), r.p.Colorize(BrightCyan, o.Reveal.KeyHex()))
	return b.String()
}

func (r *Renderer) row(widths []int, cells []string, color func(col int, text string) string) string {
	var b strings.Builder
	b.WriteString("|")
	for i, c := range cells {
		pad := widths[i] - utf8.RuneCountInString(c)
		b.WriteString(" ")
		b.WriteString(r.p.Colorize(color(i, c), c))
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(" |")
	}
	b.WriteString("\n")
	return b.String()
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	b.WriteString("\n")
	return b.String()
}

func cellColor(c outcome.Cell) string {
	switch c {
	case outcome.CellWin:
		return Green
	case outcome.CellLose:
		return Red
	default:
		return Yellow
	}
}
