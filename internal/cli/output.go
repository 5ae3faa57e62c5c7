package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string

	markO   *color.Color
	markX   *color.Color
	winner  *color.Color
	current *color.Color
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, c *Config) *Output {
	o := &Output{
		w:       w,
		format:  c.Output,
		markO:   color.New(color.FgCyan, color.Bold),
		markX:   color.New(color.FgMagenta, color.Bold),
		winner:  color.New(color.FgGreen, color.Bold),
		current: color.New(color.FgYellow),
	}
	if c.NoColor {
		for _, col := range []*color.Color{o.markO, o.markX, o.winner, o.current} {
			col.DisableColor()
		}
	}
	return o
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case MoveResult:
		o.printMoveResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
	ID        string    `json:"id"`
	Board     []string  `json:"board"`
	MoveCount int       `json:"move_count"`
	Winner    *string   `json:"winner"`
	Next      *string   `json:"next"`
	Status    string    `json:"status"`
	State     string    `json:"state"`
	History   []History `json:"history"`
}

// History response type
type History struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Board   []string `json:"board"`
	Current bool     `json:"current"`
}

// MoveResult response type
type MoveResult struct {
	Applied bool `json:"applied"`
	Game    Game `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGame(g Game) {
	_, _ = fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	_, _ = fmt.Fprintln(o.w)
	o.printBoard(g.Board)
	_, _ = fmt.Fprintln(o.w)

	if g.Winner != nil {
		_, _ = fmt.Fprintln(o.w, o.winner.Sprint(g.Status))
	} else {
		_, _ = fmt.Fprintln(o.w, g.Status)
	}

	_, _ = fmt.Fprintln(o.w, "\nHistory:")
	for _, h := range g.History {
		if h.Current {
			_, _ = fmt.Fprintf(o.w, "  %s\n", o.current.Sprintf("%s  <- current", h.Label))
		} else {
			_, _ = fmt.Fprintf(o.w, "  %s\n", h.Label)
		}
	}
}

func (o *Output) printBoard(cells []string) {
	const size = 3
	if len(cells) != size*size {
		return
	}

	divider := "   " + strings.Repeat("---+", size-1) + "---"
	for row := 0; row < size; row++ {
		marks := make([]string, size)
		for col := 0; col < size; col++ {
			index := row*size + col
			marks[col] = o.mark(cells[index], index)
		}
		_, _ = fmt.Fprintf(o.w, "    %s\n", strings.Join(marks, " | "))
		if row < size-1 {
			_, _ = fmt.Fprintln(o.w, divider)
		}
	}
}

// mark renders a cell, showing its index when empty so moves are easy to type
func (o *Output) mark(cell string, index int) string {
	switch cell {
	case "O":
		return o.markO.Sprint("O")
	case "X":
		return o.markX.Sprint("X")
	default:
		return fmt.Sprint(index)
	}
}

func (o *Output) printMoveResult(m MoveResult) {
	if !m.Applied {
		_, _ = fmt.Fprintln(o.w, "Move ignored: cell is taken or the game is over")
		_, _ = fmt.Fprintln(o.w)
	}
	o.printGame(m.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
