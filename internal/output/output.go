package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// palette holds the highlights used in text output.
type palette struct {
	heading   *color.Color
	outcome   *color.Color
	rejection *color.Color
}

// newPalette returns the text highlights, switched on or off regardless of
// whether the output is a terminal.
func newPalette(enabled bool) palette {
	p := palette{
		heading:   color.New(color.Bold),
		outcome:   color.New(color.FgGreen, color.Bold),
		rejection: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.outcome, p.rejection} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeText writes one report: heading, move list, rejections, outcome and
// optionally the final position.
func writeText(w io.Writer, r *replay.Report, cfg *config.OutputConfig, p palette) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s]\n", p.heading.Sprint(r.Name), r.GameID)

	if cfg.ShowHistory && len(r.Plies) > 0 {
		ow := NewOutputWriter(&b, 80)
		writeMoveList(ow, r.Plies)
		ow.NewLine()
	}

	for _, rej := range r.Rejections {
		line := fmt.Sprintf("rejected %d:%d %s: %v", rej.Line, rej.Column, rej.Instruction, rej.Reason)
		fmt.Fprintln(&b, p.rejection.Sprint(line))
	}
	if r.Stopped {
		fmt.Fprintln(&b, p.rejection.Sprint("stopped at first rejection"))
	}

	outcome := r.Outcome.String()
	if winner, ok := r.Outcome.Winner(); ok {
		outcome += fmt.Sprintf(", %v wins", winner)
	}
	if r.Outcome.IsTerminal() {
		outcome = p.outcome.Sprint(outcome)
	}
	fmt.Fprintf(&b, "Outcome: %s\n", outcome)
	if !r.Outcome.IsTerminal() {
		fmt.Fprintf(&b, "To move: %v\n", r.Turn)
	}

	if cfg.ShowBoard {
		b.WriteString(Diagram(r.Final))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeMoveList writes the plies with move numbers, marking check with "+"
// and mate with "#". A list that starts with Black opens with "1...".
func writeMoveList(ow *OutputWriter, plies []engine.Ply) {
	moveNum := 1
	for i, p := range plies {
		switch {
		case p.Colour == chess.White:
			ow.Write(fmt.Sprintf("%d.", moveNum))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(p.String() + checkSuffix(p.Events))
		if p.Colour == chess.Black {
			moveNum++
		}
	}
}

func checkSuffix(events []engine.Event) string {
	suffix := ""
	for _, e := range events {
		switch e {
		case engine.EventCheckmate:
			return "#"
		case engine.EventChecked:
			suffix = "+"
		}
	}
	return suffix
}
