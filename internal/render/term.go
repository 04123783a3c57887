// Package render draws aggregate snapshots. The pipeline only knows
// the Renderer interface; the terminal bar chart below is the default
// collaborator.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"buzzline/sink"
)

// Renderer draws one titled snapshot.
type Renderer interface {
	Render(title string, snap []sink.KV)
}

const defaultWidth = 40

// Term renders a horizontal bar chart as plain text.
type Term struct {
	w     io.Writer
	width int // widest bar in characters
}

func NewTerm(w io.Writer) *Term {
	return &Term{w: w, width: defaultWidth}
}

func NewTermWidth(w io.Writer, width int) *Term {
	if width <= 0 {
		width = defaultWidth
	}
	return &Term{w: w, width: width}
}

func (t *Term) Render(title string, snap []sink.KV) {
	fmt.Fprintf(t.w, "\n%s\n", title)
	fmt.Fprintln(t.w, strings.Repeat("-", len(title)))
	if len(snap) == 0 {
		fmt.Fprintln(t.w, "(no data)")
		return
	}

	keyWidth, maxAbs := 0, 0.0
	for _, kv := range snap {
		if len(kv.Key) > keyWidth {
			keyWidth = len(kv.Key)
		}
		if a := math.Abs(kv.Value); a > maxAbs {
			maxAbs = a
		}
	}

	for _, kv := range snap {
		n := 0
		if maxAbs > 0 {
			n = int(math.Round(math.Abs(kv.Value) / maxAbs * float64(t.width)))
		}
		fmt.Fprintf(t.w, "%-*s | %s %.2f\n", keyWidth, kv.Key, strings.Repeat("#", n), kv.Value)
	}
}
