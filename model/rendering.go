package model

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TerminalRenderer prints grids as plain text, one row per line
type TerminalRenderer struct {
	Out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{Out: out}
}

// Display renders the grid, x across and y down
func (r *TerminalRenderer) Display(g *Grid) error {
	var sb strings.Builder
	sb.Grow(g.height * (g.width*len(gridPosBlock) + 1))
	for y := range g.height {
		for x := range g.width {
			if g.Alive(x, y) {
				sb.WriteString(gridPosBlock)
			} else {
				sb.WriteString(gridPosEmpty)
			}
		}
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(r.Out, sb.String()); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}
