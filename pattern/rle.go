// Package pattern reads run-length encoded Life patterns and stamps them onto a grid.
//
// The reader is lenient. Unknown characters in the body are skipped, a run
// count in front of '$' is ignored, and cells that land outside the grid are
// dropped.
package pattern

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// ErrPatternFile is returned when a pattern source cannot be opened or read
var ErrPatternFile = errors.New("pattern file unreadable")

// maxRunLength caps run counts and column offsets; anything longer is clipped by every grid anyway
const maxRunLength = 1 << 30

// Run is a horizontal stretch of Len identical cells starting at (Row, Col)
// relative to the pattern origin
type Run struct {
	Row   int
	Col   int
	Len   int
	Alive bool
}

// Pattern is a parsed RLE description
type Pattern struct {
	// DeclaredWidth and DeclaredHeight come from the header and are informational only
	DeclaredWidth  int
	DeclaredHeight int
	Runs           []Run
}

// Load parses the RLE file at path
func Load(path string) (*Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrPatternFile, "[Load] failed to open file: %+v: %v", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to parse file: %+v", path)
	}
	return p, nil
}

// LoadInto parses the RLE file at path and stamps it onto g at anchor (ax, ay)
func LoadInto(g *model.Grid, path string, ax, ay int) (*Pattern, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	p.Apply(g, ax, ay)
	return p, nil
}

// Parse reads an RLE description from r. Lines of any length are accepted.
func Parse(r io.Reader) (*Pattern, error) {
	var (
		p      = &Pattern{}
		body   strings.Builder
		header strings.Builder
		br     = bufio.NewReader(r)
		kind   byte // classifying byte of the line being read, 0 at a line start
	)

	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrPatternFile, "[Parse] failed to read pattern: %v", err)
		}

		if kind == 0 && len(chunk) > 0 {
			kind = chunk[0]
		}
		switch {
		case kind == 'x':
			header.Write(chunk)
		case isBodyStart(kind):
			body.Write(chunk)
		}

		if isPrefix {
			continue
		}
		if kind == 'x' {
			p.DeclaredWidth, p.DeclaredHeight = parseHeader(header.String())
			header.Reset()
		}
		kind = 0
	}

	p.Runs = decode(body.String())
	return p, nil
}

// Apply stamps the pattern onto g and returns how many cells were written.
// The row cursor starts at ax and moves on '$'; the column cursor starts at ay
// and moves along runs. A cell lands on grid x = column, y = row, so runs
// read left to right on screen. Each run is clipped to the grid before writing.
func (p *Pattern) Apply(g *model.Grid, ax, ay int) int {
	var (
		written = 0
		width   = g.GetWidth()
		height  = g.GetHeight()
	)
	for _, run := range p.Runs {
		y := ax + run.Row
		if y < 0 || y >= height {
			continue
		}
		from := max(ay+run.Col, 0)
		to := min(ay+run.Col+run.Len, width)
		for x := from; x < to; x++ {
			if err := g.Set(x, y, run.Alive); err != nil {
				continue
			}
			written++
		}
	}
	return written
}

// LiveCells returns the number of alive cells the pattern describes
func (p *Pattern) LiveCells() int {
	n := 0
	for _, run := range p.Runs {
		if run.Alive {
			n += run.Len
		}
	}
	return n
}

func isBodyStart(c byte) bool {
	return isDigit(c) || c == 'b' || c == 'o' || c == '$' || c == '!'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseHeader reads "x = W, y = H" and ignores any further fields
func parseHeader(line string) (w, h int) {
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "x":
			w = n
		case "y":
			h = n
		}
	}
	return w, h
}

func decode(stream string) []Run {
	var (
		runs     []Run
		row, col int
	)
	for i := 0; i < len(stream); i++ {
		count := 0
		for i < len(stream) && isDigit(stream[i]) {
			count = min(count*10+int(stream[i]-'0'), maxRunLength)
			i++
		}
		if i >= len(stream) {
			break
		}
		if count == 0 {
			count = 1
		}

		switch stream[i] {
		case 'b', 'o':
			count = min(count, maxRunLength-col)
			if count > 0 {
				runs = append(runs, Run{Row: row, Col: col, Len: count, Alive: stream[i] == 'o'})
				col += count
			}
		case '$':
			row++
			col = 0
		case '!':
			return runs
		}
	}
	return runs
}
