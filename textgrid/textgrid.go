package textgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/materialize"
)

// Sentinel errors for text grids.
var (
	// ErrEmptyInput indicates input without any row.
	ErrEmptyInput = errors.New("textgrid: input has no rows")

	// ErrRagged indicates rows of differing lengths.
	ErrRagged = fmt.Errorf("textgrid: %w", grid.ErrNonRectangular)
)

// Symbols used by FormatReport for cells without a value.
const (
	UnresolvedRune   = '?'
	ContradictedRune = '!'
)

// Read parses r into a rune grid.
func Read(r io.Reader) (*grid.Grid[rune], error) {
	var rows [][]rune
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		rows = append(rows, []rune(strings.TrimSuffix(sc.Text(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textgrid: read: %w", err)
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d runes, want %d", ErrRagged, y+1, len(row), len(rows[0]))
		}
	}

	return grid.FromRows(rows)
}

// ReadFile reads the text map stored at path.
func ReadFile(path string) (*grid.Grid[rune], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textgrid: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Write prints g to w, one row per line.
func Write(w io.Writer, g *grid.Grid[rune]) error {
	bw := bufio.NewWriter(w)
	var buf [utf8.UTFMax]byte
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v, _ := g.Get(grid.Coord{X: x, Y: y})
			n := utf8.EncodeRune(buf[:], v)
			if _, err := bw.Write(buf[:n]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String renders g in the Write layout.
func String(g *grid.Grid[rune]) string {
	var sb strings.Builder
	_ = Write(&sb, g)

	return sb.String()
}

// FormatReport renders a report; cells without a value are marked.
func FormatReport(r *materialize.Report[rune]) string { return String(Mark(r)) }

// Mark converts a report into a rune grid, replacing cells without a value
// by UnresolvedRune or ContradictedRune.
func Mark(r *materialize.Report[rune]) *grid.Grid[rune] {
	return grid.Map(r.Cells, func(_ grid.Coord, c materialize.Cell[rune]) rune {
		switch c.State {
		case materialize.Resolved:
			return c.Value
		case materialize.Contradicted:
			return ContradictedRune
		default:
			return UnresolvedRune
		}
	})
}
