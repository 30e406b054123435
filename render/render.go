package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/materialize"
	"github.com/katalvlaran/tilewave/textgrid"
)

// ErrUnknownColorMode indicates an unsupported colour mode name.
var ErrUnknownColorMode = errors.New("render: unknown color mode")

// ColorMode selects when output is coloured.
type ColorMode int

const (
	// ColorAuto colours only terminal writers.
	ColorAuto ColorMode = iota
	// ColorAlways forces colour.
	ColorAlways
	// ColorNever disables colour.
	ColorNever
)

// String returns the flag name of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode resolves "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
	}
}

// Palette maps a symbol to a colour: "#rrggbb" or an ANSI index.
type Palette map[rune]string

// Renderer formats grids for one writer.
type Renderer struct {
	color  bool
	styles map[rune]lipgloss.Style
	marks  map[rune]lipgloss.Style
}

// New builds a Renderer for w.
func New(w io.Writer, p Palette, mode ColorMode) *Renderer {
	r := &Renderer{color: IsColorable(w, mode)}
	if !r.color {
		return r
	}
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(termenv.ANSI256)

	r.styles = make(map[rune]lipgloss.Style, len(p))
	for sym, c := range p {
		r.styles[sym] = lr.NewStyle().Foreground(lipgloss.Color(c))
	}
	r.marks = map[rune]lipgloss.Style{
		textgrid.UnresolvedRune:   lr.NewStyle().Foreground(lipgloss.Color("241")),
		textgrid.ContradictedRune: lr.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}

	return r
}

// IsColorable reports whether mode enables colour on w.
func IsColorable(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colored reports whether the renderer emits escape sequences.
func (r *Renderer) Colored() bool { return r.color }

// Grid renders g one row per line.
func (r *Renderer) Grid(g *grid.Grid[rune]) string {
	if !r.color {
		return textgrid.String(g)
	}

	return r.rows(g, r.styles)
}

// Report renders a diagnostic report with marked failures.
func (r *Renderer) Report(rep *materialize.Report[rune]) string {
	if !r.color {
		return textgrid.FormatReport(rep)
	}
	styles := make(map[rune]lipgloss.Style, len(r.styles)+len(r.marks))
	for k, v := range r.styles {
		styles[k] = v
	}
	for k, v := range r.marks {
		styles[k] = v
	}

	return r.rows(textgrid.Mark(rep), styles)
}

// rows styles maximal runs of equal symbols, one row per line.
func (r *Renderer) rows(g *grid.Grid[rune], styles map[rune]lipgloss.Style) string {
	var sb strings.Builder
	for _, row := range g.Rows() {
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end] == row[start] {
				end++
			}
			run := string(row[start:end])
			if st, ok := styles[row[start]]; ok {
				run = st.Render(run)
			}
			sb.WriteString(run)
			start = end
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
