// Package textgrid reads and writes rune grids in a plain text layout: one
// row per line, one rune per cell.
//
// What:
//
//   - Read parses a text map. Trailing "\r" is stripped and blank lines at the
//     end of input are ignored; every remaining line must have the same rune count.
//   - Write prints a grid back in the same layout, so Read(Write(g)) == g.
//   - FormatReport renders a materialize.Report, marking unresolved cells
//     with '?' and contradicted cells with '!'.
//
// Errors:
//
//   - ErrEmptyInput: no non-blank line was read.
//   - ErrRagged: lines of differing lengths (wraps grid.ErrNonRectangular).
package textgrid
