// Package render draws rune grids and generation reports for a terminal.
//
// A Renderer maps symbols to lipgloss styles through a Palette. Colour is
// decided once at construction: ColorAuto enables it only when the writer is
// a terminal (go-isatty), ColorAlways forces 256-colour output and ColorNever
// prints the plain text layout of package textgrid.
//
// Unresolved ('?') and contradicted ('!') markers of a report get fixed
// styles so failed regions stand out regardless of the palette.
package render
