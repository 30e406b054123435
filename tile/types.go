package tile

import (
	"errors"
	"fmt"
)

// Sentinel errors for tile extraction.
var (
	// ErrEmptyExample indicates an example grid without cells.
	ErrEmptyExample = errors.New("tile: example grid is empty")

	// ErrOptionViolation indicates that an Option received an invalid value.
	ErrOptionViolation = errors.New("tile: invalid option value")

	// ErrUnknownEdgeMode indicates an unsupported edge mode name.
	ErrUnknownEdgeMode = errors.New("tile: unknown edge mode")
)

// ID is the dense canonical identifier of a distinct Tile.
type ID int

// Sample is one nullable entry of a Tile.
type Sample[T any] struct {
	Value   T
	Present bool
}

// Tile is the ordered sequence of samples taken at cell+offset for every
// offset of the Neighbourhood.
type Tile[T comparable] []Sample[T]

// Equal reports whether t and u hold the same samples in the same order.
// Absent samples compare equal regardless of their Value field.
func (t Tile[T]) Equal(u Tile[T]) bool {
	if len(t) != len(u) {
		return false
	}
	for k := range t {
		if t[k].Present != u[k].Present {
			return false
		}
		if t[k].Present && t[k].Value != u[k].Value {
			return false
		}
	}

	return true
}

// At returns the k-th sample; ok is false when it is absent or k is out of range.
func (t Tile[T]) At(k int) (v T, ok bool) {
	if k < 0 || k >= len(t) || !t[k].Present {
		return v, false
	}

	return t[k].Value, true
}

// EdgeMode selects how samples beyond the example borders are treated.
type EdgeMode int

const (
	// EdgeClamp leaves out-of-bounds samples absent.
	EdgeClamp EdgeMode = iota

	// EdgeWrap samples the example toroidally, so every sample is present.
	EdgeWrap
)

// String returns the configuration name of the mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeWrap:
		return "wrap"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode resolves "clamp" or "wrap".
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "clamp", "":
		return EdgeClamp, nil
	case "wrap":
		return EdgeWrap, nil
	default:
		return EdgeClamp, fmt.Errorf("%w: %q", ErrUnknownEdgeMode, s)
	}
}

// Options configures Extract.
type Options struct {
	// Edge selects border sampling. Default EdgeClamp.
	Edge EdgeMode

	err error
}

// Option mutates Options. Invalid values are recorded and reported by Extract.
type Option func(*Options)

// DefaultOptions returns clamp sampling.
func DefaultOptions() Options {
	return Options{Edge: EdgeClamp}
}

// WithEdgeMode sets the border sampling mode.
func WithEdgeMode(m EdgeMode) Option {
	return func(o *Options) {
		if m != EdgeClamp && m != EdgeWrap {
			o.err = fmt.Errorf("%w: edge mode %d", ErrOptionViolation, int(m))
			return
		}
		o.Edge = m
	}
}
