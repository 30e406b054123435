package adjacency

import (
	"errors"
	"fmt"
)

// Sentinel errors for compatibility compilation and lookup.
var (
	// ErrNilCatalog indicates Build received a nil catalog.
	ErrNilCatalog = errors.New("adjacency: catalog is nil")

	// ErrInvalidOffset indicates a query for an offset outside the neighbourhood.
	ErrInvalidOffset = errors.New("adjacency: offset not in neighbourhood")

	// ErrUnknownTile indicates a tile ID outside the catalog.
	ErrUnknownTile = errors.New("adjacency: unknown tile id")

	// ErrOptionViolation indicates that an Option received an invalid value.
	ErrOptionViolation = errors.New("adjacency: invalid option value")

	// ErrUnknownPolicy indicates an unsupported Unobserved policy name.
	ErrUnknownPolicy = errors.New("adjacency: unknown unobserved policy")

	// ErrUnknownKeying indicates an unsupported Keying name.
	ErrUnknownKeying = errors.New("adjacency: unknown keying")
)

// Keying decides what the example observations are attached to.
type Keying int

const (
	// ByValue records which example values sit next to which. Tile t admits
	// t' at offset o when the value of t' was seen at o from some cell holding
	// the value of t. A tile's value is its representative cell's value.
	ByValue Keying = iota

	// ByTile records which tiles sit next to which: t admits t' at offset o
	// when a member cell of t has a member cell of t' at o.
	ByTile
)

// String returns the configuration name of the keying.
func (k Keying) String() string {
	switch k {
	case ByValue:
		return "value"
	case ByTile:
		return "tile"
	default:
		return fmt.Sprintf("Keying(%d)", int(k))
	}
}

// ParseKeying resolves "value" or "tile".
func ParseKeying(s string) (Keying, error) {
	switch s {
	case "value", "":
		return ByValue, nil
	case "tile":
		return ByTile, nil
	default:
		return ByValue, fmt.Errorf("%w: %q", ErrUnknownKeying, s)
	}
}

// Unobserved decides the compatibility of a tile at an offset where the
// example never showed it a neighbour.
type Unobserved int

const (
	// Permissive treats an unobserved offset as unconstrained.
	Permissive Unobserved = iota

	// Strict treats an unobserved offset as admitting no tile.
	Strict
)

// String returns the configuration name of the policy.
func (u Unobserved) String() string {
	switch u {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Unobserved(%d)", int(u))
	}
}

// ParseUnobserved resolves "permissive" or "strict".
func ParseUnobserved(s string) (Unobserved, error) {
	switch s {
	case "permissive", "":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Options configures Build.
type Options struct {
	// Unobserved selects the policy for offsets without observations.
	Unobserved Unobserved

	// Keying selects what observations are attached to.
	Keying Keying

	err error
}

// Option mutates Options. Invalid values are recorded and reported by Build.
type Option func(*Options)

// DefaultOptions returns the Permissive policy with value keying.
func DefaultOptions() Options {
	return Options{Unobserved: Permissive, Keying: ByValue}
}

// WithUnobserved sets the policy for unobserved offsets.
func WithUnobserved(u Unobserved) Option {
	return func(o *Options) {
		if u != Permissive && u != Strict {
			o.err = fmt.Errorf("%w: unobserved policy %d", ErrOptionViolation, int(u))
			return
		}
		o.Unobserved = u
	}
}

// WithKeying selects what observations are attached to.
func WithKeying(k Keying) Option {
	return func(o *Options) {
		if k != ByValue && k != ByTile {
			o.err = fmt.Errorf("%w: keying %d", ErrOptionViolation, int(k))
			return
		}
		o.Keying = k
	}
}
