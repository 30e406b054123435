package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wfc"
)

// ErrInvalidConfig indicates a configuration that failed to decode or validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Run is one generate configuration.
type Run struct {
	// Example is the path of the text example map.
	Example string `yaml:"example" validate:"required"`

	// Neighbourhood names the offset set: cross, square, cross+self, square+self.
	Neighbourhood string `yaml:"neighbourhood" validate:"neighbourhood"`

	Width  int `yaml:"width" validate:"gte=0,lte=4096"`
	Height int `yaml:"height" validate:"gte=0,lte=4096"`

	// Seed feeds the PCG source; run i of a batch uses Seed+i.
	Seed uint64 `yaml:"seed"`

	Retries  int `yaml:"retries" validate:"gte=0"`
	MaxWaves int `yaml:"max_waves" validate:"gte=0"`

	// Edge is "clamp" or "wrap".
	Edge string `yaml:"edge" validate:"edgemode"`

	// Unobserved is "permissive" or "strict".
	Unobserved string `yaml:"unobserved" validate:"unobserved"`

	// Keying is "value" or "tile".
	Keying string `yaml:"keying" validate:"keying"`

	// Count is the number of maps generated per invocation.
	Count    int `yaml:"count" validate:"gte=1,lte=1024"`
	Parallel int `yaml:"parallel" validate:"gte=1,lte=64"`

	// Palette maps a single-rune symbol to a terminal colour
	// ("#rrggbb" or an ANSI index 0-255).
	Palette map[string]string `yaml:"palette" validate:"dive,keys,len=1,endkeys,termcolor"`

	// Walkable lists the symbols forming walkable regions.
	Walkable string `yaml:"walkable" validate:"required_if=RequireConnected true"`

	// RequireConnected rejects maps whose walkable cells form several regions.
	RequireConnected bool `yaml:"require_connected"`

	// Dig joins the regions of a split map by converting the fewest cells
	// to the first walkable symbol, instead of regenerating it.
	Dig bool `yaml:"dig"`

	// Output is the path of the generated map; empty means stdout.
	Output string `yaml:"output"`
}

// Default returns the configuration used for absent keys.
func Default() Run {
	return Run{
		Neighbourhood: "cross",
		Width:         32,
		Height:        16,
		Seed:          1,
		Retries:       wfc.DefaultRetries,
		Edge:          tile.EdgeClamp.String(),
		Unobserved:    adjacency.Permissive.String(),
		Keying:        adjacency.ByValue.String(),
		Count:         1,
		Parallel:      1,
	}
}

var (
	validate   *validator.Validate
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	ansiRe     = regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("neighbourhood", func(fl validator.FieldLevel) bool {
		_, err := grid.ByName(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("edgemode", func(fl validator.FieldLevel) bool {
		_, err := tile.ParseEdgeMode(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("unobserved", func(fl validator.FieldLevel) bool {
		_, err := adjacency.ParseUnobserved(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("keying", func(fl validator.FieldLevel) bool {
		_, err := adjacency.ParseKeying(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("termcolor", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return hexColorRe.MatchString(s) || ansiRe.MatchString(s)
	})
}

// Load reads and validates the configuration stored at path.
func Load(path string) (Run, error) {
	r, err := Read(path)
	if err != nil {
		return Run{}, err
	}
	if err = r.Validate(); err != nil {
		return Run{}, err
	}

	return r, nil
}

// Parse decodes data and validates the result.
func Parse(data []byte) (Run, error) {
	r, err := Decode(data)
	if err != nil {
		return Run{}, err
	}
	if err = r.Validate(); err != nil {
		return Run{}, err
	}

	return r, nil
}

// Read decodes the file at path without validating it, so that command line
// flags can complete it first.
func Read(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: %w", err)
	}

	return Decode(data)
}

// Decode decodes data on top of Default. Unknown keys are rejected.
func Decode(data []byte) (Run, error) {
	r := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return Run{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return r, nil
}

// Validate checks every field and reports all violations at once.
func (r Run) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "gte", "lte", "len":
		return fmt.Sprintf("%s must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s: %q is not a valid %s", field, fmt.Sprint(fe.Value()), fe.Tag())
	}
}

// ResolvedNeighbourhood returns the offset set named by Neighbourhood.
func (r Run) ResolvedNeighbourhood() (grid.Neighbourhood, error) {
	n, err := grid.ByName(r.Neighbourhood)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return n, nil
}

// Options translates the generation settings into wfc options.
func (r Run) Options() ([]wfc.Option, error) {
	edge, err := tile.ParseEdgeMode(r.Edge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	unobserved, err := adjacency.ParseUnobserved(r.Unobserved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	keying, err := adjacency.ParseKeying(r.Keying)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return []wfc.Option{
		wfc.WithRetries(r.Retries),
		wfc.WithMaxWaves(r.MaxWaves),
		wfc.WithEdgeMode(edge),
		wfc.WithUnobserved(unobserved),
		wfc.WithKeying(keying),
	}, nil
}

// PaletteRunes returns the palette keyed by symbol.
func (r Run) PaletteRunes() map[rune]string {
	out := make(map[rune]string, len(r.Palette))
	for k, v := range r.Palette {
		for _, sym := range k {
			out[sym] = v
			break
		}
	}

	return out
}

// WalkableRunes returns the walkable symbols.
func (r Run) WalkableRunes() []rune { return []rune(r.Walkable) }
