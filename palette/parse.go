package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by Parse for names it cannot resolve.
var ErrUnknownColor = errors.New("unknown color")

// single-letter color codes, as used by plotting libraries
var shorthands = map[string]RGBA{
	"b": {0, 0, 1, 1},
	"g": {0, 0.5, 0, 1},
	"r": {1, 0, 0, 1},
	"c": {0, 0.75, 0.75, 1},
	"m": {0.75, 0, 0.75, 1},
	"y": {0.75, 0.75, 0, 1},
	"k": {0, 0, 0, 1},
	"w": {1, 1, 1, 1},
}

// Parse resolves a color specification:
//
//   - "#rgb", "#rrggbb" and "#rrggbbaa" hex notation
//   - single-letter codes "b", "g", "r", "c", "m", "y", "k", "w"
//   - SVG 1.1 color names like "orange" or "steelblue" (case-insensitive)
//
// Unresolvable names yield ErrUnknownColor.
func Parse(name string) (RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if c, ok := shorthands[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return FromColor(c), nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// MustParse is like Parse but panics on unknown colors. Intended for
// package-level defaults.
func MustParse(name string) RGBA {
	c, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (RGBA, error) {
	alpha := 1.0
	if len(s) == 9 { // #rrggbbaa
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	r, g, b := c.Clamped().RGB255()
	return RGBA{float64(r) / 255, float64(g) / 255, float64(b) / 255, alpha}, nil
}
