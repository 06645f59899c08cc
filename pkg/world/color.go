package world

import (
	"fmt"
	"strings"
)

// Color identifies a player. Colors are bit flags so that fog and
// visibility masks can combine several of them.
type Color uint8

const (
	ColorNone   Color = 0
	ColorBlue   Color = 1 << 0
	ColorGreen  Color = 1 << 1
	ColorRed    Color = 1 << 2
	ColorYellow Color = 1 << 3
	ColorOrange Color = 1 << 4
	ColorPurple Color = 1 << 5
)

// AllColors returns the playable colors in turn order.
func AllColors() []Color {
	return []Color{ColorBlue, ColorGreen, ColorRed, ColorYellow, ColorOrange, ColorPurple}
}

var colorNames = map[Color]string{
	ColorNone:   "none",
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorRed:    "red",
	ColorYellow: "yellow",
	ColorOrange: "orange",
	ColorPurple: "purple",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("mask(%d)", uint8(c))
}

// ParseColor converts a color name into a Color.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range colorNames {
		if name == s {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// MarshalText encodes the color by name for JSON and YAML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
