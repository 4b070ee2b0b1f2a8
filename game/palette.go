package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Color is an opaque RGB color. In YAML it is written as "#rrggbb" or as an
// SVG color name.
type Color color.RGBA

type Palette struct {
	Background  Color `yaml:"background"`
	Padding     Color `yaml:"padding"`
	Unknown     Color `yaml:"unknown"`
	Revealed    Color `yaml:"revealed"`
	Highlighted Color `yaml:"highlighted"`
	Flag        Color `yaml:"flag"`
	Bomb        Color `yaml:"bomb"`

	// Colors of the neighbor count digits, indexed by count - 1
	Numbers []Color `yaml:"numbers"`
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

func DefaultPalette() Palette {
	return Palette{
		Background:  RGB(19, 20, 22),
		Padding:     RGB(19, 20, 22),
		Unknown:     RGB(59, 63, 68),
		Revealed:    RGB(26, 27, 30),
		Highlighted: RGB(71, 75, 82),
		Flag:        RGB(27, 167, 223),
		Bomb:        RGB(241, 91, 80),
		Numbers: []Color{
			Color(colornames.White),
			RGB(64, 182, 73),  // green
			RGB(228, 208, 32), // yellow
			RGB(250, 131, 20), // orange
			RGB(178, 21, 214), // purple
		},
	}
}

// NumberColor returns the digit color for count neighboring bombs, using the
// last configured color when there are fewer colors than counts.
func (palette Palette) NumberColor(count uint8) Color {
	if len(palette.Numbers) == 0 {
		return Color(colornames.White)
	}

	idx := 0
	if count > 0 {
		idx = int(count) - 1
	}
	if idx >= len(palette.Numbers) {
		idx = len(palette.Numbers) - 1
	}
	return palette.Numbers[idx]
}

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA(c).RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor reads "#rrggbb" or an SVG color name such as "gainsboro"
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "#") {
		var r, g, b uint8
		if n, err := fmt.Sscanf(value, "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 || len(value) != 7 {
			return Color{}, errors.Wrapf(ErrInvalidColor, "%q", value)
		}
		return RGB(r, g, b), nil
	}

	if named, ok := colornames.Map[strings.ToLower(value)]; ok {
		return Color(named), nil
	}
	return Color{}, errors.Wrapf(ErrInvalidColor, "unknown color name %q", value)
}

func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}

	parsed, err := ParseColor(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
