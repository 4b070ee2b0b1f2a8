package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v2"
)

func TestNumberColor(t *testing.T) {
	palette := DefaultPalette()

	assert.Equal(t, Color(colornames.White), palette.NumberColor(1))
	assert.Equal(t, RGB(64, 182, 73), palette.NumberColor(2))
	assert.Equal(t, RGB(178, 21, 214), palette.NumberColor(5))
	assert.Equal(t, RGB(178, 21, 214), palette.NumberColor(8))

	palette.Numbers = nil
	assert.Equal(t, Color(colornames.White), palette.NumberColor(3))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1ba7df")
	require.NoError(t, err)
	assert.Equal(t, RGB(27, 167, 223), c)
	assert.Equal(t, "#1ba7df", c.String())

	c, err = ParseColor("Gainsboro")
	require.NoError(t, err)
	assert.Equal(t, Color(colornames.Gainsboro), c)

	for _, value := range []string{"#12345", "#gggggg", "#1234567", "notacolor"} {
		_, err := ParseColor(value)
		assert.Equal(t, ErrInvalidColor, errors.Cause(err), value)
	}
}

func TestPaletteYAML(t *testing.T) {
	var palette Palette
	err := yaml.Unmarshal([]byte(`
background: black
flag: "#ff0000"
numbers: [white, "#00ff00"]
`), &palette)
	require.NoError(t, err)

	assert.Equal(t, Color(colornames.Black), palette.Background)
	assert.Equal(t, RGB(255, 0, 0), palette.Flag)
	assert.Equal(t, []Color{Color(colornames.White), RGB(0, 255, 0)}, palette.Numbers)

	out, err := yaml.Marshal(DefaultPalette())
	require.NoError(t, err)

	var roundTrip Palette
	require.NoError(t, yaml.Unmarshal(out, &roundTrip))
	assert.Equal(t, DefaultPalette(), roundTrip)

	err = yaml.Unmarshal([]byte(`bomb: "#zz0000"`), &palette)
	assert.Error(t, err)
}
