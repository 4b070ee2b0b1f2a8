package game

import (
	"testing"

	"github.com/faiface/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTileSize(t *testing.T) {
	options := testOptions(10, 5, 0)
	assert.Equal(t, 10.0, options.ComputeTileSize(pixel.V(1000, 1000)))

	options.TileSize = AdaptiveTileSize(10, 50)
	assert.Equal(t, 30.0, options.ComputeTileSize(pixel.V(300, 1000)))
	assert.Equal(t, 50.0, options.ComputeTileSize(pixel.V(5000, 5000)))
	assert.Equal(t, 10.0, options.ComputeTileSize(pixel.V(20, 20)))
}

func TestComputeBounds(t *testing.T) {
	options := testOptions(4, 2, 0)
	assert.Equal(t, pixel.R(-20, -10, 20, 10), options.ComputeBounds(10))

	options.Position.Offset = pixel.V(5, -5)
	assert.Equal(t, pixel.R(-15, -15, 25, 5), options.ComputeBounds(10))

	options.Position.Custom = true
	assert.Equal(t, pixel.R(5, -5, 45, 15), options.ComputeBounds(10))
}

func TestValidateOptions(t *testing.T) {
	assert.NoError(t, DefaultBoardOptions().Validate())

	options := testOptions(0, 5, 0)
	assert.Equal(t, ErrInvalidDimensions, errors.Cause(options.Validate()))

	options = testOptions(5, 5, 25)
	assert.Equal(t, ErrTooManyBombs, errors.Cause(options.Validate()))

	options = testOptions(5, 5, 1)
	options.TilePadding = 10
	assert.Equal(t, ErrInvalidOptions, errors.Cause(options.Validate()))

	options = testOptions(5, 5, 1)
	options.TilePadding = -1
	assert.Equal(t, ErrInvalidOptions, errors.Cause(options.Validate()))

	options = testOptions(5, 5, 1)
	options.TileSize = AdaptiveTileSize(0, 10)
	assert.Equal(t, ErrInvalidOptions, errors.Cause(options.Validate()))
}

func TestParseTileSizeOption(t *testing.T) {
	cases := map[string]TileSizeOption{
		"24":             FixedTileSize(24),
		"fixed:12.5":     FixedTileSize(12.5),
		"10-50":          AdaptiveTileSize(10, 50),
		"adaptive:8-16 ": AdaptiveTileSize(8, 16),
	}
	for value, expected := range cases {
		option, err := ParseTileSizeOption(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, option, value)
	}

	for _, value := range []string{"", "big", "10-", "a-b"} {
		_, err := ParseTileSizeOption(value)
		assert.Equal(t, ErrInvalidOptions, errors.Cause(err), value)
	}

	assert.Equal(t, "fixed:24", FixedTileSize(24).String())
	assert.Equal(t, "adaptive:10-50", AdaptiveTileSize(10, 50).String())
}
