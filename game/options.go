package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/faiface/pixel"
	"github.com/pkg/errors"
)

// BoardPosition places the board in world space, where the origin is the
// center of the window.
type BoardPosition struct {
	// Custom places the bottom-left corner of the board at Offset, instead of
	// centering the board and shifting it by Offset
	Custom bool      `yaml:"custom"`
	Offset pixel.Vec `yaml:"offset"`
}

// TileSizeOption is either a fixed tile edge length, or an adaptive one
// fitting the window within [Min, Max].
type TileSizeOption struct {
	Fixed float64 `yaml:"fixed,omitempty"`
	Min   float64 `yaml:"min,omitempty"`
	Max   float64 `yaml:"max,omitempty"`
}

type BoardOptions struct {
	Width     uint16 `yaml:"width"`
	Height    uint16 `yaml:"height"`
	BombCount uint16 `yaml:"bomb_count"`

	Position    BoardPosition  `yaml:"position"`
	TileSize    TileSizeOption `yaml:"tile_size"`
	TilePadding float64        `yaml:"tile_padding"`

	// Uncover the first Empty tile as soon as the board is created
	SafeStart bool `yaml:"safe_start"`
	// Uncover one flood-fill layer per update, instead of all at once
	StagedReveal bool `yaml:"staged_reveal"`

	Colors Palette `yaml:"colors"`
}

func DefaultBoardOptions() BoardOptions {
	return BoardOptions{
		Width:     30,
		Height:    16,
		BombCount: 99,
		TileSize:  AdaptiveTileSize(10, 50),
		Colors:    DefaultPalette(),
	}
}

func FixedTileSize(size float64) TileSizeOption {
	return TileSizeOption{Fixed: size}
}

func AdaptiveTileSize(min, max float64) TileSizeOption {
	return TileSizeOption{Min: min, Max: max}
}

func (option TileSizeOption) IsAdaptive() bool {
	return option.Fixed == 0
}

// ParseTileSizeOption accepts "24" or "fixed:24" for a fixed size, and
// "10-50" or "adaptive:10-50" for an adaptive one.
func ParseTileSizeOption(value string) (TileSizeOption, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "fixed:")
	value = strings.TrimPrefix(value, "adaptive:")

	if bounds := strings.SplitN(value, "-", 2); len(bounds) == 2 {
		min, minErr := strconv.ParseFloat(bounds[0], 64)
		max, maxErr := strconv.ParseFloat(bounds[1], 64)
		if minErr != nil || maxErr != nil {
			return TileSizeOption{}, errors.Wrapf(ErrInvalidOptions, "tile size %q", value)
		}
		return AdaptiveTileSize(min, max), nil
	}

	size, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return TileSizeOption{}, errors.Wrapf(ErrInvalidOptions, "tile size %q", value)
	}
	return FixedTileSize(size), nil
}

func (option TileSizeOption) String() string {
	if option.IsAdaptive() {
		return fmt.Sprintf("adaptive:%g-%g", option.Min, option.Max)
	}
	return fmt.Sprintf("fixed:%g", option.Fixed)
}

func (options BoardOptions) Validate() error {
	if err := checkDimensions(options.Width, options.Height, int(options.BombCount)); err != nil {
		return err
	}

	tileSize := options.TileSize
	switch {
	case !tileSize.IsAdaptive() && tileSize.Fixed < 0:
		return errors.Wrapf(ErrInvalidOptions, "negative tile size %g", tileSize.Fixed)
	case tileSize.IsAdaptive() && (tileSize.Min <= 0 || tileSize.Max < tileSize.Min):
		return errors.Wrapf(ErrInvalidOptions, "tile size range [%g, %g]", tileSize.Min, tileSize.Max)
	case options.TilePadding < 0:
		return errors.Wrapf(ErrInvalidOptions, "negative tile padding %g", options.TilePadding)
	case !tileSize.IsAdaptive() && options.TilePadding >= tileSize.Fixed:
		return errors.Wrapf(ErrInvalidOptions, "tile padding %g leaves nothing of tile size %g", options.TilePadding, tileSize.Fixed)
	}

	return nil
}

// ComputeTileSize returns the tile edge length for a window of windowSize
func (options BoardOptions) ComputeTileSize(windowSize pixel.Vec) float64 {
	if !options.TileSize.IsAdaptive() {
		return options.TileSize.Fixed
	}

	maxWidth := windowSize.X / float64(options.Width)
	maxHeight := windowSize.Y / float64(options.Height)
	size := math.Min(maxWidth, maxHeight)

	return math.Max(options.TileSize.Min, math.Min(options.TileSize.Max, size))
}

// ComputeBounds returns the world-space rectangle of the board
func (options BoardOptions) ComputeBounds(tileSize float64) pixel.Rect {
	size := pixel.V(float64(options.Width)*tileSize, float64(options.Height)*tileSize)

	position := options.Position.Offset
	if !options.Position.Custom {
		position = position.Sub(size.Scaled(0.5))
	}

	return pixel.Rect{Min: position, Max: position.Add(size)}
}
