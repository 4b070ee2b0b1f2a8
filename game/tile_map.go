package game

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TileMap is the immutable grid of tile classifications of one game
type TileMap struct {
	width, height uint16 // in number of tiles
	bombCount     uint16

	// Rows are ordered bottom-to-top
	tiles [][]Tile
}

// GenerateTileMap places bombCount bombs uniformly at random and classifies
// every other tile by its number of neighboring bombs.
func GenerateTileMap(width, height, bombCount uint16, rng *rand.Rand) (*TileMap, error) {
	if err := checkDimensions(width, height, int(bombCount)); err != nil {
		return nil, err
	}

	numTiles := int(width) * int(height)

	// Store tile indexes, to partially shuffle and fill bombs
	tileIndexes := make([]int, numTiles)
	for i := range tileIndexes {
		tileIndexes[i] = i
	}

	bombs := make([]Coordinates, bombCount)
	for i := range bombs {
		j := i + rng.Intn(numTiles-i)
		tileIndexes[i], tileIndexes[j] = tileIndexes[j], tileIndexes[i]

		tileIdx := tileIndexes[i]
		bombs[i] = Coordinates{
			X: uint16(tileIdx % int(width)),
			Y: uint16(tileIdx / int(width)),
		}
	}

	tileMap := newEmptyTileMap(width, height)
	tileMap.placeBombs(bombs)

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Generated tile map\n%s", tileMap.ConsoleOutput())
	}

	return tileMap, nil
}

// NewTileMap builds a map with bombs at the given coordinates
func NewTileMap(width, height uint16, bombs []Coordinates) (*TileMap, error) {
	if err := checkDimensions(width, height, len(bombs)); err != nil {
		return nil, err
	}

	tileMap := newEmptyTileMap(width, height)
	for _, coords := range bombs {
		if !tileMap.Contains(coords) {
			return nil, errors.Wrapf(ErrInvalidBombs, "bomb %v outside of %dx%d map", coords, width, height)
		}
		if tileMap.tiles[coords.Y][coords.X] == Bomb {
			return nil, errors.Wrapf(ErrInvalidBombs, "duplicate bomb at %v", coords)
		}
		tileMap.tiles[coords.Y][coords.X] = Bomb
	}
	tileMap.placeBombs(bombs)

	return tileMap, nil
}

func checkDimensions(width, height uint16, bombCount int) error {
	if width == 0 || height == 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d map", width, height)
	}
	if bombCount >= int(width)*int(height) {
		return errors.Wrapf(ErrTooManyBombs, "%d bombs on a %dx%d map", bombCount, width, height)
	}
	return nil
}

func newEmptyTileMap(width, height uint16) *TileMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}

	return &TileMap{
		width:  width,
		height: height,
		tiles:  tiles,
	}
}

func (tileMap *TileMap) placeBombs(bombs []Coordinates) {
	tileMap.bombCount = uint16(len(bombs))
	for _, coords := range bombs {
		tileMap.tiles[coords.Y][coords.X] = Bomb
	}

	for y := uint16(0); y < tileMap.height; y++ {
		for x := uint16(0); x < tileMap.width; x++ {
			coords := Coordinates{X: x, Y: y}
			if tileMap.IsBombAt(coords) {
				continue
			}
			tileMap.tiles[y][x] = BombNeighbor(tileMap.BombCountAt(coords))
		}
	}
}

func (tileMap *TileMap) Width() uint16 {
	return tileMap.width
}

func (tileMap *TileMap) Height() uint16 {
	return tileMap.height
}

func (tileMap *TileMap) BombCount() uint16 {
	return tileMap.bombCount
}

func (tileMap *TileMap) NumTiles() int {
	return int(tileMap.width) * int(tileMap.height)
}

func (tileMap *TileMap) Contains(coords Coordinates) bool {
	return coords.X < tileMap.width && coords.Y < tileMap.height
}

// TileAt returns the tile at coords, and false if coords are off the map
func (tileMap *TileMap) TileAt(coords Coordinates) (Tile, bool) {
	if !tileMap.Contains(coords) {
		return Empty, false
	}
	return tileMap.tiles[coords.Y][coords.X], true
}

func (tileMap *TileMap) IsBombAt(coords Coordinates) bool {
	tile, ok := tileMap.TileAt(coords)
	return ok && tile.IsBomb()
}

// BombCountAt counts the bombs around coords. Bombs themselves count zero.
func (tileMap *TileMap) BombCountAt(coords Coordinates) uint8 {
	if !tileMap.Contains(coords) || tileMap.IsBombAt(coords) {
		return 0
	}

	count := uint8(0)
	for _, neighbor := range tileMap.Neighbors(coords) {
		if tileMap.IsBombAt(neighbor) {
			count++
		}
	}
	return count
}

// Neighbors returns the up to 8 on-map neighbors of coords, bottom row first
// and left to right within a row.
func (tileMap *TileMap) Neighbors(coords Coordinates) []Coordinates {
	neighbors := make([]Coordinates, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		x := int(coords.X) + int(offset[0])
		y := int(coords.Y) + int(offset[1])
		if x < 0 || y < 0 || x >= int(tileMap.width) || y >= int(tileMap.height) {
			continue
		}
		neighbors = append(neighbors, Coordinates{X: uint16(x), Y: uint16(y)})
	}
	return neighbors
}

// Bombs lists the bomb coordinates in row-major order
func (tileMap *TileMap) Bombs() []Coordinates {
	bombs := make([]Coordinates, 0, tileMap.bombCount)
	for y, row := range tileMap.tiles {
		for x, tile := range row {
			if tile.IsBomb() {
				bombs = append(bombs, Coordinates{X: uint16(x), Y: uint16(y)})
			}
		}
	}
	return bombs
}

// SafeStart returns the first Empty tile in row-major bottom-to-top order.
// Maps without any Empty tile fall back to the first safe tile with the
// fewest neighboring bombs.
func (tileMap *TileMap) SafeStart() (Coordinates, bool) {
	var best Coordinates
	found := false

	for y, row := range tileMap.tiles {
		for x, tile := range row {
			if tile.IsBomb() {
				continue
			}
			coords := Coordinates{X: uint16(x), Y: uint16(y)}
			if tile.IsEmpty() {
				return coords, true
			}
			if !found || tile.BombCount() < tileMap.tiles[best.Y][best.X].BombCount() {
				best = coords
				found = true
			}
		}
	}

	return best, found
}

// ConsoleOutput renders the map with the top row first
func (tileMap *TileMap) ConsoleOutput() string {
	var builder strings.Builder
	line := strings.Repeat("-", int(tileMap.width)+2)

	builder.WriteString(line)
	builder.WriteByte('\n')
	for y := len(tileMap.tiles) - 1; y >= 0; y-- {
		builder.WriteByte('|')
		for _, tile := range tileMap.tiles[y] {
			builder.WriteByte(tile.consoleOutput())
		}
		builder.WriteString("|\n")
	}
	builder.WriteString(line)

	return builder.String()
}
