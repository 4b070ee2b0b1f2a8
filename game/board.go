package game

import (
	"math"

	"github.com/faiface/pixel"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/util/collections"
)

// TileHandle identifies the cover of one tile. The zero handle is never
// issued.
type TileHandle uint32

// Board is the per-session overlay on a TileMap: which tiles are still
// covered, which of them are marked, and where the board sits on screen.
type Board struct {
	tileMap *TileMap

	bounds      pixel.Rect
	tileSize    float64
	tilePadding float64

	coveredTiles map[Coordinates]TileHandle
	markedTiles  collections.Set[Coordinates]
}

func NewBoard(tileMap *TileMap, bounds pixel.Rect, tileSize, tilePadding float64) *Board {
	board := &Board{
		tileMap:      tileMap,
		bounds:       bounds,
		tileSize:     tileSize,
		tilePadding:  tilePadding,
		coveredTiles: make(map[Coordinates]TileHandle, tileMap.NumTiles()),
		markedTiles:  make(collections.Set[Coordinates]),
	}

	handle := TileHandle(0)
	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			handle++
			board.coveredTiles[Coordinates{X: x, Y: y}] = handle
		}
	}

	return board
}

func (board *Board) TileMap() *TileMap {
	return board.tileMap
}

func (board *Board) Bounds() pixel.Rect {
	return board.bounds
}

func (board *Board) TileSize() float64 {
	return board.tileSize
}

func (board *Board) TilePadding() float64 {
	return board.tilePadding
}

// Relayout recomputes the tile size and bounds for a new window size
func (board *Board) Relayout(windowSize pixel.Vec, options BoardOptions) {
	options.Width, options.Height = board.tileMap.Width(), board.tileMap.Height()

	board.tileSize = options.ComputeTileSize(windowSize)
	board.tilePadding = options.TilePadding
	board.bounds = options.ComputeBounds(board.tileSize)

	log.WithFields(log.Fields{
		"window":   windowSize,
		"tileSize": board.tileSize,
		"bounds":   board.bounds,
	}).Debug("Board layout updated")
}

func (board *Board) inBounds(position pixel.Vec) bool {
	return position.X >= board.bounds.Min.X &&
		position.Y >= board.bounds.Min.Y &&
		position.X <= board.bounds.Max.X &&
		position.Y <= board.bounds.Max.Y
}

// CoordinatesAt translates a window-space pointer position, with Y growing
// downward, into grid coordinates.
func (board *Board) CoordinatesAt(windowSize, position pixel.Vec) (Coordinates, bool) {
	// Window space to world space
	position = position.Sub(windowSize.Scaled(0.5))

	if !board.inBounds(position) {
		return Coordinates{}, false
	}

	// World space to board space. Row 0 is drawn at the bottom, while the
	// pointer Y grows downward.
	local := position.Sub(board.bounds.Min)
	column := math.Floor(local.X / board.tileSize)
	row := float64(board.tileMap.Height()) - math.Floor(local.Y/board.tileSize) - 1

	if column < 0 || row < 0 || column >= float64(board.tileMap.Width()) || row >= float64(board.tileMap.Height()) {
		return Coordinates{}, false
	}
	return Coordinates{X: uint16(column), Y: uint16(row)}, true
}

// TileOrigin returns the window-space top-left corner of the tile at coords,
// the inverse of CoordinatesAt.
func (board *Board) TileOrigin(windowSize pixel.Vec, coords Coordinates) pixel.Vec {
	flippedRow := float64(board.tileMap.Height()) - float64(coords.Y) - 1
	return windowSize.Scaled(0.5).
		Add(board.bounds.Min).
		Add(pixel.V(float64(coords.X)*board.tileSize, flippedRow*board.tileSize))
}

func (board *Board) IsCovered(coords Coordinates) bool {
	_, covered := board.coveredTiles[coords]
	return covered
}

func (board *Board) IsMarked(coords Coordinates) bool {
	return board.markedTiles.Contains(coords)
}

func (board *Board) CoveredCount() int {
	return len(board.coveredTiles)
}

// Handle returns the cover handle of a covered tile
func (board *Board) Handle(coords Coordinates) (TileHandle, bool) {
	handle, covered := board.coveredTiles[coords]
	return handle, covered
}

// MarkedTiles lists the marked coordinates ordered by (x, y)
func (board *Board) MarkedTiles() []Coordinates {
	return board.markedTiles.Sorted(lessCoordinates)
}

// TileToUncover returns the handle of a covered tile, unless it is marked
func (board *Board) TileToUncover(coords Coordinates) (TileHandle, bool) {
	if board.IsMarked(coords) {
		return 0, false
	}
	return board.Handle(coords)
}

// TryUncoverTile removes the tile from the covered tiles, clearing its mark
// first if needed.
func (board *Board) TryUncoverTile(coords Coordinates) (TileHandle, bool) {
	if board.IsMarked(coords) {
		board.unmark(coords)
	}

	handle, covered := board.coveredTiles[coords]
	if !covered {
		return 0, false
	}
	delete(board.coveredTiles, coords)
	return handle, true
}

// AdjacentCoveredTiles returns the handles of the covered neighbors of coords
func (board *Board) AdjacentCoveredTiles(coords Coordinates) []TileHandle {
	var handles []TileHandle
	for _, neighbor := range board.tileMap.Neighbors(coords) {
		if handle, covered := board.coveredTiles[neighbor]; covered {
			handles = append(handles, handle)
		}
	}
	return handles
}

func (board *Board) AdjacentCoveredCoordinates(coords Coordinates) []Coordinates {
	var neighbors []Coordinates
	for _, neighbor := range board.tileMap.Neighbors(coords) {
		if board.IsCovered(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// TryToggleMark flips the mark of a covered tile, returning its handle and
// whether it is now marked. Uncovered tiles cannot be marked.
func (board *Board) TryToggleMark(coords Coordinates) (TileHandle, bool, bool) {
	handle, covered := board.coveredTiles[coords]
	if !covered {
		return 0, false, false
	}

	if board.markedTiles.Contains(coords) {
		if !board.unmark(coords) {
			return 0, false, false
		}
		return handle, false, true
	}

	board.markedTiles.Add(coords)
	return handle, true, true
}

func (board *Board) unmark(coords Coordinates) bool {
	if !board.markedTiles.Remove(coords) {
		log.WithFields(log.Fields{"coords": coords}).Error("Tried to unmark a tile which is not marked")
		return false
	}
	return true
}

// IsCompleted reports whether only bombs are left covered
func (board *Board) IsCompleted() bool {
	return len(board.coveredTiles) == int(board.tileMap.BombCount())
}
