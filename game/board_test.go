package game

import (
	"testing"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, width, height uint16, bombs ...Coordinates) *Board {
	t.Helper()

	tileMap, err := NewTileMap(width, height, bombs)
	require.NoError(t, err)

	options := DefaultBoardOptions()
	options.Width, options.Height = width, height
	options.TileSize = FixedTileSize(10)
	return NewBoard(tileMap, options.ComputeBounds(10), 10, 0)
}

func TestBoardStartsCovered(t *testing.T) {
	board := newTestBoard(t, 4, 3, Coordinates{X: 1, Y: 1})

	assert.Equal(t, 12, board.CoveredCount())
	assert.Empty(t, board.MarkedTiles())

	handles := make(map[TileHandle]struct{})
	for y := uint16(0); y < 3; y++ {
		for x := uint16(0); x < 4; x++ {
			handle, ok := board.Handle(Coordinates{X: x, Y: y})
			require.True(t, ok)
			assert.NotZero(t, handle)
			handles[handle] = struct{}{}
		}
	}
	assert.Len(t, handles, 12)
}

func TestCoordinatesAt(t *testing.T) {
	tileMap, err := NewTileMap(10, 10, nil)
	require.NoError(t, err)
	board := NewBoard(tileMap, pixel.R(0, 0, 100, 100), 10, 0)
	windowSize := pixel.V(200, 200)

	coords, ok := board.CoordinatesAt(windowSize, pixel.V(125, 115))
	require.True(t, ok)
	assert.Equal(t, Coordinates{X: 2, Y: 8}, coords)

	// Just left of the board
	_, ok = board.CoordinatesAt(windowSize, pixel.V(99, 150))
	assert.False(t, ok)

	// The top-left corner is inside the bounds
	coords, ok = board.CoordinatesAt(windowSize, pixel.V(100, 100))
	require.True(t, ok)
	assert.Equal(t, Coordinates{X: 0, Y: 9}, coords)

	// The bottom-right corner is inside the bounds but past the last tile
	_, ok = board.CoordinatesAt(windowSize, pixel.V(200, 200))
	assert.False(t, ok)

	coords, ok = board.CoordinatesAt(windowSize, pixel.V(199.9, 199.9))
	require.True(t, ok)
	assert.Equal(t, Coordinates{X: 9, Y: 0}, coords)
}

func TestTileOriginIsInverseOfCoordinatesAt(t *testing.T) {
	board := newTestBoard(t, 7, 5)
	windowSize := pixel.V(320, 240)

	for y := uint16(0); y < 5; y++ {
		for x := uint16(0); x < 7; x++ {
			coords := Coordinates{X: x, Y: y}
			origin := board.TileOrigin(windowSize, coords)

			center := origin.Add(pixel.V(5, 5))
			got, ok := board.CoordinatesAt(windowSize, center)
			require.True(t, ok, "tile %v", coords)
			assert.Equal(t, coords, got)
		}
	}
}

func TestRelayout(t *testing.T) {
	board := newTestBoard(t, 10, 5)

	options := DefaultBoardOptions()
	options.TileSize = AdaptiveTileSize(10, 50)
	board.Relayout(pixel.V(400, 400), options)

	assert.Equal(t, 40.0, board.TileSize())
	assert.Equal(t, pixel.R(-200, -100, 200, 100), board.Bounds())
}

func TestToggleMarkRoundTrip(t *testing.T) {
	board := newTestBoard(t, 3, 3)
	coords := Coordinates{X: 2, Y: 1}

	handles := make(map[Coordinates]TileHandle)
	for y := uint16(0); y < 3; y++ {
		for x := uint16(0); x < 3; x++ {
			handle, ok := board.Handle(Coordinates{X: x, Y: y})
			require.True(t, ok)
			handles[Coordinates{X: x, Y: y}] = handle
		}
	}

	handle, marked, ok := board.TryToggleMark(coords)
	require.True(t, ok)
	assert.True(t, marked)
	assert.NotZero(t, handle)
	assert.Equal(t, []Coordinates{coords}, board.MarkedTiles())
	assert.True(t, board.IsCovered(coords))

	_, marked, ok = board.TryToggleMark(coords)
	require.True(t, ok)
	assert.False(t, marked)
	assert.Empty(t, board.MarkedTiles())
	assert.Equal(t, 9, board.CoveredCount())
	assert.Equal(t, handles[coords], handle)

	for coords, handle := range handles {
		after, ok := board.Handle(coords)
		require.True(t, ok)
		assert.Equal(t, handle, after, "handle of %v", coords)
	}
}

func TestMarkedTileIsNotUncovered(t *testing.T) {
	board := newTestBoard(t, 3, 3)
	coords := Coordinates{X: 0, Y: 0}

	board.TryToggleMark(coords)
	_, ok := board.TileToUncover(coords)
	assert.False(t, ok)

	board.TryToggleMark(coords)
	handle, ok := board.TileToUncover(coords)
	assert.True(t, ok)
	assert.NotZero(t, handle)
}

func TestTryUncoverTileClearsMark(t *testing.T) {
	board := newTestBoard(t, 3, 3)
	coords := Coordinates{X: 1, Y: 2}

	board.TryToggleMark(coords)
	_, ok := board.TryUncoverTile(coords)
	require.True(t, ok)

	assert.False(t, board.IsCovered(coords))
	assert.False(t, board.IsMarked(coords))
	assert.Equal(t, 8, board.CoveredCount())

	_, ok = board.TryUncoverTile(coords)
	assert.False(t, ok)

	// Uncovered tiles cannot be marked
	_, _, ok = board.TryToggleMark(coords)
	assert.False(t, ok)
	assert.Empty(t, board.MarkedTiles())
}

func TestUnmarkMissingTile(t *testing.T) {
	board := newTestBoard(t, 2, 2)
	assert.False(t, board.unmark(Coordinates{X: 1, Y: 1}))
}

func TestAdjacentCoveredTiles(t *testing.T) {
	board := newTestBoard(t, 3, 3)
	corner := Coordinates{X: 0, Y: 0}

	assert.Len(t, board.AdjacentCoveredTiles(corner), 3)

	board.TryUncoverTile(Coordinates{X: 1, Y: 1})
	assert.Len(t, board.AdjacentCoveredTiles(corner), 2)
	assert.Equal(t, []Coordinates{{X: 1, Y: 0}, {X: 0, Y: 1}}, board.AdjacentCoveredCoordinates(corner))
}

func TestIsCompleted(t *testing.T) {
	board := newTestBoard(t, 2, 1, Coordinates{X: 0, Y: 0})
	assert.False(t, board.IsCompleted())

	board.TryUncoverTile(Coordinates{X: 1, Y: 0})
	assert.True(t, board.IsCompleted())

	empty := newTestBoard(t, 2, 2)
	for y := uint16(0); y < 2; y++ {
		for x := uint16(0); x < 2; x++ {
			empty.TryUncoverTile(Coordinates{X: x, Y: y})
		}
	}
	assert.True(t, empty.IsCompleted())
}
