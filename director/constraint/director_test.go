package constraint

import (
	"math/rand"
	"testing"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/util/collections"
)

func restore(t *testing.T, board string) *game.Session {
	t.Helper()

	snapshot := &game.BoardSnapshot{Seed: 1, SerializedBoard: board}
	session, err := snapshot.Restore(game.DefaultBoardOptions(), pixel.V(400, 400), false)
	require.NoError(t, err)
	return session
}

func TestNextUncoversSafeNeighbor(t *testing.T) {
	session := restore(t, ".#\n.#")

	intent, ok := New(1).Next(session)
	require.True(t, ok)
	assert.Equal(t, game.Uncover(game.Coordinates{X: 1, Y: 0}), intent)
}

func TestNextMarksKnownBomb(t *testing.T) {
	session := restore(t, ".O#")
	director := New(1)

	intent, ok := director.Next(session)
	require.True(t, ok)
	assert.Equal(t, game.Mark(game.Coordinates{X: 1, Y: 0}), intent)
	session.Apply(intent)

	// The marked bomb explains the revealed number, leaving a random pick
	intent, ok = director.Next(session)
	require.True(t, ok)
	assert.Equal(t, game.Uncover(game.Coordinates{X: 2, Y: 0}), intent)

	session.Apply(intent)
	assert.Equal(t, game.Won, session.State())
}

func TestNextUsesSubsetObservations(t *testing.T) {
	// (0, 0) sees one bomb among two tiles which (1, 0) also sees, so the
	// other tiles around (1, 0) are safe
	session := restore(t, "O##\n..#")

	intent, ok := New(1).Next(session)
	require.True(t, ok)
	assert.Equal(t, game.Uncover(game.Coordinates{X: 2, Y: 0}), intent)
}

func TestLowestProbability(t *testing.T) {
	director := New(1)
	director.seen = make(collections.Set[string])

	director.addObservation(&Observation{
		numBombs: 1,
		tiles:    collections.NewSet(game.Coordinates{X: 0, Y: 0}, game.Coordinates{X: 1, Y: 0}),
	})
	director.addObservation(&Observation{
		numBombs: 1,
		tiles:    collections.NewSet(game.Coordinates{X: 5, Y: 0}, game.Coordinates{X: 6, Y: 0}, game.Coordinates{X: 7, Y: 0}),
	})

	intent, ok := director.actDeliberate()
	assert.False(t, ok)

	intent, ok = director.actLowestProbability(rand.New(rand.NewSource(1)))
	require.True(t, ok)
	assert.Equal(t, game.UncoverIntent, intent.Kind)
	assert.GreaterOrEqual(t, intent.Coords.X, uint16(5))
}

func TestAddObservationRejectsDuplicates(t *testing.T) {
	director := New(1)
	director.seen = make(collections.Set[string])

	tiles := collections.NewSet(game.Coordinates{X: 1, Y: 1}, game.Coordinates{X: 2, Y: 1})
	assert.True(t, director.addObservation(&Observation{numBombs: 1, tiles: tiles}))
	assert.False(t, director.addObservation(&Observation{numBombs: 1, tiles: collections.NewSet(game.Coordinates{X: 2, Y: 1}, game.Coordinates{X: 1, Y: 1})}))
	assert.False(t, director.addObservation(&Observation{numBombs: 3, tiles: collections.NewSet(game.Coordinates{X: 4, Y: 4})}))
	assert.False(t, director.addObservation(&Observation{numBombs: 0, tiles: collections.NewSet[game.Coordinates]()}))
	assert.Len(t, director.observations, 1)
}

func TestPlayEndsGame(t *testing.T) {
	options := game.DefaultBoardOptions()
	options.Width, options.Height, options.BombCount = 9, 9, 10
	options.SafeStart = true

	won := 0
	for seed := int64(0); seed < 20; seed++ {
		session, err := game.NewSession(options, pixel.V(400, 400), seed)
		require.NoError(t, err)
		session.Update(0, nil)

		game.Play(session, New(seed))
		assert.False(t, session.CanPlay())
		if session.State() == game.Won {
			won++
		}

		for _, coords := range session.Board().MarkedTiles() {
			assert.True(t, session.TileMap().IsBombAt(coords), "marked safe tile %v", coords)
		}
	}
	assert.Greater(t, won, 0)
}
