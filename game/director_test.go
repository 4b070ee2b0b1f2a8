package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstCoveredDirector uncovers tiles in row-major order and remembers how
// many tiles were covered when first asked.
type firstCoveredDirector struct {
	calls        int
	firstCovered int
}

func (director *firstCoveredDirector) Next(session *Session) (Intent, bool) {
	board := session.Board()
	if director.calls == 0 {
		director.firstCovered = board.CoveredCount()
	}
	director.calls++

	tileMap := session.TileMap()
	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			coords := Coordinates{X: x, Y: y}
			if board.IsCovered(coords) && !board.IsMarked(coords) {
				return Uncover(coords), true
			}
		}
	}
	return Intent{}, false
}

func TestPlaySettlesSafeStartFirst(t *testing.T) {
	options := testOptions(10, 10, 10)
	options.SafeStart = true

	for seed := int64(0); seed < 10; seed++ {
		session, err := NewSession(options, testWindow, seed)
		require.NoError(t, err)

		safe, ok := session.TileMap().SafeStart()
		require.True(t, ok)

		director := &firstCoveredDirector{}
		events := Play(session, director)

		require.NotEmpty(t, events)
		first, ok := events[0].(TileRevealed)
		require.True(t, ok)
		assert.Equal(t, safe, first.Coords)
		assert.Less(t, director.firstCovered, 100)
		assert.False(t, session.CanPlay())
	}
}

func TestPlayEndedSession(t *testing.T) {
	session, err := NewSession(testOptions(3, 3, 0), testWindow, 1)
	require.NoError(t, err)
	session.Apply(Uncover(Coordinates{X: 0, Y: 0}))

	director := &firstCoveredDirector{}
	assert.Empty(t, Play(session, director))
	assert.Zero(t, director.calls)
}
