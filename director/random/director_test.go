package random

import (
	"testing"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/sweepcore/game"
)

func newSession(t *testing.T, width, height, bombs uint16, seed int64) *game.Session {
	t.Helper()

	options := game.DefaultBoardOptions()
	options.Width, options.Height, options.BombCount = width, height, bombs
	session, err := game.NewSession(options, pixel.V(400, 400), seed)
	require.NoError(t, err)
	return session
}

func TestNextSkipsMarkedTiles(t *testing.T) {
	session := newSession(t, 2, 1, 0, 1)
	director := New(1)

	intent, ok := director.Next(session)
	require.True(t, ok)
	assert.Equal(t, game.UncoverIntent, intent.Kind)

	session.ToggleMark(intent.Coords)
	next, ok := director.Next(session)
	require.True(t, ok)
	assert.NotEqual(t, intent.Coords, next.Coords)
	assert.Equal(t, game.UncoverIntent, next.Kind)

	session.ToggleMark(next.Coords)
	_, ok = director.Next(session)
	assert.False(t, ok)
}

func TestPlayEndsGame(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		session := newSession(t, 8, 8, 10, seed)
		events := game.Play(session, New(seed))

		assert.NotEmpty(t, events)
		assert.False(t, session.CanPlay())
	}
}

func TestDirectorIsDeterministic(t *testing.T) {
	first := game.Play(newSession(t, 8, 8, 10, 3), New(5))
	second := game.Play(newSession(t, 8, 8, 10, 3), New(5))
	assert.Equal(t, first, second)
}

func TestNextFollowsNewSession(t *testing.T) {
	director := New(2)

	first := newSession(t, 3, 3, 0, 1)
	game.Play(first, director)
	assert.Equal(t, game.Won, first.State())

	second := newSession(t, 3, 3, 0, 2)
	_, ok := director.Next(second)
	assert.True(t, ok)
}
