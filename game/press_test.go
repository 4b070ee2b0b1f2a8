package game

import (
	"testing"
	"time"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
)

var (
	pressA = Coordinates{X: 1, Y: 1}
	pressB = Coordinates{X: 2, Y: 1}
)

func TestPressTap(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	coords, pressing := press.Pressed()
	assert.True(t, pressing)
	assert.Equal(t, pressA, coords)

	_, ok := press.Tick(100 * time.Millisecond)
	assert.False(t, ok)

	intent, ok := press.End(pressA, true, 200*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, Uncover(pressA), intent)

	_, pressing = press.Pressed()
	assert.False(t, pressing)
}

func TestPressHold(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, time.Second)

	_, ok := press.Tick(time.Second + HoldThreshold - time.Millisecond)
	assert.False(t, ok)

	intent, ok := press.Tick(time.Second + HoldThreshold)
	assert.True(t, ok)
	assert.Equal(t, Mark(pressA), intent)

	// The mark fires once, and the release does nothing more
	_, ok = press.Tick(2 * time.Second)
	assert.False(t, ok)
	_, ok = press.End(pressA, true, 2*time.Second)
	assert.False(t, ok)
}

func TestPressLongReleaseWithoutTick(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	_, ok := press.End(pressA, true, HoldThreshold)
	assert.False(t, ok)
}

func TestPressReleasedElsewhere(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	_, ok := press.End(pressB, true, 100*time.Millisecond)
	assert.False(t, ok)

	_, pressing := press.Pressed()
	assert.False(t, pressing)

	press.Start(pressA, true, 0)
	_, ok = press.End(Coordinates{}, false, 100*time.Millisecond)
	assert.False(t, ok)
}

func TestPressMoveRestartsHold(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	press.Move(pressB, true, 400*time.Millisecond)

	coords, _ := press.Pressed()
	assert.Equal(t, pressB, coords)

	_, ok := press.Tick(800 * time.Millisecond)
	assert.False(t, ok)

	intent, ok := press.Tick(900 * time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, Mark(pressB), intent)
}

func TestPressMoveOffBoardKeepsTarget(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	press.Move(Coordinates{}, false, 100*time.Millisecond)

	intent, ok := press.End(pressA, true, 200*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, Uncover(pressA), intent)
}

func TestPressStartOffBoard(t *testing.T) {
	var press PressInterpreter

	press.Start(Coordinates{}, false, 0)
	_, pressing := press.Pressed()
	assert.False(t, pressing)

	_, ok := press.Tick(time.Second)
	assert.False(t, ok)
}

func TestPressCancel(t *testing.T) {
	var press PressInterpreter

	press.Start(pressA, true, 0)
	press.Cancel()

	_, ok := press.Tick(time.Second)
	assert.False(t, ok)
	_, ok = press.End(pressA, true, 100*time.Millisecond)
	assert.False(t, ok)
}

func TestPressHandleResolvesPositions(t *testing.T) {
	board := newTestBoard(t, 4, 4)
	windowSize := pixel.V(100, 100)
	position := board.TileOrigin(windowSize, pressA).Add(pixel.V(5, 5))

	var press PressInterpreter
	_, ok := press.Handle(board, windowSize, PointerEvent{Phase: PointerStart, Position: position}, 0)
	assert.False(t, ok)

	intent, ok := press.Handle(board, windowSize, PointerEvent{Phase: PointerEnd, Position: position}, 50*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, Uncover(pressA), intent)

	press.Handle(board, windowSize, PointerEvent{Phase: PointerStart, Position: position}, time.Second)
	press.Handle(board, windowSize, PointerEvent{Phase: PointerCancel, Position: position}, time.Second)
	_, pressing := press.Pressed()
	assert.False(t, pressing)
}
