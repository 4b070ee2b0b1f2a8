package game

import (
	"time"

	"github.com/faiface/pixel"
	log "github.com/sirupsen/logrus"
)

// CoordinateResolver maps a window-space position to grid coordinates
type CoordinateResolver interface {
	CoordinatesAt(windowSize, position pixel.Vec) (Coordinates, bool)
}

// PressInterpreter tells a tap (uncover) from a hold (mark) for a single
// pointer. Times are offsets from any fixed origin, as long as it is the same
// for every call.
type PressInterpreter struct {
	pressing bool
	coords   Coordinates
	start    time.Duration
}

// Pressed returns the tile currently being pressed
func (interpreter *PressInterpreter) Pressed() (Coordinates, bool) {
	return interpreter.coords, interpreter.pressing
}

// Handle resolves the event position and dispatches on its phase
func (interpreter *PressInterpreter) Handle(resolver CoordinateResolver, windowSize pixel.Vec, event PointerEvent, now time.Duration) (Intent, bool) {
	coords, ok := resolver.CoordinatesAt(windowSize, event.Position)

	switch event.Phase {
	case PointerStart:
		interpreter.Start(coords, ok, now)
	case PointerMove:
		interpreter.Move(coords, ok, now)
	case PointerEnd:
		return interpreter.End(coords, ok, now)
	case PointerCancel:
		interpreter.Cancel()
	}
	return Intent{}, false
}

// Start begins tracking a press on coords. Presses off the board are ignored.
func (interpreter *PressInterpreter) Start(coords Coordinates, ok bool, now time.Duration) {
	if !ok {
		interpreter.pressing = false
		return
	}

	log.WithFields(log.Fields{"coords": coords}).Trace("Press started")
	interpreter.pressing = true
	interpreter.coords = coords
	interpreter.start = now
}

// Move retargets the press when the pointer reaches another tile, restarting
// the hold timer.
func (interpreter *PressInterpreter) Move(coords Coordinates, ok bool, now time.Duration) {
	if !interpreter.pressing || !ok || coords == interpreter.coords {
		return
	}

	interpreter.coords = coords
	interpreter.start = now
}

// End finishes the press, returning an uncover intent for a short press
// released on the pressed tile.
func (interpreter *PressInterpreter) End(coords Coordinates, ok bool, now time.Duration) (Intent, bool) {
	if !interpreter.pressing {
		return Intent{}, false
	}
	interpreter.pressing = false

	if !ok || coords != interpreter.coords || now-interpreter.start >= HoldThreshold {
		return Intent{}, false
	}

	log.WithFields(log.Fields{"coords": coords}).Info("Trying to uncover tile")
	return Uncover(coords), true
}

// Tick returns a mark intent once the press has been held long enough
func (interpreter *PressInterpreter) Tick(now time.Duration) (Intent, bool) {
	if !interpreter.pressing || now-interpreter.start < HoldThreshold {
		return Intent{}, false
	}
	interpreter.pressing = false

	log.WithFields(log.Fields{"coords": interpreter.coords}).Info("Trying to mark tile")
	return Mark(interpreter.coords), true
}

func (interpreter *PressInterpreter) Cancel() {
	interpreter.pressing = false
}
