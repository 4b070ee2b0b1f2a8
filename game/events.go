package game

import (
	"fmt"

	"github.com/faiface/pixel"
)

// Event is an output of a Session update, for the host to render
type Event interface {
	fmt.Stringer
}

type TileRevealed struct {
	Coords Coordinates
	Tile   Tile
}

type TileMarked struct {
	Coords Coordinates
	Marked bool
}

// BoardCompleted is emitted once every safe tile has been uncovered
type BoardCompleted struct{}

type BombExploded struct {
	Coords Coordinates
}

func (event TileRevealed) String() string {
	return fmt.Sprintf("revealed %v: %v", event.Coords, event.Tile)
}

func (event TileMarked) String() string {
	if event.Marked {
		return fmt.Sprintf("marked %v", event.Coords)
	}
	return fmt.Sprintf("unmarked %v", event.Coords)
}

func (BoardCompleted) String() string {
	return "board completed"
}

func (event BombExploded) String() string {
	return fmt.Sprintf("bomb exploded at %v", event.Coords)
}

type IntentKind int

const (
	UncoverIntent IntentKind = iota
	MarkIntent
)

// Intent is a request to uncover or mark a tile
type Intent struct {
	Kind   IntentKind
	Coords Coordinates
}

func Uncover(coords Coordinates) Intent {
	return Intent{Kind: UncoverIntent, Coords: coords}
}

func Mark(coords Coordinates) Intent {
	return Intent{Kind: MarkIntent, Coords: coords}
}

func (intent Intent) String() string {
	if intent.Kind == MarkIntent {
		return fmt.Sprintf("mark %v", intent.Coords)
	}
	return fmt.Sprintf("uncover %v", intent.Coords)
}

// Input is a host event consumed by Session.Update: a PointerEvent,
// ClickEvent or ResizeEvent.
type Input interface {
	isInput()
}

type PointerPhase int

const (
	PointerStart PointerPhase = iota
	PointerMove
	PointerEnd
	PointerCancel
)

// PointerEvent is a press/touch phase at a window-space position (Y down)
type PointerEvent struct {
	Phase    PointerPhase
	Position pixel.Vec
}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
)

// ClickEvent is an immediate mouse click: left uncovers, right marks
type ClickEvent struct {
	Button   MouseButton
	Position pixel.Vec
}

type ResizeEvent struct {
	Size pixel.Vec
}

func (PointerEvent) isInput() {}
func (ClickEvent) isInput()   {}
func (ResizeEvent) isInput()  {}
