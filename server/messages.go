package server

import (
	"github.com/faiface/pixel"
	"github.com/they4kman/sweepcore/game"
)

// ClientMessage is one input from the client. X and Y are a window-space
// position (Y down) for pointer, click and resize messages; Col and Row
// address a tile directly for uncover and mark messages.
type ClientMessage struct {
	Type   string  `json:"type"`
	Phase  string  `json:"phase,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Col    uint16  `json:"col,omitempty"`
	Row    uint16  `json:"row,omitempty"`
}

const (
	MessagePointer = "pointer"
	MessageClick   = "click"
	MessageResize  = "resize"
	MessageUncover = "uncover"
	MessageMark    = "mark"

	MessageSetup     = "setup"
	MessageRevealed  = "revealed"
	MessageMarked    = "marked"
	MessageCompleted = "completed"
	MessageExploded  = "exploded"
	MessageState     = "state"
	MessageError     = "error"
)

var pointerPhases = map[string]game.PointerPhase{
	"start":  game.PointerStart,
	"move":   game.PointerMove,
	"end":    game.PointerEnd,
	"cancel": game.PointerCancel,
}

var mouseButtons = map[string]game.MouseButton{
	"left":  game.MouseLeft,
	"right": game.MouseRight,
}

// ServerMessage is one output to the client. Messages are sent in arrays,
// one array per batch of session events.
type ServerMessage struct {
	Type string `json:"type"`

	Setup *Setup `json:"setup,omitempty"`

	// Tile the event happened on, absent for board-wide messages
	Tile   *TileRef `json:"tile,omitempty"`
	Bomb   bool     `json:"bomb,omitempty"`
	Count  uint8    `json:"count,omitempty"`
	Marked bool     `json:"marked,omitempty"`

	State string `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

type TileRef struct {
	Col uint16 `json:"col"`
	Row uint16 `json:"row"`
}

func tileRef(coords game.Coordinates) *TileRef {
	return &TileRef{Col: coords.X, Row: coords.Y}
}

type Setup struct {
	Width    uint16     `json:"width"`
	Height   uint16     `json:"height"`
	Bombs    uint16     `json:"bombs"`
	Seed     int64      `json:"seed"`
	TileSize float64    `json:"tile_size"`
	Bounds   pixel.Rect `json:"bounds"`
	Window   pixel.Vec  `json:"window"`
}

func setupMessage(session *game.Session) ServerMessage {
	tileMap := session.TileMap()
	board := session.Board()

	return ServerMessage{
		Type: MessageSetup,
		Setup: &Setup{
			Width:    tileMap.Width(),
			Height:   tileMap.Height(),
			Bombs:    tileMap.BombCount(),
			Seed:     session.Seed(),
			TileSize: board.TileSize(),
			Bounds:   board.Bounds(),
			Window:   session.WindowSize(),
		},
	}
}

func eventMessage(event game.Event) ServerMessage {
	switch event := event.(type) {
	case game.TileRevealed:
		return ServerMessage{
			Type:  MessageRevealed,
			Tile:  tileRef(event.Coords),
			Bomb:  event.Tile.IsBomb(),
			Count: event.Tile.BombCount(),
		}
	case game.TileMarked:
		return ServerMessage{
			Type:   MessageMarked,
			Tile:   tileRef(event.Coords),
			Marked: event.Marked,
		}
	case game.BombExploded:
		return ServerMessage{
			Type: MessageExploded,
			Tile: tileRef(event.Coords),
		}
	default:
		return ServerMessage{Type: MessageCompleted}
	}
}
