package game

import (
	"fmt"
	"time"
)

// Tile is the classification of a single grid cell. Values 1 through 8 are
// the number of neighboring bombs.
type Tile uint8
type BoardState int

const (
	Empty Tile = iota
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Bomb
)

const (
	Ongoing BoardState = iota
	Won
	Lost
)

// HoldThreshold is how long a press must last to mark instead of uncover
const HoldThreshold = 500 * time.Millisecond

// BombNeighbor returns the tile for a safe cell with count neighboring bombs.
// A count of zero is Empty.
func BombNeighbor(count uint8) Tile {
	if count > uint8(Number8) {
		count = uint8(Number8)
	}
	return Tile(count)
}

func (tile Tile) IsBomb() bool {
	return tile == Bomb
}

func (tile Tile) IsEmpty() bool {
	return tile == Empty
}

// BombCount returns the neighbor count of a BombNeighbor tile, or zero
func (tile Tile) BombCount() uint8 {
	if tile.IsBomb() {
		return 0
	}
	return uint8(tile)
}

func (tile Tile) String() string {
	switch {
	case tile.IsBomb():
		return "Bomb"
	case tile.IsEmpty():
		return "Empty"
	default:
		return fmt.Sprintf("BombNeighbor(%d)", tile.BombCount())
	}
}

func (tile Tile) consoleOutput() byte {
	switch {
	case tile.IsBomb():
		return '*'
	case tile.IsEmpty():
		return ' '
	default:
		return '0' + tile.BombCount()
	}
}

func (state BoardState) String() string {
	switch state {
	case Ongoing:
		return "ongoing"
	case Won:
		return "win"
	case Lost:
		return "loss"
	default:
		return "other"
	}
}
