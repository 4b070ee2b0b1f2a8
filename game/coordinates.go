package game

import (
	"fmt"
	"math"
)

// Coordinates address a grid cell. Row 0 is the bottom row.
type Coordinates struct {
	X, Y uint16
}

// Offsets of the neighbors of a cell, in enumeration order:
// bottom-left, bottom, bottom-right, middle-left, middle-right, top-left,
// top, top-right
var neighborOffsets = [8][2]int8{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Add offsets the coordinates, saturating at zero and at math.MaxUint16
func (coords Coordinates) Add(dx, dy int8) Coordinates {
	return Coordinates{
		X: saturatingAdd(coords.X, dx),
		Y: saturatingAdd(coords.Y, dy),
	}
}

func (coords Coordinates) Less(other Coordinates) bool {
	if coords.X != other.X {
		return coords.X < other.X
	}
	return coords.Y < other.Y
}

func (coords Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", coords.X, coords.Y)
}

func saturatingAdd(value uint16, delta int8) uint16 {
	sum := int32(value) + int32(delta)
	switch {
	case sum < 0:
		return 0
	case sum > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(sum)
}

func lessCoordinates(a, b Coordinates) bool {
	return a.Less(b)
}
