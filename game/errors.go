package game

import "github.com/pkg/errors"

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrTooManyBombs      = errors.New("bomb count must be lower than the number of tiles")
	ErrInvalidBombs      = errors.New("invalid bomb placement")
	ErrInvalidOptions    = errors.New("invalid board options")
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidSnapshot   = errors.New("invalid board snapshot")
)
