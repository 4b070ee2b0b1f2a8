package random

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/game"
)

// Director uncovers covered, unmarked tiles in a shuffled order
type Director struct {
	rand *rand.Rand

	tileMap *game.TileMap
	order   []game.Coordinates
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Next(session *game.Session) (game.Intent, bool) {
	board := session.Board()
	if director.tileMap != session.TileMap() {
		director.shuffle(session.TileMap())
	}

	for _, coords := range director.order {
		if board.IsCovered(coords) && !board.IsMarked(coords) {
			log.WithFields(log.Fields{"coords": coords}).Debug("Random pick")
			return game.Uncover(coords), true
		}
	}
	return game.Intent{}, false
}

func (director *Director) shuffle(tileMap *game.TileMap) {
	director.tileMap = tileMap
	director.order = make([]game.Coordinates, 0, tileMap.NumTiles())
	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			director.order = append(director.order, game.Coordinates{X: x, Y: y})
		}
	}

	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}
