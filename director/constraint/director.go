package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/director/random"
	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/util/collections"
)

// Number of passes deriving new observations from overlapping ones
const simplifyRounds = 4

// Director deduces safe tiles and bombs from the revealed numbers. When
// nothing is certain, it uncovers the tile least likely to be a bomb, and
// falls back to a random pick when there is nothing to go on.
type Director struct {
	fallback *random.Director

	observations []*Observation
	seen         collections.Set[string]
}

// Observation states that numBombs of tiles are bombs. Observations read
// directly off a revealed number have an origin; derived ones don't.
type Observation struct {
	origin   *game.Coordinates
	numBombs int
	tiles    collections.Set[game.Coordinates]
}

func New(seed int64) *Director {
	return &Director{fallback: random.New(seed)}
}

func lessCoordinates(a, b game.Coordinates) bool {
	return a.Less(b)
}

func (observation *Observation) sortedTiles() []game.Coordinates {
	return observation.tiles.Sorted(lessCoordinates)
}

func (observation *Observation) key() string {
	var key strings.Builder
	for _, coords := range observation.sortedTiles() {
		key.WriteString(coords.String())
	}
	return key.String()
}

func (observation *Observation) String() string {
	var tilesRepr strings.Builder
	for i, coords := range observation.sortedTiles() {
		if i > 0 {
			tilesRepr.WriteString(", ")
		}
		tilesRepr.WriteString(coords.String())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numBombs, tilesRepr.String())
}

func (observation *Observation) BombProbability() float64 {
	return float64(observation.numBombs) / float64(observation.tiles.Len())
}

func (director *Director) Next(session *game.Session) (game.Intent, bool) {
	director.observe(session.Board())
	for i := 0; i < simplifyRounds; i++ {
		if !director.simplifyObservations() {
			break
		}
	}

	if intent, ok := director.actDeliberate(); ok {
		return intent, true
	}
	if intent, ok := director.actLowestProbability(session.Rand()); ok {
		return intent, true
	}
	return director.fallback.Next(session)
}

// observe reads one observation off every revealed number with covered
// neighbors. Marked neighbors are taken as bombs.
func (director *Director) observe(board *game.Board) {
	director.observations = nil
	director.seen = make(collections.Set[string])

	tileMap := board.TileMap()
	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			coords := game.Coordinates{X: x, Y: y}
			if board.IsCovered(coords) {
				continue
			}

			tile, _ := tileMap.TileAt(coords)
			if tile.IsBomb() {
				continue
			}

			observation := &Observation{
				origin:   &coords,
				numBombs: int(tile.BombCount()),
				tiles:    make(collections.Set[game.Coordinates]),
			}
			for _, neighbor := range board.AdjacentCoveredCoordinates(coords) {
				if board.IsMarked(neighbor) {
					observation.numBombs--
				} else {
					observation.tiles.Add(neighbor)
				}
			}

			director.addObservation(observation)
		}
	}
}

func (director *Director) addObservation(observation *Observation) bool {
	// Don't add vacuous or inconsistent observations
	if observation.tiles.Len() == 0 || observation.numBombs < 0 || observation.numBombs > observation.tiles.Len() {
		return false
	}

	// Don't add duplicates
	key := observation.key()
	if director.seen.Contains(key) {
		return false
	}
	director.seen.Add(key)

	director.observations = append(director.observations, observation)
	return true
}

// simplifyObservations derives observations on the tiles of one observation
// outside of an overlapping one. It reports whether anything new was found.
func (director *Director) simplifyObservations() bool {
	found := false

	observations := director.observations
	for _, observation := range observations {
		for _, other := range observations {
			if observation == other {
				continue
			}

			shared := observation.tiles.Intersection(other.tiles)
			if shared.Len() == 0 {
				continue
			}
			otherOnly := other.tiles.Difference(shared)
			if otherOnly.Len() == 0 {
				continue
			}
			observationOnly := observation.tiles.Difference(shared)

			// Range of bombs observation allows among the shared tiles
			maxShared := minInt(observation.numBombs, shared.Len())
			minShared := maxInt(0, observation.numBombs-observationOnly.Len())

			fewest := other.numBombs - maxShared
			most := other.numBombs - minShared

			var derived *Observation
			switch {
			case fewest == most:
				derived = &Observation{numBombs: most, tiles: otherOnly}
			case fewest == otherOnly.Len():
				derived = &Observation{numBombs: fewest, tiles: otherOnly}
			case most == 0:
				derived = &Observation{numBombs: 0, tiles: otherOnly}
			default:
				continue
			}

			if director.addObservation(derived) {
				log.WithFields(log.Fields{
					"from":    observation,
					"with":    other,
					"derived": derived,
				}).Trace("Derived observation")
				found = true
			}
		}
	}

	return found
}

// actDeliberate uncovers a tile known to be safe, or else marks a tile known
// to be a bomb.
func (director *Director) actDeliberate() (game.Intent, bool) {
	var mark *game.Intent

	for _, observation := range director.observations {
		switch observation.numBombs {
		case 0:
			coords := observation.sortedTiles()[0]
			log.WithFields(log.Fields{"observation": observation}).Debug("Uncovering safe tile")
			return game.Uncover(coords), true

		case observation.tiles.Len():
			if mark == nil {
				intent := game.Mark(observation.sortedTiles()[0])
				log.WithFields(log.Fields{"observation": observation}).Debug("Found bomb")
				mark = &intent
			}
		}
	}

	if mark != nil {
		return *mark, true
	}
	return game.Intent{}, false
}

// actLowestProbability uncovers one of the tiles least likely to hold a bomb.
// A tile seen by several observations takes its highest probability.
func (director *Director) actLowestProbability(rng *rand.Rand) (game.Intent, bool) {
	probabilities := make(map[game.Coordinates]float64)
	for _, observation := range director.observations {
		probability := observation.BombProbability()
		for coords := range observation.tiles {
			if past, ok := probabilities[coords]; !ok || probability > past {
				probabilities[coords] = probability
			}
		}
	}

	if len(probabilities) == 0 {
		return game.Intent{}, false
	}

	lowestProbability := math.Inf(1)
	for _, probability := range probabilities {
		lowestProbability = math.Min(lowestProbability, probability)
	}

	lowestProbabilityTiles := make(collections.Set[game.Coordinates])
	for coords, probability := range probabilities {
		if probability <= lowestProbability {
			lowestProbabilityTiles.Add(coords)
		}
	}

	candidates := lowestProbabilityTiles.Sorted(lessCoordinates)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	log.WithFields(log.Fields{
		"probability": lowestProbability,
		"candidates":  len(candidates),
	}).Debug("Guessing")
	return game.Uncover(candidates[0]), true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
