package game

import (
	"github.com/gammazero/deque"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/util/collections"
)

// Propagator uncovers requested tiles, flooding through Empty tiles. The
// worklist is drained one frontier layer per Step, or entirely by Run.
type Propagator struct {
	board *Board

	queue  deque.Deque
	queued collections.Set[Coordinates]

	exploded  bool
	completed bool
}

func NewPropagator(board *Board) *Propagator {
	return &Propagator{
		board:  board,
		queued: make(collections.Set[Coordinates]),
	}
}

// Request enqueues an uncover of coords
func (propagator *Propagator) Request(coords Coordinates) {
	// Don't queue twice
	if propagator.queued.Contains(coords) {
		return
	}

	propagator.queued.Add(coords)
	propagator.queue.PushBack(coords)
}

// Pending returns the number of requests waiting to be processed
func (propagator *Propagator) Pending() int {
	return propagator.queue.Len()
}

func (propagator *Propagator) Exploded() bool {
	return propagator.exploded
}

// Step processes the requests queued so far. Requests they issue are left
// for the next Step.
func (propagator *Propagator) Step() []Event {
	var events []Event

	for n := propagator.queue.Len(); n > 0; n-- {
		coords := propagator.queue.PopFront().(Coordinates)
		propagator.queued.Remove(coords)

		events = propagator.uncover(coords, events)
	}

	if propagator.queue.Len() == 0 {
		events = propagator.settle(events)
	}
	return events
}

// Run processes requests until none are left
func (propagator *Propagator) Run() []Event {
	events := propagator.Step()
	for propagator.queue.Len() > 0 {
		events = append(events, propagator.Step()...)
	}
	return events
}

func (propagator *Propagator) uncover(coords Coordinates, events []Event) []Event {
	board := propagator.board

	if _, ok := board.TileToUncover(coords); !ok {
		log.WithFields(log.Fields{"coords": coords}).Debug("Tried to uncover a marked or already uncovered tile")
		return events
	}

	handle, _ := board.TryUncoverTile(coords)
	tile, _ := board.TileMap().TileAt(coords)
	log.WithFields(log.Fields{
		"coords": coords,
		"handle": handle,
		"tile":   tile,
	}).Debug("Uncovered tile")

	events = append(events, TileRevealed{Coords: coords, Tile: tile})

	switch {
	case tile.IsBomb():
		log.WithFields(log.Fields{"coords": coords}).Info("Boom !")
		propagator.exploded = true
		events = append(events, BombExploded{Coords: coords})

	case tile.IsEmpty():
		for _, neighbor := range board.AdjacentCoveredCoordinates(coords) {
			propagator.Request(neighbor)
		}
	}

	return events
}

func (propagator *Propagator) settle(events []Event) []Event {
	if !propagator.completed && propagator.board.IsCompleted() {
		propagator.completed = true
		log.Info("Board completed")
		events = append(events, BoardCompleted{})
	}
	return events
}
