package game

import (
	"math/rand"
	"time"

	"github.com/faiface/pixel"
	log "github.com/sirupsen/logrus"
)

// Session is a single game: one TileMap, its Board, and the input and
// propagation state driving it. It is not safe for concurrent use; each host
// owns its Session from one goroutine.
type Session struct {
	options    BoardOptions
	seed       int64
	rand       *rand.Rand
	windowSize pixel.Vec

	tileMap    *TileMap
	board      *Board
	propagator *Propagator
	press      PressInterpreter

	state    BoardState
	exploded *Coordinates
}

// NewSession generates a new game from options, laid out for windowSize
func NewSession(options BoardOptions, windowSize pixel.Vec, seed int64) (*Session, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	tileMap, err := GenerateTileMap(options.Width, options.Height, options.BombCount, rng)
	if err != nil {
		return nil, err
	}

	session := newSession(options, windowSize, seed, rng, tileMap)

	if options.SafeStart {
		if coords, ok := tileMap.SafeStart(); ok {
			log.WithFields(log.Fields{"coords": coords}).Debug("Uncovering safe start")
			session.propagator.Request(coords)
		}
	}

	return session, nil
}

func newSession(options BoardOptions, windowSize pixel.Vec, seed int64, rng *rand.Rand, tileMap *TileMap) *Session {
	tileSize := options.ComputeTileSize(windowSize)
	board := NewBoard(tileMap, options.ComputeBounds(tileSize), tileSize, options.TilePadding)

	log.WithFields(log.Fields{
		"width":    tileMap.Width(),
		"height":   tileMap.Height(),
		"bombs":    tileMap.BombCount(),
		"seed":     seed,
		"tileSize": tileSize,
	}).Info("Created board")

	return &Session{
		options:    options,
		seed:       seed,
		rand:       rng,
		windowSize: windowSize,
		tileMap:    tileMap,
		board:      board,
		propagator: NewPropagator(board),
		state:      Ongoing,
	}
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) TileMap() *TileMap {
	return session.tileMap
}

func (session *Session) Options() BoardOptions {
	return session.options
}

func (session *Session) State() BoardState {
	return session.state
}

func (session *Session) Seed() int64 {
	return session.seed
}

// Rand is the session's seeded random source, for choosing follow-up seeds
// and for directors.
func (session *Session) Rand() *rand.Rand {
	return session.rand
}

func (session *Session) WindowSize() pixel.Vec {
	return session.windowSize
}

func (session *Session) CanPlay() bool {
	return session.state == Ongoing
}

// Exploded returns the bomb which lost the game
func (session *Session) Exploded() (Coordinates, bool) {
	if session.exploded == nil {
		return Coordinates{}, false
	}
	return *session.exploded, true
}

// Pressed returns the tile under a pending press, for highlighting
func (session *Session) Pressed() (Coordinates, bool) {
	return session.press.Pressed()
}

// Pending returns the number of uncover requests not yet processed
func (session *Session) Pending() int {
	return session.propagator.Pending()
}

// NumFlags returns the number of marked tiles
func (session *Session) NumFlags() int {
	return len(session.board.markedTiles)
}

func (session *Session) Resize(windowSize pixel.Vec) {
	if windowSize == session.windowSize {
		return
	}
	session.windowSize = windowSize
	session.board.Relayout(windowSize, session.options)
}

// Update consumes one batch of host inputs, ticks the press interpreter and
// advances uncover propagation. With StagedReveal, one flood layer is
// processed per update; otherwise propagation runs to completion.
func (session *Session) Update(now time.Duration, inputs []Input) []Event {
	var events []Event

	for _, input := range inputs {
		switch input := input.(type) {
		case ResizeEvent:
			session.Resize(input.Size)

		case PointerEvent:
			intent, ok := session.press.Handle(session.board, session.windowSize, input, now)
			if ok {
				events = session.apply(intent, events)
			}

		case ClickEvent:
			coords, ok := session.board.CoordinatesAt(session.windowSize, input.Position)
			if !ok {
				continue
			}
			switch input.Button {
			case MouseLeft:
				events = session.apply(Uncover(coords), events)
			case MouseRight:
				events = session.apply(Mark(coords), events)
			}
		}
	}

	if intent, ok := session.press.Tick(now); ok {
		events = session.apply(intent, events)
	}

	if session.options.StagedReveal {
		return session.record(events, session.propagator.Step())
	}
	return session.record(events, session.propagator.Run())
}

// Settle runs pending propagation, such as the safe start request, to a
// fixed point. Hosts that never call Update settle before playing.
func (session *Session) Settle() []Event {
	return session.record(nil, session.propagator.Run())
}

// Uncover requests coords be uncovered and propagates to completion
func (session *Session) Uncover(coords Coordinates) []Event {
	if !session.CanPlay() {
		return nil
	}
	session.propagator.Request(coords)
	return session.record(nil, session.propagator.Run())
}

// ToggleMark flips the mark on a covered tile
func (session *Session) ToggleMark(coords Coordinates) []Event {
	if !session.CanPlay() {
		return nil
	}

	handle, marked, ok := session.board.TryToggleMark(coords)
	if !ok {
		log.WithFields(log.Fields{"coords": coords}).Debug("Tried to mark an uncovered tile")
		return nil
	}

	log.WithFields(log.Fields{
		"coords": coords,
		"handle": handle,
		"marked": marked,
	}).Debug("Toggled mark")
	return []Event{TileMarked{Coords: coords, Marked: marked}}
}

// Apply performs an intent, as produced by a director or a host
func (session *Session) Apply(intent Intent) []Event {
	if intent.Kind == MarkIntent {
		return session.ToggleMark(intent.Coords)
	}
	return session.Uncover(intent.Coords)
}

func (session *Session) apply(intent Intent, events []Event) []Event {
	if !session.CanPlay() {
		return events
	}

	if intent.Kind == MarkIntent {
		return append(events, session.ToggleMark(intent.Coords)...)
	}
	session.propagator.Request(intent.Coords)
	if session.options.StagedReveal {
		return events
	}
	// Later inputs of the batch see this uncover already done
	return session.record(events, session.propagator.Run())
}

// record updates the session state from propagation events. A loss takes
// precedence over completion, which is then dropped.
func (session *Session) record(events []Event, propagated []Event) []Event {
	for _, event := range propagated {
		switch event := event.(type) {
		case BombExploded:
			if session.state == Ongoing {
				session.state = Lost
				coords := event.Coords
				session.exploded = &coords
			}
		case BoardCompleted:
			if session.state != Ongoing {
				continue
			}
			session.state = Won
		}
		events = append(events, event)
	}
	return events
}
