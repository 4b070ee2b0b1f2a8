package termview

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/game"
)

const (
	tickInterval     = 50 * time.Millisecond
	directorInterval = 500 * time.Millisecond
)

type view struct {
	config   game.Config
	director game.Director

	screen  tcell.Screen
	session *game.Session
	saved   bool

	start   time.Time
	lastAct time.Duration

	leftDown, rightDown bool
}

// Run plays in the terminal until the user quits with q, Esc or Ctrl-C.
// Every tile is one character cell.
func Run(config game.Config, director game.Director) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	config.Board.TileSize = game.FixedTileSize(1)
	config.Board.TilePadding = 0
	config.Board.Position = game.BoardPosition{}

	view := &view{
		config:   config,
		director: director,
		screen:   screen,
		start:    time.Now(),
	}
	if err := view.resetSession(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		view.draw()

		var inputs []game.Input
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil

		case *tcell.EventResize:
			screen.Sync()
			inputs = append(inputs, game.ResizeEvent{Size: view.windowSize()})

		case *tcell.EventKey:
			quit, err := view.handleKey(ev)
			if quit || err != nil {
				return err
			}

		case *tcell.EventMouse:
			inputs = view.mouseInputs(ev)
		}

		now := time.Since(view.start)
		view.handleEvents(view.session.Update(now, inputs))
		view.handleEvents(view.act(now))
	}
}

// windowSize leaves the bottom line for the status
func (view *view) windowSize() pixel.Vec {
	width, height := view.screen.Size()
	return pixel.V(float64(width), float64(height-1))
}

func (view *view) resetSession() error {
	session, err := view.config.NewSession(view.windowSize())
	if err != nil {
		return err
	}

	view.session = session
	view.saved = false
	view.lastAct = time.Since(view.start)
	return nil
}

func (view *view) handleKey(ev *tcell.EventKey) (bool, error) {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return true, nil

	case ev.Rune() == 'n', ev.Key() == tcell.KeyEnter && !view.session.CanPlay():
		view.config.Seed = view.session.Rand().Int63()
		return false, view.resetSession()
	}
	return false, nil
}

// mouseInputs turns button state changes into pointer phases. Positions are
// taken at the center of the character cell.
func (view *view) mouseInputs(ev *tcell.EventMouse) []game.Input {
	if view.director != nil {
		return nil
	}

	x, y := ev.Position()
	position := pixel.V(float64(x)+0.5, float64(y)+0.5)

	buttons := ev.Buttons()
	left := buttons&tcell.Button1 != 0
	right := buttons&tcell.Button2 != 0

	var inputs []game.Input
	switch {
	case left && !view.leftDown:
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerStart, Position: position})
	case left && view.leftDown:
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerMove, Position: position})
	case !left && view.leftDown:
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerEnd, Position: position})
	}

	if right && !view.rightDown {
		inputs = append(inputs, game.ClickEvent{Button: game.MouseRight, Position: position})
	}

	view.leftDown, view.rightDown = left, right
	return inputs
}

func (view *view) act(now time.Duration) []game.Event {
	if view.director == nil || !view.session.CanPlay() || now-view.lastAct < directorInterval {
		return nil
	}
	view.lastAct = now

	intent, ok := view.director.Next(view.session)
	if !ok {
		return nil
	}
	return view.session.Apply(intent)
}

func (view *view) handleEvents(events []game.Event) {
	for _, event := range events {
		log.WithFields(log.Fields{"event": event}).Trace("Session event")
	}

	if view.session.CanPlay() || view.saved {
		return
	}
	view.saved = true

	if view.config.SavedSnapshotsDir == "" {
		return
	}
	if _, err := game.SaveSnapshot(view.config.SavedSnapshotsDir, view.session, time.Now()); err != nil {
		log.WithError(err).Error("Could not save snapshot")
	}
}

func color(c game.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (view *view) draw() {
	screen := view.screen
	session := view.session
	board := session.Board()
	tileMap := session.TileMap()
	palette := session.Options().Colors
	size := session.WindowSize()

	background := tcell.StyleDefault.Background(color(palette.Background))
	screen.Fill(' ', background)

	pressed, isPressed := session.Pressed()
	exploded, hasExploded := session.Exploded()
	showBombs := session.State() == game.Lost

	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			coords := game.Coordinates{X: x, Y: y}
			tile, _ := tileMap.TileAt(coords)

			style := background.Background(color(palette.Unknown))
			char := ' '
			switch {
			case board.IsMarked(coords):
				style = style.Foreground(color(palette.Flag))
				char = 'F'
			case board.IsCovered(coords) && showBombs && tile.IsBomb():
				style = style.Foreground(color(palette.Bomb))
				char = '*'
			case board.IsCovered(coords) && isPressed && coords == pressed:
				style = style.Background(color(palette.Highlighted))
			case board.IsCovered(coords):
			case hasExploded && coords == exploded:
				style = style.Background(color(palette.Bomb))
				char = '*'
			default:
				style = style.Background(color(palette.Revealed))
				if count := tile.BombCount(); count > 0 {
					style = style.Foreground(color(palette.NumberColor(count)))
					char = rune('0' + count)
				}
			}

			origin := board.TileOrigin(size, coords)
			screen.SetContent(int(origin.X), int(origin.Y), char, nil, style)
		}
	}

	view.drawStatus(int(size.Y))
	screen.Show()
}

func (view *view) drawStatus(line int) {
	session := view.session

	status := fmt.Sprintf("%03d bombs left", int(session.TileMap().BombCount())-session.NumFlags())
	switch session.State() {
	case game.Won:
		status += "   WIN! (n: new game, q: quit)"
	case game.Lost:
		status += "   LOSE :( (n: new game, q: quit)"
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, char := range status {
		view.screen.SetContent(i, line, char, nil, style)
	}
}
