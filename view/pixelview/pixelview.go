package pixelview

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/they4kman/sweepcore/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	title = "sweepcore"

	// Time for a revealed tile to fade in
	revealDuration = 0.25

	// Time between two director actions
	directorInterval = 500 * time.Millisecond
)

type view struct {
	config   game.Config
	director game.Director

	win     *pixelgl.Window
	session *game.Session
	paused  bool
	saved   bool

	start     time.Time
	lastFrame time.Time
	lastAct   time.Duration

	// Progress of revealed tiles still fading in
	fades    map[game.Coordinates]*gween.Tween
	progress map[game.Coordinates]float64

	imd        *imdraw.IMDraw
	atlas      *text.Atlas
	digits     *text.Text
	statusText *text.Text
}

// Run opens a window and plays sessions built from config until it is
// closed. Without a director, the mouse plays: a short left press uncovers,
// a long one or a right click marks. It must be called through pixelgl.Run.
func Run(config game.Config, director game.Director) error {
	cfg := pixelgl.WindowConfig{
		Title:     title,
		Bounds:    pixel.R(0, 0, config.Window.X, config.Window.Y),
		Resizable: true,
		VSync:     true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return err
	}

	atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	view := &view{
		config:     config,
		director:   director,
		win:        win,
		start:      time.Now(),
		lastFrame:  time.Now(),
		imd:        imdraw.New(nil),
		atlas:      atlas,
		digits:     text.New(pixel.ZV, atlas),
		statusText: text.New(pixel.ZV, atlas),
	}

	if err := view.resetSession(false); err != nil {
		return err
	}

	var (
		frames = 0
		second = time.Tick(time.Second)
	)

	for !win.Closed() {
		win.Update()

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		if err := view.handleKeys(); err != nil {
			return err
		}

		now := time.Since(view.start)
		events := view.session.Update(now, view.inputs())
		events = append(events, view.act(now)...)
		view.handleEvents(events)

		dt := time.Since(view.lastFrame).Seconds()
		view.lastFrame = time.Now()
		view.updateFades(float32(dt))

		view.draw()
	}

	return nil
}

func (view *view) resetSession(paused bool) error {
	session, err := view.config.NewSession(view.win.Bounds().Size())
	if err != nil {
		return err
	}

	view.session = session
	view.paused = paused
	view.saved = false
	view.lastAct = 0
	view.fades = make(map[game.Coordinates]*gween.Tween)
	view.progress = make(map[game.Coordinates]float64)
	return nil
}

func (view *view) handleKeys() error {
	win := view.win

	if view.session.CanPlay() {
		if view.director == nil {
			return nil
		}

		// Pause with Space
		if win.JustPressed(pixelgl.KeySpace) {
			view.paused = !view.paused
		}

		// Perform single step while paused with Right Arrow
		if view.paused && (win.JustPressed(pixelgl.KeyRight) || win.Repeated(pixelgl.KeyRight)) {
			view.handleEvents(view.step())
		}
		return nil
	}

	// Start a new game with Enter
	if win.JustPressed(pixelgl.KeyEnter) {
		view.config.Seed = view.session.Rand().Int63()
		return view.resetSession(false)
	}

	// Start a new, paused game with Space or Right Arrow
	if win.JustPressed(pixelgl.KeySpace) || win.JustPressed(pixelgl.KeyRight) {
		view.config.Seed = view.session.Rand().Int63()
		return view.resetSession(true)
	}
	return nil
}

// inputs translates the window state into session inputs. Pixel has Y
// growing upward, while sessions expect it growing downward.
func (view *view) inputs() []game.Input {
	win := view.win
	size := win.Bounds().Size()

	var inputs []game.Input
	if size != view.session.WindowSize() {
		inputs = append(inputs, game.ResizeEvent{Size: size})
	}

	if view.director != nil || !win.MouseInsideWindow() {
		return inputs
	}

	mouse := win.MousePosition()
	position := pixel.V(mouse.X, size.Y-mouse.Y)

	switch {
	case win.JustPressed(pixelgl.MouseButtonLeft):
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerStart, Position: position})
	case win.JustReleased(pixelgl.MouseButtonLeft):
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerEnd, Position: position})
	case win.Pressed(pixelgl.MouseButtonLeft):
		inputs = append(inputs, game.PointerEvent{Phase: game.PointerMove, Position: position})
	}

	if win.JustPressed(pixelgl.MouseButtonRight) {
		inputs = append(inputs, game.ClickEvent{Button: game.MouseRight, Position: position})
	}

	return inputs
}

// act lets the director play, once per directorInterval
func (view *view) act(now time.Duration) []game.Event {
	if view.director == nil || view.paused || now-view.lastAct < directorInterval {
		return nil
	}
	view.lastAct = now
	return view.step()
}

func (view *view) step() []game.Event {
	if !view.session.CanPlay() {
		return nil
	}

	intent, ok := view.director.Next(view.session)
	if !ok {
		return nil
	}
	log.WithFields(log.Fields{"intent": intent}).Debug("Director acted")
	return view.session.Apply(intent)
}

func (view *view) handleEvents(events []game.Event) {
	for _, event := range events {
		if revealed, ok := event.(game.TileRevealed); ok {
			view.fades[revealed.Coords] = gween.New(0, 1, revealDuration, ease.OutCubic)
			view.progress[revealed.Coords] = 0
		}
	}

	if !view.session.CanPlay() && !view.saved {
		view.saved = true
		view.saveSnapshot()
	}
}

func (view *view) saveSnapshot() {
	if view.config.SavedSnapshotsDir == "" {
		return
	}

	path, err := game.SaveSnapshot(view.config.SavedSnapshotsDir, view.session, time.Now())
	if err != nil {
		log.WithError(err).Error("Could not save snapshot")
		return
	}
	log.WithFields(log.Fields{"path": path}).Info("Saved snapshot")
}

func (view *view) updateFades(dt float32) {
	for coords, tween := range view.fades {
		current, finished := tween.Update(dt)
		if finished {
			delete(view.fades, coords)
			delete(view.progress, coords)
			continue
		}
		view.progress[coords] = float64(current)
	}
}

func (view *view) draw() {
	win := view.win
	session := view.session
	board := session.Board()
	tileMap := session.TileMap()
	palette := session.Options().Colors

	size := win.Bounds().Size()
	tileSize := board.TileSize()
	inset := board.TilePadding() / 2

	win.Clear(palette.Background)
	view.imd.Clear()
	view.digits.Clear()

	// Padding shows between the tiles
	bounds := board.Bounds().Moved(size.Scaled(0.5))
	view.imd.Color = palette.Padding
	view.imd.Push(pixel.V(bounds.Min.X, size.Y-bounds.Max.Y), pixel.V(bounds.Max.X, size.Y-bounds.Min.Y))
	view.imd.Rectangle(0)

	pressed, isPressed := session.Pressed()
	exploded, hasExploded := session.Exploded()
	showBombs := session.State() == game.Lost

	for y := uint16(0); y < tileMap.Height(); y++ {
		for x := uint16(0); x < tileMap.Width(); x++ {
			coords := game.Coordinates{X: x, Y: y}
			tile, _ := tileMap.TileAt(coords)

			// Tile origins are top-left with Y down; flip them into the window
			origin := board.TileOrigin(size, coords)
			rect := pixel.R(origin.X, size.Y-origin.Y-tileSize, origin.X+tileSize, size.Y-origin.Y)
			rect = pixel.R(rect.Min.X+inset, rect.Min.Y+inset, rect.Max.X-inset, rect.Max.Y-inset)

			var fill pixel.RGBA
			switch {
			case board.IsMarked(coords):
				fill = pixel.ToRGBA(palette.Flag)
			case board.IsCovered(coords) && showBombs && tile.IsBomb():
				fill = pixel.ToRGBA(palette.Bomb).Mul(pixel.Alpha(0.5))
			case board.IsCovered(coords) && isPressed && coords == pressed:
				fill = pixel.ToRGBA(palette.Highlighted)
			case board.IsCovered(coords):
				fill = pixel.ToRGBA(palette.Unknown)
			case hasExploded && coords == exploded:
				fill = pixel.ToRGBA(palette.Bomb)
			default:
				fill = view.revealedColor(coords, palette)
				if count := tile.BombCount(); count > 0 {
					view.drawDigit(rect.Center(), count, palette)
				}
			}

			view.imd.Color = fill
			view.imd.Push(rect.Min, rect.Max)
			view.imd.Rectangle(0)
		}
	}

	view.imd.Draw(win)
	view.digits.Draw(win, pixel.IM)
	view.drawStatus(size)
}

func (view *view) revealedColor(coords game.Coordinates, palette game.Palette) pixel.RGBA {
	revealed := pixel.ToRGBA(palette.Revealed)

	progress, fading := view.progress[coords]
	if !fading {
		return revealed
	}

	unknown := pixel.ToRGBA(palette.Unknown)
	return unknown.Mul(pixel.Alpha(1 - progress)).Add(revealed.Mul(pixel.Alpha(progress)))
}

func (view *view) drawDigit(center pixel.Vec, count uint8, palette game.Palette) {
	digit := fmt.Sprint(count)

	view.digits.Color = palette.NumberColor(count)
	view.digits.Dot = center
	view.digits.Dot = view.digits.Dot.Add(center.Sub(view.digits.BoundsOf(digit).Center()))
	fmt.Fprint(view.digits, digit)
}

func (view *view) drawStatus(size pixel.Vec) {
	session := view.session
	status := view.statusText

	status.Clear()
	status.Orig = pixel.V(20, size.Y-30)
	status.Dot = status.Orig
	status.Color = colornames.White

	fmt.Fprintf(status, "%03d", int(session.TileMap().BombCount())-session.NumFlags())
	switch session.State() {
	case game.Won:
		status.Color = colornames.Green
		fmt.Fprint(status, "   WIN!")
	case game.Lost:
		status.Color = colornames.Red
		fmt.Fprint(status, "   LOSE :(")
	default:
		if view.paused {
			fmt.Fprint(status, "   PAUSED")
		}
	}

	status.Draw(view.win, pixel.IM)
}
