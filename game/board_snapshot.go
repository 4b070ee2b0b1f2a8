package game

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/pixel"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a serialized board. Rows are written top row first, one
// character per tile:
//
//	*  uncovered bomb        .  uncovered safe tile
//	F  marked bomb           f  marked safe tile
//	O  covered bomb          #  covered safe tile
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

// Snapshot serializes the current state of the session
func (session *Session) Snapshot() *BoardSnapshot {
	board := session.board
	tileMap := session.tileMap

	rows := make([]string, 0, tileMap.Height())
	for y := int(tileMap.Height()) - 1; y >= 0; y-- {
		var row strings.Builder
		for x := uint16(0); x < tileMap.Width(); x++ {
			coords := Coordinates{X: x, Y: uint16(y)}
			row.WriteByte(serializeTile(tileMap.IsBombAt(coords), board.IsCovered(coords), board.IsMarked(coords)))
		}
		rows = append(rows, row.String())
	}

	return &BoardSnapshot{
		Seed:            session.seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
}

func serializeTile(isBomb, isCovered, isMarked bool) byte {
	switch {
	case isBomb:
		switch {
		case !isCovered:
			return '*'
		case isMarked:
			return 'F'
		default:
			return 'O'
		}
	case isMarked:
		return 'f'
	case !isCovered:
		return '.'
	default:
		return '#'
	}
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "serializing snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	return &snapshot, nil
}

func (snapshot *BoardSnapshot) rows() ([]string, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidSnapshot, "empty board")
	}

	if len(rows) > math.MaxUint16 || len(rows[0]) > math.MaxUint16 {
		return nil, errors.Wrapf(ErrInvalidSnapshot, "board of %dx%d tiles is too large", len(rows[0]), len(rows))
	}

	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "row %d has %d tiles, expected %d", i, len(row), len(rows[0]))
		}
	}
	return rows, nil
}

// Restore rebuilds a session from the snapshot. The snapshot decides the map
// dimensions and bombs; everything else comes from options. With fresh, every
// tile starts covered and unmarked.
func (snapshot *BoardSnapshot) Restore(options BoardOptions, windowSize pixel.Vec, fresh bool) (*Session, error) {
	rows, err := snapshot.rows()
	if err != nil {
		return nil, err
	}

	height := uint16(len(rows))
	width := uint16(len(rows[0]))

	var bombs []Coordinates
	for i, row := range rows {
		y := height - uint16(i) - 1
		for x, c := range []byte(row) {
			switch c {
			case '*', 'F', 'O':
				bombs = append(bombs, Coordinates{X: uint16(x), Y: y})
			case 'f', '.', '#':
			default:
				return nil, errors.Wrapf(ErrInvalidSnapshot, "unknown tile %q at (%d, %d)", c, x, y)
			}
		}
	}

	tileMap, err := NewTileMap(width, height, bombs)
	if err != nil {
		return nil, errors.Wrap(err, "restoring snapshot")
	}

	options.Width, options.Height, options.BombCount = width, height, uint16(len(bombs))
	if err := options.Validate(); err != nil {
		return nil, err
	}

	session := newSession(options, windowSize, snapshot.Seed, rand.New(rand.NewSource(snapshot.Seed)), tileMap)
	if fresh {
		return session, nil
	}

	board := session.board
	for i, row := range rows {
		y := height - uint16(i) - 1
		for x, c := range []byte(row) {
			coords := Coordinates{X: uint16(x), Y: y}
			switch c {
			case '*':
				board.TryUncoverTile(coords)
				session.state = Lost
				session.exploded = &coords
			case '.':
				board.TryUncoverTile(coords)
			case 'F', 'f':
				board.TryToggleMark(coords)
			}
		}
	}

	if session.state == Ongoing && board.IsCompleted() {
		session.state = Won
		session.propagator.completed = true
	}

	return session, nil
}

// SaveSnapshot writes the session to dir, in a file named after t and the
// outcome of the game. It returns the path written.
func SaveSnapshot(dir string, session *Session, t time.Time) (string, error) {
	stat, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0777); err != nil {
			return "", errors.Wrapf(err, "creating snapshots dir %s", dir)
		}
	case err != nil:
		return "", errors.Wrapf(err, "checking snapshots dir %s", dir)
	case !stat.Mode().IsDir():
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", dir)
	}

	out, err := session.Snapshot().Serialize()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, snapshotFilename(session.State(), t))
	// TODO: prevent duplicate filenames when two games end within a second
	if err := os.WriteFile(path, []byte(out), 0666); err != nil {
		return "", errors.Wrapf(err, "writing snapshot %s", path)
	}
	return path, nil
}

func snapshotFilename(state BoardState, t time.Time) string {
	var filename strings.Builder

	filename.WriteString(t.Format("20060102_150405_"))
	filename.WriteString(state.String())
	filename.WriteString(".yaml")

	return filename.String()
}
