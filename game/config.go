package game

import (
	"os"

	"github.com/faiface/pixel"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Board BoardOptions `yaml:"board"`

	// Seed of the first board; zero picks one from the clock
	Seed int64 `yaml:"seed"`

	// Initial window size
	Window pixel.Vec `yaml:"window"`

	// Name of the director playing the game, empty for a human player
	Director string `yaml:"director"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"snapshots_dir"`

	// Snapshot file to replay instead of generating boards
	Snapshot string `yaml:"snapshot"`
	// Whether to set all tiles as covered when loading the Snapshot
	SnapshotFresh bool `yaml:"snapshot_fresh"`

	LogLevel string `yaml:"log_level"`
}

func NewConfig() Config {
	return Config{
		Board:         DefaultBoardOptions(),
		Window:        pixel.V(700, 800),
		LogLevel:      "info",
		SnapshotFresh: true,
	}
}

// LoadConfig reads a YAML config file over the values already in config
func LoadConfig(path string, config *Config) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.UnmarshalStrict(in, config); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}

	if err := config.Board.Validate(); err != nil {
		return errors.Wrapf(err, "config %s", path)
	}
	return nil
}

// NewSession starts a game for a window of windowSize: a replay of the
// configured snapshot, or a new board from Seed.
func (config Config) NewSession(windowSize pixel.Vec) (*Session, error) {
	if config.Snapshot == "" {
		return NewSession(config.Board, windowSize, config.Seed)
	}

	in, err := os.ReadFile(config.Snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %s", config.Snapshot)
	}

	snapshot, err := LoadSnapshot(string(in))
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", config.Snapshot)
	}
	return snapshot.Restore(config.Board, windowSize, config.SnapshotFresh)
}
