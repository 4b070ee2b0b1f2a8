package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/sweepcore/director/constraint"
	"github.com/they4kman/sweepcore/director/random"
	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/view/pixelview"
)

var gameConfig = game.NewConfig()
var configPath string

var rootCmd = &cobra.Command{
	Use:   "sweepcore",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `sweepcore is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	sweepcore

Use the director flag to make the computer play for you
	sweepcore --director constraint

Play in the terminal, or serve games over websockets
	sweepcore term
	sweepcore serve --addr :8080
`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		director, err := newDirector(gameConfig.Director, gameConfig.Seed)
		if err != nil {
			return err
		}

		var runErr error
		pixelgl.Run(func() {
			runErr = pixelview.Run(gameConfig, director)
		})
		return runErr
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads the config file under the flags given on the command line,
// and applies the global settings.
func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		// Flags set on the command line win over the config file
		changed := make(map[string]string)
		cmd.Flags().Visit(func(flag *pflag.Flag) {
			changed[flag.Name] = flag.Value.String()
		})

		if err := game.LoadConfig(configPath, &gameConfig); err != nil {
			return err
		}

		for name, value := range changed {
			if err := cmd.Flags().Set(name, value); err != nil {
				return errors.Wrapf(err, "flag --%s", name)
			}
		}
	}

	level, err := log.ParseLevel(gameConfig.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	log.SetLevel(level)

	if gameConfig.Seed == 0 {
		gameConfig.Seed = time.Now().UnixNano()
	}
	log.WithFields(log.Fields{"seed": gameConfig.Seed}).Debug("Seeded")

	return gameConfig.Board.Validate()
}

var directors = map[string]func(seed int64) game.Director{
	"random": func(seed int64) game.Director {
		return random.New(seed)
	},
	"constraint": func(seed int64) game.Director {
		return constraint.New(seed)
	},
}

// newDirector returns the named director, or nil for a human player
func newDirector(name string, seed int64) (game.Director, error) {
	if name == "" {
		return nil, nil
	}

	newDirector, ok := directors[name]
	if !ok {
		return nil, errors.Errorf("unknown director %q", name)
	}
	return newDirector(seed), nil
}

type tileSizeValue game.TileSizeOption

func newTileSizeValue(val game.TileSizeOption, p *game.TileSizeOption) *tileSizeValue {
	*p = val
	return (*tileSizeValue)(p)
}

func (sizeVal *tileSizeValue) String() string {
	return game.TileSizeOption(*sizeVal).String()
}

func (sizeVal *tileSizeValue) Set(value string) error {
	option, err := game.ParseTileSizeOption(value)
	if err != nil {
		return err
	}
	*sizeVal = tileSizeValue(option)
	return nil
}

func (sizeVal *tileSizeValue) Type() string {
	return "game.TileSizeOption"
}

func init() {
	flags := rootCmd.PersistentFlags()

	// Define our -help without a shorthand, as we'll use -h for --height.
	// Persistent, so subcommands find it instead of adding their own -h.
	// Ref: https://github.com/spf13/cobra/issues/291
	flags.Bool("help", false, "Help for this command")

	board := &gameConfig.Board
	flags.StringVar(&configPath, "config", "", "YAML config file; flags given on the command line override it")
	flags.Uint16VarP(&board.Width, "width", "w", board.Width, "Width of game board, in tiles")
	flags.Uint16VarP(&board.Height, "height", "h", board.Height, "Height of game board, in tiles")
	flags.Uint16VarP(&board.BombCount, "mines", "m", board.BombCount, "Number of mines to place in the game board")
	flags.BoolVar(&board.SafeStart, "safe-start", board.SafeStart, "Uncover an empty tile as soon as the game starts")
	flags.BoolVar(&board.StagedReveal, "staged", board.StagedReveal, "Reveal flooded tiles one layer per frame")
	flags.Var(newTileSizeValue(board.TileSize, &board.TileSize), "tile-size", `Tile size, in pixels.
fixed: a single size, as "24" or "fixed:24"
adaptive: fit the window within a range, as "10-50" or "adaptive:10-50"`)

	flags.Int64Var(&gameConfig.Seed, "seed", 0, "Seed of the first game; 0 picks one from the clock")
	flags.StringVarP(&gameConfig.Director, "director", "d", "", "Make the computer play: random or constraint")
	flags.StringVar(&gameConfig.SavedSnapshotsDir, "snapshots-dir", "", "Directory where the final board of every game is saved")
	flags.StringVar(&gameConfig.Snapshot, "snapshot", "", "Replay the board of a saved snapshot")
	flags.BoolVar(&gameConfig.SnapshotFresh, "fresh", gameConfig.SnapshotFresh, "Cover every tile of the replayed snapshot")
	flags.StringVar(&gameConfig.LogLevel, "log-level", gameConfig.LogLevel, "Log level: trace, debug, info, warn, error")
}
