package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/game"
)

var simGames int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let a director play many games without a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if gameConfig.Director == "" {
			gameConfig.Director = "constraint"
		}

		director, err := newDirector(gameConfig.Director, gameConfig.Seed)
		if err != nil {
			return err
		}

		results, err := simulate(gameConfig, director, simGames)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d won, %d lost, %d unfinished of %d games (%.1f%% won)\n",
			gameConfig.Director, results.won, results.lost, results.unfinished, simGames, results.winRate()*100)
		return nil
	},
}

type simResults struct {
	won, lost, unfinished int
}

func (results simResults) winRate() float64 {
	total := results.won + results.lost + results.unfinished
	if total == 0 {
		return 0
	}
	return float64(results.won) / float64(total)
}

// simulate plays games sessions in a row. Each game is seeded from the
// generator of the one before, so a run is reproducible from its first seed.
func simulate(config game.Config, director game.Director, games int) (simResults, error) {
	var results simResults

	for i := 0; i < games; i++ {
		session, err := config.NewSession(config.Window)
		if err != nil {
			return results, errors.Wrapf(err, "game %d", i)
		}

		game.Play(session, director)

		switch session.State() {
		case game.Won:
			results.won++
		case game.Lost:
			results.lost++
		default:
			results.unfinished++
		}

		log.WithFields(log.Fields{
			"game":  i,
			"seed":  session.Seed(),
			"state": session.State(),
		}).Debug("Game finished")

		if config.SavedSnapshotsDir != "" && !session.CanPlay() {
			if _, err := game.SaveSnapshot(config.SavedSnapshotsDir, session, time.Now()); err != nil {
				log.WithError(err).Error("Could not save snapshot")
			}
		}

		config.Seed = session.Rand().Int63()
	}

	return results, nil
}

func init() {
	simCmd.Flags().IntVar(&simGames, "games", 100, "Number of games to play")
	rootCmd.AddCommand(simCmd)
}
