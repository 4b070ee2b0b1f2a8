package cmd

import (
	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/view/termview"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	Long: `Play in the terminal, one character cell per tile.

Left click uncovers a tile, right click or a long press marks it.
Press n for a new game, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		director, err := newDirector(gameConfig.Director, gameConfig.Seed)
		if err != nil {
			return err
		}
		return termview.Run(gameConfig, director)
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}
