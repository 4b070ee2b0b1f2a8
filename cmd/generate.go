package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a new board and its snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := gameConfig.NewSession(gameConfig.Window)
		if err != nil {
			return err
		}
		session.Settle()

		serialized, err := session.Snapshot().Serialize()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, session.TileMap().ConsoleOutput())
		fmt.Fprintln(out)
		fmt.Fprint(out, serialized)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
