package cmd

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sweepcore/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over websockets",
	Long: `Serve games over websockets.

	GET /play?width=9&height=9&mines=10&seed=1
		Upgrades to a websocket playing one session
	GET /generate/{width}/{height}/{mines}?seed=1
		Replies with the snapshot of a new board`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.WithFields(log.Fields{"addr": serveAddr}).Info("Serving")
		return http.ListenAndServe(serveAddr, server.NewServer(gameConfig))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
