package cmd

import (
	"wavefm/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the WaveFM API server",
	Long:  `Start the WaveFM HTTP server: catalog, playlists, favorites, playback history and rankings.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
