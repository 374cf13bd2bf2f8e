package cmd

import (
	"context"
	"fmt"

	"wavefm/config"
	"wavefm/core/retention"
	"wavefm/db"
	"wavefm/logger"
	"wavefm/repository"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete playback history older than the retention window",
	Long:  `Run one retention sweep immediately and exit. The server also runs this sweep nightly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})
		defer logger.Sync()

		gdb, err := db.ConnectGorm(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", logger.ErrorField(err))
		}
		defer db.CloseGorm(gdb)

		playbackRepo := repository.NewGormPlaybackRepository(gdb)
		sweeper := retention.NewSweeper(playbackRepo, cfg.HistoryRetentionDays)

		removed, err := sweeper.SweepOnce(context.Background())
		if err != nil {
			logger.Fatal("Retention sweep failed", logger.ErrorField(err))
		}
		fmt.Printf("Removed %d playback events older than %d days.\n", removed, cfg.HistoryRetentionDays)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
