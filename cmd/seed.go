package cmd

import (
	"context"
	"fmt"

	"wavefm/config"
	"wavefm/core/auth"
	"wavefm/core/catalog"
	"wavefm/db"
	"wavefm/logger"
	"wavefm/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo catalog",
	Long:  `Create demo users, artists, songs, a playlist and a favorite so a fresh install has something to play with.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})
		defer logger.Sync()

		gdb, err := db.ConnectGorm(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", logger.ErrorField(err))
		}
		defer db.CloseGorm(gdb)

		if err := db.AutoMigrateModels(gdb,
			&model.User{},
			&model.Artist{},
			&model.Song{},
			&model.Playlist{},
			&model.PlaylistSong{},
			&model.Favorite{},
			&model.PlaybackEvent{},
		); err != nil {
			logger.Fatal("Failed to migrate database schema", logger.ErrorField(err))
		}

		if err := seed(gdb); err != nil {
			logger.Fatal("Seeding failed", logger.ErrorField(err))
		}
		fmt.Println("Seeding completed.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(gdb *gorm.DB) error {
	ctx := context.Background()

	users := make([]*model.User, 0, 2)
	for i := 1; i <= 2; i++ {
		hash, err := auth.HashPassword(fmt.Sprintf("password%d", i))
		if err != nil {
			return err
		}
		user := &model.User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: hash,
		}
		if err := gdb.WithContext(ctx).Create(user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	artists := []*model.Artist{
		{Name: "Coldplay"},
		{Name: "Señorita Sound"},
	}
	for _, artist := range artists {
		artist.NormalizedName = catalog.Normalize(artist.Name)
		if err := gdb.WithContext(ctx).Create(artist).Error; err != nil {
			return err
		}
	}

	songs := []*model.Song{
		{Title: "Fix You", Genre: "rock", DurationSeconds: 300, ArtistID: artists[0].ID},
		{Title: "Yellow", Genre: "rock", DurationSeconds: 270, ArtistID: artists[0].ID},
		{Title: "Café del Mar", Genre: "chill", DurationSeconds: 240, ArtistID: artists[1].ID},
	}
	for _, song := range songs {
		song.NormalizedTitle = catalog.Normalize(song.Title)
		// Media object keys are generated; a real installation would point
		// these at its file store.
		song.MediaURL = fmt.Sprintf("/media/songs/%s.mp3", uuid.NewString())
		song.ImageURL = fmt.Sprintf("/media/covers/%s.jpg", uuid.NewString())
		if err := gdb.WithContext(ctx).Create(song).Error; err != nil {
			return err
		}
	}

	playlist := &model.Playlist{Name: "Chill Vibes", UserID: users[0].ID}
	if err := gdb.WithContext(ctx).Create(playlist).Error; err != nil {
		return err
	}
	for _, song := range songs[:2] {
		edge := &model.PlaylistSong{PlaylistID: playlist.ID, SongID: song.ID}
		if err := gdb.WithContext(ctx).Create(edge).Error; err != nil {
			return err
		}
	}

	favorite := &model.Favorite{UserID: users[1].ID, SongID: songs[0].ID}
	return gdb.WithContext(ctx).Create(favorite).Error
}
