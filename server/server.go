package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wavefm/config"
	"wavefm/core/auth"
	"wavefm/core/history"
	"wavefm/core/library"
	"wavefm/core/ranking"
	"wavefm/core/retention"
	"wavefm/db"
	"wavefm/logger"
	"wavefm/model"
	"wavefm/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until interrupted.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogOutputPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
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

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis(redisClient)
	logger.Info("Successfully connected to Redis")

	userRepo := repository.NewGormUserRepository(gdb)
	songRepo := repository.NewGormSongRepository(gdb)
	playlistRepo := repository.NewGormPlaylistRepository(gdb)
	favoriteRepo := repository.NewGormFavoriteRepository(gdb)
	playbackRepo := repository.NewGormPlaybackRepository(gdb)

	rankingAgg := ranking.NewAggregator(playbackRepo, songRepo)
	librarySvc := library.NewService(playlistRepo, favoriteRepo, songRepo)
	historySvc := history.NewService(playbackRepo, songRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	blacklist := auth.NewBlacklist(redisClient)

	apiHandler := NewAPIHandler(cfg, userRepo, songRepo, rankingAgg, librarySvc, historySvc, tokens, blacklist)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestLogMiddleware)

	// Auth
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", apiHandler.AuthMiddleware(apiHandler.LogoutHandler)).Methods(http.MethodPost)

	// Users
	router.HandleFunc("/api/users/me", apiHandler.AuthMiddleware(apiHandler.MeHandler)).Methods(http.MethodGet)

	// Catalog
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.GetSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/top", apiHandler.AuthMiddleware(apiHandler.TopSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/genres", apiHandler.AuthMiddleware(apiHandler.GenresHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", apiHandler.AuthMiddleware(apiHandler.GetSongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}/play", apiHandler.AuthMiddleware(apiHandler.PlaySongHandler)).Methods(http.MethodPost)

	// Favorites
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.GetFavoritesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/{songId}", apiHandler.AuthMiddleware(apiHandler.AddFavoriteHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{songId}", apiHandler.AuthMiddleware(apiHandler.RemoveFavoriteHandler)).Methods(http.MethodDelete)

	// Playlists
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.GetPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.RenamePlaylistHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/songs", apiHandler.AuthMiddleware(apiHandler.GetPlaylistSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/songs", apiHandler.AuthMiddleware(apiHandler.AddPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", apiHandler.AuthMiddleware(apiHandler.RemovePlaylistSongHandler)).Methods(http.MethodDelete)

	// History
	router.HandleFunc("/api/history", apiHandler.AuthMiddleware(apiHandler.GetHistoryHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/history/stats", apiHandler.AuthMiddleware(apiHandler.GetStatsHandler)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// The retention sweeper runs for the lifetime of the server and stops
	// with it.
	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()
	sweeper := retention.NewSweeper(playbackRepo, cfg.HistoryRetentionDays)
	go sweeper.Run(sweeperCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")
	cancelSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// corsMiddleware allows cross-origin requests from any frontend origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware tags every request with an ID and logs method, path
// and duration.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		logger.Info("request handled",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Duration("elapsed", time.Since(start)))
	})
}
