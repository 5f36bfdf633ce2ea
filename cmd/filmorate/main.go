package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	httpAPI "github.com/Klementor/java-filmorate/internal/api"
	"github.com/Klementor/java-filmorate/internal/config"
	"github.com/Klementor/java-filmorate/internal/service"
	"github.com/Klementor/java-filmorate/internal/store"
)

// stores группирует реализации хранилищ одного бэкенда.
type stores struct {
	films     store.FilmStore
	users     store.UserStore
	reviews   store.ReviewStore
	genres    store.GenreStore
	mpa       store.MpaStore
	directors store.DirectorStore
	events    store.EventStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	validate := validator.New()

	st, closeStorage, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	filmService := service.NewFilmService(st.films, st.users, st.genres, st.mpa, st.directors, st.events, logger)
	userService := service.NewUserService(st.users, st.films, st.events, logger)
	reviewService := service.NewReviewService(st.reviews, st.users, st.films, st.events, logger)
	genreService := service.NewGenreService(st.genres)
	mpaService := service.NewMpaService(st.mpa)
	directorService := service.NewDirectorService(st.directors, logger)

	handler := httpAPI.NewHandler(filmService, userService, reviewService,
		genreService, mpaService, directorService, logger, validate)
	router := httpAPI.NewRouter(handler, logger)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", slog.Int("port", cfg.HTTPPort), slog.String("storage", cfg.Storage))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
}

// buildStores собирает хранилища выбранного бэкенда. Возвращаемая
// функция закрывает ресурсы бэкенда.
func buildStores(cfg *config.Config, logger *slog.Logger) (*stores, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("Using in-memory storage backend")
		return &stores{
			films:     store.NewInMemoryFilmStore(),
			users:     store.NewInMemoryUserStore(),
			reviews:   store.NewInMemoryReviewStore(),
			genres:    store.NewInMemoryGenreStore(),
			mpa:       store.NewInMemoryMpaStore(),
			directors: store.NewInMemoryDirectorStore(),
			events:    store.NewInMemoryEventStore(),
		}, func() {}, nil
	}

	db, err := connectToDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		logger.Info("Closing PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close PostgreSQL connection", slog.String("error", err.Error()))
		}
	}

	films, err := store.NewPostgresFilmStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	users, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	reviews, err := store.NewPostgresReviewStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	genres, err := store.NewPostgresGenreStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	mpa, err := store.NewPostgresMpaStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	directors, err := store.NewPostgresDirectorStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	events, err := store.NewPostgresEventStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return &stores{
		films:     films,
		users:     users,
		reviews:   reviews,
		genres:    genres,
		mpa:       mpa,
		directors: directors,
		events:    events,
	}, closeDB, nil
}

// connectToDB инициализирует соединение с базой данных.
func connectToDB(dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	logger.Info("Connecting to PostgreSQL database", slog.String("dbURL", redactPassword(dbURL)))

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping PostgreSQL database", slog.String("error", err.Error()))
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info("Successfully connected to PostgreSQL database.")
	return db, nil
}

// redactPassword маскирует пароль в строке подключения для лога.
func redactPassword(dbURL string) string {
	at := strings.LastIndex(dbURL, "@")
	scheme := strings.Index(dbURL, "://")
	if at == -1 || scheme == -1 {
		return dbURL
	}
	creds := dbURL[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon != -1 {
		creds = creds[:colon] + ":********"
	}
	return dbURL[:scheme+3] + creds + dbURL[at:]
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
