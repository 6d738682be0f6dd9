package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, size int) (*entity.GameSnapshot, error)
	ResetGame(ctx context.Context, gameID string, size int) (*entity.GameSnapshot, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameSnapshot, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, x, y int) (entity.MoveResult, *entity.GameSnapshot, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Handler - returns the routes of the REST API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)

	mux.HandleFunc("POST /games", that.handleCreateGame)
	mux.HandleFunc("GET /games/{id}", that.handleGetGame)
	mux.HandleFunc("DELETE /games/{id}", that.handleDeleteGame)
	mux.HandleFunc("POST /games/{id}/reset", that.handleResetGame)
	mux.HandleFunc("POST /games/{id}/moves", that.handleMakeTurn)

	return mux
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
