package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type gameUseCase interface {
	Join(ctx context.Context, roomID, name string) (*usecase.JoinResult, error)
	Move(ctx context.Context, roomID, playerID string, x, y int, skillID string) error
	UseSkill(ctx context.Context, roomID, playerID, skillID string, target *entity.Point) error
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

// Start - serves the request/response API until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	router := mux.NewRouter()
	router.HandleFunc("/api/join", that.handleJoin).Methods(http.MethodPost)
	router.HandleFunc("/api/move", that.handleMove).Methods(http.MethodPost)
	router.HandleFunc("/api/skill", that.handleSkill).Methods(http.MethodPost)
	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
