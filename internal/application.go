package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/pubsub"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
	"github.com/rocketscienceinc/gomoku-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The match archive is optional: without a redis host the service keeps
	// everything in memory and concluded games simply go unrecorded.
	var archive repository.MatchArchive

	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		archive = repository.NewMatchArchive(redisStorage.Connection)
	} else {
		log.Info("no redis configured, match archive disabled")
	}

	broker := pubsub.NewBroker(logger)
	roomManager := usecase.NewRoomManager(logger, broker, archive)

	// run HTTP API server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, roomManager)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket event server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, roomManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
