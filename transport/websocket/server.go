package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/pubsub"
)

const pingInterval = 15 * time.Second

type roomStreamer interface {
	Subscribe(roomID, participantID string) (*pubsub.Subscription, pubsub.Update)
	Unsubscribe(roomID string, sub *pubsub.Subscription)
}

// Server - pushes room snapshots to viewers over one websocket per viewer.
type Server struct {
	logger *slog.Logger
	rooms  roomStreamer
}

func New(logger *slog.Logger, rooms roomStreamer) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,
	}
}

// Start - serves the event stream endpoint until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	serveMux := http.NewServeMux()
	serveMux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		that.handleEvents(w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     serveMux,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleEvents - upgrades the connection, emits one snapshot immediately and
// then one update per room mutation until the client goes away. A seated
// player's disconnect keeps the seat; a spectator's disconnect leaves the
// room and is announced.
func (that *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEvents")

	roomID := r.URL.Query().Get("room_id")
	participantID := r.URL.Query().Get("player_id")

	if roomID == "" || participantID == "" {
		http.Error(w, "room_id and player_id are required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream ended")

	sub, first := that.rooms.Subscribe(roomID, participantID)
	defer that.rooms.Unsubscribe(roomID, sub)

	log = log.With("roomID", roomID, "participantID", participantID)
	log.Info("subscriber connected")

	// The feed is one-way; reads only surface the client closing.
	ctx := conn.CloseRead(r.Context())

	if err = that.writeUpdate(ctx, conn, first); err != nil {
		log.Info("failed to send initial snapshot", "error", err)
		return
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case update, ok := <-sub.Updates():
			if !ok {
				// dropped by the broker
				return
			}

			if err = that.writeUpdate(ctx, conn, update); err != nil {
				log.Info("subscriber write failed", "error", err)
				return
			}
		case <-ping.C:
			if err = conn.Ping(ctx); err != nil {
				log.Info("subscriber ping failed", "error", err)
				return
			}
		case <-ctx.Done():
			log.Info("subscriber disconnected")
			return
		}
	}
}

func (that *Server) writeUpdate(ctx context.Context, conn *websocket.Conn, update pubsub.Update) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	if err = conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("failed to write update: %w", err)
	}

	return nil
}
