package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/pubsub"
)

const defaultDisplayName = "Player"

type matchArchive interface {
	RecordConcluded(ctx context.Context, record *entity.MatchRecord) error
}

// JoinResult - what a joiner gets back: their identity, their seat (or
// spectator role) and the state they start from.
type JoinResult struct {
	RoomID   string
	PlayerID string
	Color    string
	State    *entity.Snapshot
}

// RoomManager - the room registry and the single entry point for every
// mutation. Each operation runs under the target room's lock from validation
// through broadcast, so subscribers observe snapshots in mutation order and
// racing requests against one room are serialized. Rooms live for the
// process lifetime; there is no expiry.
type RoomManager struct {
	logger  *slog.Logger
	broker  *pubsub.Broker
	archive matchArchive // nil when no redis is configured

	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomManager(logger *slog.Logger, broker *pubsub.Broker, archive matchArchive) *RoomManager {
	return &RoomManager{
		logger:  logger.With("component", "rooms"),
		broker:  broker,
		archive: archive,
		rooms:   make(map[string]*entity.Room),
	}
}

// ResolveRoom - returns the room with the given id, creating it lazily for an
// unknown id. An empty id mints a fresh one.
func (that *RoomManager) ResolveRoom(id string) *entity.Room {
	if id == "" {
		id = pkg.GenerateRoomID()
	}

	that.mu.RLock()
	room, ok := that.rooms[id]
	that.mu.RUnlock()

	if ok {
		return room
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if room, ok = that.rooms[id]; ok {
		return room
	}

	room = entity.NewRoom(id)
	that.rooms[id] = room
	that.logger.Info("room created", "roomID", id)

	return room
}

// Join - seats the joiner (black, then white, then spectator) and announces
// the arrival to the room.
func (that *RoomManager) Join(_ context.Context, roomID, name string) (*JoinResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultDisplayName
	}

	room := that.ResolveRoom(roomID)
	participantID := pkg.GenerateParticipantID()

	room.Lock()
	defer room.Unlock()

	color := room.AddParticipant(participantID, name)

	message := fmt.Sprintf("%s joined the room as %s", name, color)
	if color == entity.ColorSpectator {
		message = fmt.Sprintf("%s joined the room as a spectator", name)
	}

	state := room.Snapshot()
	that.broker.Publish(room.ID, pubsub.Update{State: state, Message: message})

	return &JoinResult{
		RoomID:   room.ID,
		PlayerID: participantID,
		Color:    color,
		State:    state,
	}, nil
}

// Move - applies a placement (optionally carrying the fly skill) and
// broadcasts the result. A failed placement mutates nothing and is reported
// to the requester only.
func (that *RoomManager) Move(ctx context.Context, roomID, playerID string, x, y int, skillID string) error {
	room := that.ResolveRoom(roomID)

	room.Lock()

	outcome, err := gomoku.Place(room, playerID, x, y, skillID)
	if err != nil {
		room.Unlock()
		return fmt.Errorf("failed to place stone: %w", err)
	}

	var record *entity.MatchRecord
	if outcome.Won {
		record = &entity.MatchRecord{
			RoomID:     room.ID,
			Winner:     room.Winner,
			Moves:      room.History.Len(),
			StartedAt:  room.CreatedAt,
			FinishedAt: time.Now(),
		}
	}

	that.broker.Publish(room.ID, pubsub.Update{
		State:   room.Snapshot(),
		Message: moveMessage(outcome),
	})

	room.Unlock()

	if record != nil {
		that.recordConcluded(ctx, record)
	}

	return nil
}

// UseSkill - applies a standalone skill (force_skip, time_rewind, star_pick)
// and broadcasts the result.
func (that *RoomManager) UseSkill(_ context.Context, roomID, playerID, skillID string, target *entity.Point) error {
	room := that.ResolveRoom(roomID)

	room.Lock()
	defer room.Unlock()

	outcome, err := gomoku.UseSkill(room, playerID, skillID, target)
	if err != nil {
		return fmt.Errorf("failed to use skill: %w", err)
	}

	that.broker.Publish(room.ID, pubsub.Update{
		State:   room.Snapshot(),
		Message: skillMessage(outcome),
	})

	return nil
}

// Subscribe - registers a feed on the room and returns it together with the
// snapshot the feed starts from. Registering under the room lock guarantees
// the first snapshot and the subsequent updates form one gapless sequence.
func (that *RoomManager) Subscribe(roomID, participantID string) (*pubsub.Subscription, pubsub.Update) {
	room := that.ResolveRoom(roomID)

	room.Lock()
	defer room.Unlock()

	sub := that.broker.Subscribe(room.ID, participantID)

	return sub, pubsub.Update{State: room.Snapshot()}
}

// Unsubscribe - ends the feed. A departing spectator leaves the room and the
// departure is announced; a seated player keeps the seat for reconnection.
func (that *RoomManager) Unsubscribe(roomID string, sub *pubsub.Subscription) {
	room := that.ResolveRoom(roomID)

	that.broker.Unsubscribe(room.ID, sub)

	room.Lock()
	defer room.Unlock()

	spectator, ok := room.RemoveSpectator(sub.ParticipantID)
	if !ok {
		return
	}

	that.broker.Publish(room.ID, pubsub.Update{
		State:   room.Snapshot(),
		Message: fmt.Sprintf("%s left the room", spectator.Name),
	})
}

func (that *RoomManager) recordConcluded(ctx context.Context, record *entity.MatchRecord) {
	if that.archive == nil {
		return
	}

	if err := that.archive.RecordConcluded(ctx, record); err != nil {
		that.logger.Error("failed to archive concluded match", "roomID", record.RoomID, "error", err)
	}
}

func moveMessage(outcome gomoku.MoveOutcome) string {
	player := outcome.Player

	switch {
	case outcome.Won:
		return fmt.Sprintf("%s wins with five in a row", player.Name)
	case outcome.ExtraTurn:
		return fmt.Sprintf("%s used Fly Step and keeps the turn", player.Name)
	case outcome.SkipConsumed:
		return fmt.Sprintf("%s's forced skip triggered, %s moves again", player.Name, player.Name)
	default:
		return fmt.Sprintf("%s placed a %s stone", player.Name, player.Color)
	}
}

func skillMessage(outcome gomoku.SkillOutcome) string {
	player := outcome.Player

	switch outcome.SkillID {
	case entity.SkillForceSkip:
		return fmt.Sprintf("%s used Force Skip, %s forfeits the next turn", player.Name, entity.OpponentColor(player.Color))
	case entity.SkillStarPick:
		return fmt.Sprintf("%s used Star Pick and removed an opponent's stone", player.Name)
	case entity.SkillTimeRewind:
		if outcome.Reverted.Type == entity.EntryRemove {
			return fmt.Sprintf("%s used Time Rewind and restored the removed stone", player.Name)
		}

		return fmt.Sprintf("%s used Time Rewind and took back the last move", player.Name)
	default:
		return fmt.Sprintf("%s used %s", player.Name, outcome.SkillID)
	}
}
