package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchArchive interface {
	RecordConcluded(ctx context.Context, record *entity.MatchRecord) error
	GetByRoomID(ctx context.Context, roomID string) (*entity.MatchRecord, error)
}

type dbMatchArchive struct {
	client *redis.Client
}

func NewMatchArchive(client *redis.Client) MatchArchive {
	return &dbMatchArchive{
		client: client,
	}
}

// RecordConcluded - stores the result record. A rewound and re-won game
// overwrites its earlier record under the same key.
func (that *dbMatchArchive) RecordConcluded(ctx context.Context, record *entity.MatchRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal match record: %w", err)
	}

	matchKey := "match:" + record.RoomID
	if err = that.client.Set(ctx, matchKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match record: %w", err)
	}

	return nil
}

func (that *dbMatchArchive) GetByRoomID(ctx context.Context, roomID string) (*entity.MatchRecord, error) {
	matchKey := "match:" + roomID

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match record: %w", err)
	}

	var record entity.MatchRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match record: %w", err)
	}

	return &record, nil
}
