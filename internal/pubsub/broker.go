package pubsub

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// subscriptionBufferSize - per-subscriber backlog. A subscriber that falls
// this far behind is dropped rather than allowed to stall the room.
const subscriptionBufferSize = 64

// Update - one broadcast unit: a fully applied snapshot plus an optional
// human-readable event message.
type Update struct {
	State   *entity.Snapshot `json:"state"`
	Message string           `json:"message,omitempty"`
}

// Subscription - one viewer's feed of a room. Updates arrive in the exact
// order the corresponding mutations were applied; the channel closes when the
// subscriber is unsubscribed or dropped.
type Subscription struct {
	ParticipantID string

	updates   chan Update
	closeOnce sync.Once
}

func (that *Subscription) Updates() <-chan Update {
	return that.updates
}

func (that *Subscription) close() {
	that.closeOnce.Do(func() {
		close(that.updates)
	})
}

// Broker - fans out room updates to every subscriber of that room. Publishing
// never blocks: each subscription has its own buffer, and a full buffer or a
// closed connection costs only that subscriber its feed.
type Broker struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Subscription]struct{}
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		logger: logger.With("component", "pubsub"),
		rooms:  make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe - registers a new feed on the room.
func (that *Broker) Subscribe(roomID, participantID string) *Subscription {
	sub := &Subscription{
		ParticipantID: participantID,
		updates:       make(chan Update, subscriptionBufferSize),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	subs, ok := that.rooms[roomID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		that.rooms[roomID] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

// Unsubscribe - removes the feed and closes its channel. Safe to call while a
// publish is in flight, and more than once.
func (that *Broker) Unsubscribe(roomID string, sub *Subscription) {
	that.mu.Lock()
	if subs, ok := that.rooms[roomID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(that.rooms, roomID)
		}
	}
	that.mu.Unlock()

	sub.close()
}

// Publish - delivers the update to every subscriber of the room. Subscribers
// whose buffer is full are dropped, never retried inline.
func (that *Broker) Publish(roomID string, update Update) {
	that.mu.RLock()
	var stale []*Subscription
	for sub := range that.rooms[roomID] {
		select {
		case sub.updates <- update:
		default:
			stale = append(stale, sub)
		}
	}
	that.mu.RUnlock()

	for _, sub := range stale {
		that.logger.Warn("dropping slow subscriber", "roomID", roomID, "participantID", sub.ParticipantID)
		that.Unsubscribe(roomID, sub)
	}
}

// SubscriberCount - how many feeds the room currently has.
func (that *Broker) SubscriberCount(roomID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms[roomID])
}
