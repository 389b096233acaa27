package pubsub

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// feedBacklog is how many recent events a game topic replays to a new
// subscriber before live delivery starts.
const feedBacklog = 64

// SolveEvent is one accepted solve as broadcast on a game's feed topic.
type SolveEvent struct {
	GameID         string    `json:"game_id"`
	TeamID         string    `json:"team_id"`
	TeamName       string    `json:"team_name"`
	ChallengeID    string    `json:"challenge_id"`
	ChallengeTitle string    `json:"challenge_title"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Broker is a simple in-memory pub/sub system keyed by game id.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte // game id -> subscriber channels
	backlog     map[string][][]byte      // game id -> recent events
}

var (
	once   sync.Once
	broker *Broker
)

// GetBroker returns the singleton instance of the Broker.
func GetBroker() *Broker {
	once.Do(func() {
		broker = &Broker{
			subscribers: make(map[string][]chan []byte),
			backlog:     make(map[string][][]byte),
		}
	})
	return broker
}

// Subscribe attaches to a game's solve feed. Recent events are replayed to
// the new subscriber first, then live events follow. The returned function
// detaches the subscriber and closes its channel.
func (b *Broker) Subscribe(gameID string) (<-chan []byte, func()) {
	b.mu.Lock()

	// The buffer is larger than the backlog cap, so replaying inline under
	// the lock never blocks and never races a concurrent close.
	ch := make(chan []byte, 2*feedBacklog)
	history := b.backlog[gameID]
	for _, msg := range history {
		ch <- msg
	}

	b.subscribers[gameID] = append(b.subscribers[gameID], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subscribers := b.subscribers[gameID]
		for i, sub := range subscribers {
			if sub == ch {
				b.subscribers[gameID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debugf("unsubscribed from game feed %s", gameID)
	}

	zap.S().Debugf("new subscription to game feed %s, replayed %d events", gameID, len(history))
	return ch, unsubscribe
}

// PublishSolve broadcasts a solve event to all feed subscribers of the game
// and keeps it in the bounded backlog. Delivery is best-effort: a subscriber
// with a full channel misses the event rather than blocking the publisher.
func (b *Broker) PublishSolve(event SolveEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		zap.S().Errorf("failed to encode solve event: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	backlog := append(b.backlog[event.GameID], msg)
	if len(backlog) > feedBacklog {
		backlog = backlog[len(backlog)-feedBacklog:]
	}
	b.backlog[event.GameID] = backlog

	for _, ch := range b.subscribers[event.GameID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports how many feed subscribers a game currently has.
func (b *Broker) SubscriberCount(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[gameID])
}

// CloseGame closes all subscriber channels and clears the backlog for a
// game, e.g. when the game is deleted.
func (b *Broker) CloseGame(gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[gameID]; ok {
		for _, ch := range subscribers {
			close(ch)
		}
		delete(b.subscribers, gameID)
	}
	delete(b.backlog, gameID)
	zap.S().Infof("closed solve feed for game %s", gameID)
}
