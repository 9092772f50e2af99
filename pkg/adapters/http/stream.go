package http

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
)

// StreamManager fans outbound reports out to the SSE subscribers of a session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan domain.Message]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan domain.Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for a session. The returned function
// unregisters and closes it.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan domain.Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan domain.Message, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan domain.Message]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Broadcast delivers msg to every subscriber of the session. Slow subscribers
// with a full buffer miss the message.
func (sm *StreamManager) Broadcast(sessionID string, msg domain.Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID, "type", msg.Type)
		}
	}
}

// Subscribers returns how many streams are open for a session.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Host routes a session's reports to its subscribers.
func (sm *StreamManager) Host(sessionID string) ports.Host {
	return ports.MessageHost(func(_ context.Context, msg domain.Message) error {
		sm.Broadcast(sessionID, msg)
		return nil
	})
}
