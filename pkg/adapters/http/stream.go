package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(sessionID string) (chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(sessionID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "session_id", sessionID, "event", msg.Event, "payload_size", len(msg.Data))

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Hooks forwards every editor event to the subscribers of its session.
func (sm *StreamManager) Hooks() domain.EditorHooks {
	return domain.EditorHooks{
		OnEdit:     func(_ context.Context, e *domain.EditEvent) { sm.publish(e.SessionID, e.Type, e) },
		OnRejected: func(_ context.Context, e *domain.EditEvent) { sm.publish(e.SessionID, e.Type, e) },
		OnSave:     func(_ context.Context, e *domain.SaveEvent) { sm.publish(e.SessionID, e.Type, e) },
	}
}

func (sm *StreamManager) publish(sessionID string, t domain.EventType, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("SSE: Event encode failed", "session_id", sessionID, "err", err)
		return
	}
	sm.Broadcast(sessionID, Message{Event: string(t), Data: string(data)})
}
