package editor

import (
	"log/slog"
	"time"

	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// DefaultNoticeTTL is how long a notice stays visible unless configured otherwise.
const DefaultNoticeTTL = 5 * time.Second

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.EditorHooks) Option {
	return func(s *Session) { s.hooks = hooks }
}

// WithNoticeTTL sets how long notices stay visible.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.noticeTTL = ttl
		}
	}
}

// WithID sets the session id reported in events.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func defaults(s *Session) {
	s.logger = logging.NewNop()
	s.noticeTTL = DefaultNoticeTTL
	s.now = time.Now
}
