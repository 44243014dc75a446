package editor

import "time"

// NoticeKind grades a user-facing message.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a dismissible message that expires on its own.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Active reports whether the notice is still visible at now.
func (n Notice) Active(now time.Time) bool {
	return now.Before(n.ExpiresAt)
}

func (s *Session) setNotice(kind NoticeKind, msg string) {
	s.notice = &Notice{Kind: kind, Message: msg, ExpiresAt: s.now().Add(s.noticeTTL)}
}

// Notice returns the current message, if one is still active.
func (s *Session) Notice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeNotice()
}

func (s *Session) activeNotice() (Notice, bool) {
	if s.notice == nil || !s.notice.Active(s.now()) {
		s.notice = nil
		return Notice{}, false
	}
	return *s.notice, true
}

// DismissNotice clears the current message.
func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}
