package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dealdesk/dealdesk/internal/notification"
)

var _ notification.Sender = (*RecordingSender)(nil)

// SentMessage is one notification captured by RecordingSender
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// RecordingSender captures notifications instead of delivering them. Set
// Err to simulate delivery failure. Services send in the background, so
// tests call WaitForAttempts before asserting on captured messages.
type RecordingSender struct {
	mu       sync.Mutex
	messages []SentMessage
	attempts chan struct{}

	Err error
}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{attempts: make(chan struct{}, 64)}
}

func (s *RecordingSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.attempts <- struct{}{} }()

	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

// WaitForAttempts blocks until n Send calls have completed, successful or
// not, or the timeout elapses. Returns true once all n were observed.
func (s *RecordingSender) WaitForAttempts(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-s.attempts:
		case <-deadline:
			return false
		}
	}
	return true
}

// Messages returns a copy of everything sent so far
func (s *RecordingSender) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SentMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear drops all captured messages
func (s *RecordingSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
