// Package session holds in-progress quiz state between starting a timed quiz
// and submitting it. State lives behind a small key-value Store so the
// quiz-taking flow never touches ambient shared state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is one user's in-progress run of a quiz. Answers are transient and
// only persisted as an Attempt once scored.
type Session struct {
	ID        string         `json:"id"`
	UserID    uint           `json:"user_id"`
	QuizID    uint           `json:"quiz_id"`
	Answers   map[int]string `json:"answers"` // question number -> chosen label
	StartedAt time.Time      `json:"started_at"`
	Deadline  time.Time      `json:"deadline"`
}

// New starts a session with the quiz's time limit counted from now.
func New(userID, quizID uint, limit time.Duration, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    quizID,
		Answers:   make(map[int]string),
		StartedAt: now,
		Deadline:  now.Add(limit),
	}
}

// Record stores or overwrites one answer.
func (s *Session) Record(questionNumber int, label string) {
	if s.Answers == nil {
		s.Answers = make(map[int]string)
	}
	s.Answers[questionNumber] = label
}

// Expired reports whether the deadline has passed. Late submissions are still
// scored, only flagged.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.Deadline)
}

// Store is the injected persistence boundary for sessions.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Good enough for a single
// instance; swap for a shared store when running more than one replica.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	cp.Answers = make(map[int]string, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
