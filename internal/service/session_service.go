package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/nazhanhafiz/psikometrik/internal/session"
	"github.com/rs/zerolog/log"
)

// SessionService manages the in-progress state of a timed quiz run.
type SessionService interface {
	Start(ctx context.Context, quizID, userID uint) (*dto.SessionDTO, error)
	RecordAnswers(ctx context.Context, sessionID string, answers map[int]string) (*dto.SessionDTO, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionDTO, error)
}

type sessionService struct {
	quizRepo repository.QuizRepository
	store    session.Store
}

func NewSessionService(quizRepo repository.QuizRepository, store session.Store) SessionService {
	return &sessionService{quizRepo: quizRepo, store: store}
}

func (s *sessionService) Start(ctx context.Context, quizID, userID uint) (*dto.SessionDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if !quiz.Active {
		return nil, fmt.Errorf("quiz %d is not active", quizID)
	}

	sess := session.New(userID, quizID, time.Duration(quiz.TimeLimitMin)*time.Minute, time.Now())
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	log.Info().Str("sessionID", sess.ID).Uint("quizID", quizID).Uint("userID", userID).Msg("Quiz session started")
	return sessionToDTO(sess), nil
}

func (s *sessionService) RecordAnswers(ctx context.Context, sessionID string, answers map[int]string) (*dto.SessionDTO, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	for number, label := range answers {
		sess.Record(number, strings.ToUpper(strings.TrimSpace(label)))
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sessionToDTO(sess), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionDTO, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sessionToDTO(sess), nil
}

func sessionToDTO(sess *session.Session) *dto.SessionDTO {
	return &dto.SessionDTO{
		ID:        sess.ID,
		QuizID:    sess.QuizID,
		UserID:    sess.UserID,
		Answers:   sess.Answers,
		StartedAt: sess.StartedAt,
		Deadline:  sess.Deadline,
	}
}
