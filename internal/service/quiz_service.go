package service

import (
	"fmt"

	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService is the candidate-facing view of the question bank. Best answers,
// points and explanations never leave this layer.
type QuizService interface {
	GetActiveQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) GetActiveQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAllWithQuestionCount(true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get active quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return quizSummaries(quizzes), nil
}

func (s *quizService) GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if !quiz.Active {
		return nil, fmt.Errorf("quiz %d is not active", quizID)
	}

	resp := dto.QuizDetailDTO{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		TimeLimitMin: quiz.TimeLimitMin,
		CreatedAt:    quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		pub := dto.QuestionPublicDTO{
			ID:     q.ID,
			Number: q.Number,
			Teras:  q.Teras,
			Prompt: q.Prompt,
		}
		for _, o := range q.Options {
			pub.Options = append(pub.Options, dto.OptionPublicDTO{Label: o.Label, Text: o.Text})
		}
		resp.Questions = append(resp.Questions, pub)
	}
	return &resp, nil
}
