package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/nazhanhafiz/psikometrik/internal/scoring"
	"github.com/nazhanhafiz/psikometrik/internal/session"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService scores submitted answer maps, persists attempts and
// drives the async AI feedback lifecycle.
type SubmissionService interface {
	SubmitAttempt(quizID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error)
	GetAttemptDetails(attemptID uint) (*dto.AttemptDetailDTO, error)
	GetUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error)
	GetUserAttemptsForQuiz(quizID, userID uint) ([]dto.AttemptSummaryDTO, error)
	ClearUserAttempts(userID uint) error
}

type submissionService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	sessions    session.Store
	feedback    FeedbackService
	db          *gorm.DB
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	sessions session.Store,
	feedback FeedbackService,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		sessions:    sessions,
		feedback:    feedback,
		db:          db,
	}
}

// SubmitAttempt scores an answer map against the quiz's question bank. The
// numeric result is computed synchronously; the AI narrative is filled in by
// a background goroutine that moves the attempt from "scoring" to "completed".
func (s *submissionService) SubmitAttempt(quizID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: quiz not found")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %d has no questions, submission is not possible", quizID)
	}

	answers := normalizeAnswers(req.Answers)
	now := time.Now()
	late := false

	if req.SessionID != "" {
		sess, sessErr := s.sessions.Get(context.Background(), req.SessionID)
		if sessErr != nil {
			log.Warn().Err(sessErr).Str("sessionID", req.SessionID).Msg("SubmitAttempt: session lookup failed, scoring request answers only")
		} else if sess.QuizID != quizID {
			log.Warn().Str("sessionID", req.SessionID).Uint("quizID", quizID).Msg("SubmitAttempt: session belongs to a different quiz, ignoring")
		} else {
			late = sess.Expired(now)
			if len(answers) == 0 {
				answers = sess.Answers
			}
			defer func() {
				if delErr := s.sessions.Delete(context.Background(), req.SessionID); delErr != nil {
					log.Warn().Err(delErr).Str("sessionID", req.SessionID).Msg("SubmitAttempt: failed to discard session")
				}
			}()
		}
	}

	bank := make([]scoring.Question, 0, len(quiz.Questions))
	numberSet := make(map[int]bool, len(quiz.Questions))
	terasByNumber := make(map[int]string, len(quiz.Questions))
	for _, q := range quiz.Questions {
		bank = append(bank, scoring.Question{Number: q.Number, Teras: q.Teras, BestAnswer: q.BestAnswer})
		numberSet[q.Number] = true
		terasByNumber[q.Number] = scoring.NormalizeTeras(q.Teras)
	}

	result := scoring.Score(bank, answers)

	attempt := model.Attempt{
		QuizID:      quizID,
		UserID:      req.UserID,
		SubmittedAt: now,
		TotalScore:  result.TotalScore,
		MaxScore:    result.MaxScore,
		Percentage:  result.Percentage(),
		Late:        late,
		Status:      "pending",
	}
	for _, q := range bank {
		chosen, ok := answers[q.Number]
		if !ok {
			continue
		}
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{
			QuestionNumber: q.Number,
			Chosen:         chosen,
			Points:         scoring.PointsFor(q, chosen),
			Teras:          terasByNumber[q.Number],
		})
	}
	for number := range answers {
		if !numberSet[number] {
			log.Warn().Int("questionNumber", number).Uint("quizID", quizID).Msg("SubmitAttempt: answer for a question not in this quiz, skipping")
		}
	}
	for bucket, ts := range result.TerasScores {
		attempt.TerasScores = append(attempt.TerasScores, model.AttemptTeras{
			Teras:      bucket,
			Score:      ts.Score,
			Max:        ts.Max,
			Percentage: ts.Percentage,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&attempt).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: failed to persist attempt")
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	attempt.Status = "scoring"
	if updErr := s.attemptRepo.Update(&attempt); updErr != nil {
		log.Error().Err(updErr).Uint("attemptID", attempt.ID).Msg("SubmitAttempt: failed to update attempt status to 'scoring'. Feedback will proceed.")
	}

	go s.generateFeedback(attempt.ID, quiz.Title, result)

	detail := attemptToDetailDTO(&attempt, quiz.Title)
	return detail, nil
}

// generateFeedback runs in the background after an attempt is recorded.
func (s *submissionService) generateFeedback(attemptID uint, quizTitle string, result scoring.Result) {
	feedback, err := s.feedback.FeedbackForResult(quizTitle, result)

	attempt, findErr := s.attemptRepo.FindByID(attemptID)
	if findErr != nil {
		log.Error().Err(findErr).Uint("attemptID", attemptID).Msg("Feedback: attempt disappeared before update")
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Feedback: AI feedback generation failed")
		attempt.Status = "completed_with_errors"
	} else {
		attempt.AIFeedback = feedback
		attempt.Status = "completed"
	}
	if updErr := s.attemptRepo.Update(attempt); updErr != nil {
		log.Error().Err(updErr).Uint("attemptID", attemptID).Msg("Feedback: failed to save AI feedback")
	}
}

func (s *submissionService) GetAttemptDetails(attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: not found")
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}
	return attemptToDetailDTO(attempt, attempt.Quiz.Title), nil
}

func (s *submissionService) GetUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserAttempts: repository error")
		return nil, fmt.Errorf("error fetching attempts for user %d: %w", userID, err)
	}
	return attemptSummaries(attempts), nil
}

func (s *submissionService) GetUserAttemptsForQuiz(quizID, userID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByQuizAndUser(quizID, userID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", userID).Msg("GetUserAttemptsForQuiz: repository error")
		return nil, fmt.Errorf("error fetching attempts for quiz %d: %w", quizID, err)
	}
	return attemptSummaries(attempts), nil
}

func (s *submissionService) ClearUserAttempts(userID uint) error {
	if err := s.attemptRepo.DeleteAllByUser(userID); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ClearUserAttempts: repository error")
		return fmt.Errorf("failed to clear attempts for user %d: %w", userID, err)
	}
	log.Info().Uint("userID", userID).Msg("Attempt history cleared")
	return nil
}

func normalizeAnswers(raw map[int]string) map[int]string {
	answers := make(map[int]string, len(raw))
	for number, label := range raw {
		label = strings.ToUpper(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		answers[number] = label
	}
	return answers
}

func attemptToDetailDTO(attempt *model.Attempt, quizTitle string) *dto.AttemptDetailDTO {
	detail := dto.AttemptDetailDTO{
		ID:          attempt.ID,
		QuizID:      attempt.QuizID,
		QuizTitle:   quizTitle,
		UserID:      attempt.UserID,
		SubmittedAt: attempt.SubmittedAt,
		TotalScore:  attempt.TotalScore,
		MaxScore:    attempt.MaxScore,
		Percentage:  attempt.Percentage,
		Grade:       scoring.GradeFor(attempt.Percentage),
		Late:        attempt.Late,
		Status:      attempt.Status,
		AIFeedback:  attempt.AIFeedback,
	}

	detail.TerasScores = make(map[string]dto.TerasScoreDTO, len(attempt.TerasScores))
	for _, ts := range attempt.TerasScores {
		detail.TerasScores[ts.Teras] = dto.TerasScoreDTO{
			Score:      ts.Score,
			Max:        ts.Max,
			Percentage: ts.Percentage,
			Grade:      scoring.GradeFor(ts.Percentage),
		}
	}
	detail.Answers = make([]dto.AttemptAnswerDTO, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		detail.Answers = append(detail.Answers, dto.AttemptAnswerDTO{
			QuestionNumber: a.QuestionNumber,
			Chosen:         a.Chosen,
			Points:         a.Points,
			Teras:          a.Teras,
		})
	}
	return &detail
}

func attemptSummaries(attempts []model.Attempt) []dto.AttemptSummaryDTO {
	var dtos []dto.AttemptSummaryDTO
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to summary DTO")
			continue
		}
		summary.QuizTitle = attempt.Quiz.Title
		summary.Grade = scoring.GradeFor(attempt.Percentage)
		dtos = append(dtos, summary)
	}
	return dtos
}
