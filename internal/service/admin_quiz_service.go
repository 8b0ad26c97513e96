package service

import (
	"fmt"

	"github.com/nazhanhafiz/psikometrik/config"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"github.com/nazhanhafiz/psikometrik/internal/parser"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminQuizService covers the admin side of the question bank: uploading
// free-text documents, structured imports and quiz/question maintenance.
type AdminQuizService interface {
	CreateFromDocument(req dto.QuizUploadDTO) (*dto.QuizAdminDTO, error)
	CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizAdminDTO, error)
	GetQuiz(id uint) (*dto.QuizAdminDTO, error)
	ListQuizzes() ([]dto.QuizSummaryDTO, error)
	UpdateQuiz(id uint, req dto.QuizUpdateDTO) (*dto.QuizAdminDTO, error)
	SetActive(id uint, active bool) error
	DeleteQuiz(id uint) error
	UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionAdminDTO, error)
	DeleteQuestion(id uint) error
}

type adminQuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cfg          *config.Config
}

func NewAdminQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository, cfg *config.Config) AdminQuizService {
	return &adminQuizService{quizRepo: quizRepo, questionRepo: questionRepo, cfg: cfg}
}

// CreateFromDocument runs the document parser over an uploaded text blob and
// persists the detected questions as a new quiz. A *parser.NoQuestionsError
// is returned unwrapped so the handler can surface the diagnostic excerpt.
func (s *adminQuizService) CreateFromDocument(req dto.QuizUploadDTO) (*dto.QuizAdminDTO, error) {
	parsed, err := parser.Parse(req.Text)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Document upload produced no questions")
		return nil, err
	}

	quiz := model.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		Active:       true,
		TimeLimitMin: s.timeLimit(req.TimeLimitMin),
	}
	for _, pq := range parsed {
		question := model.Question{
			Number:      pq.ID,
			Teras:       pq.Teras,
			Prompt:      pq.Question,
			BestAnswer:  pq.CorrectAnswer,
			Explanation: pq.Explanation,
		}
		for i, opt := range pq.Options {
			question.Options = append(question.Options, model.Option{
				Label:    opt.Label,
				Text:     opt.Text,
				Points:   pq.AnswerPoints[opt.Label],
				Position: i + 1,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create quiz from document")
		return nil, fmt.Errorf("failed to create quiz %q: %w", req.Title, err)
	}
	log.Info().Uint("quizID", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created from document upload")
	return quizToAdminDTO(&quiz), nil
}

func (s *adminQuizService) CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizAdminDTO, error) {
	quiz := model.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		Active:       true,
		TimeLimitMin: s.timeLimit(req.TimeLimitMin),
	}
	for _, qDto := range req.Questions {
		quiz.Questions = append(quiz.Questions, questionFromCreateDTO(qDto))
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create quiz")
		return nil, fmt.Errorf("failed to create quiz %q: %w", req.Title, err)
	}
	return quizToAdminDTO(&quiz), nil
}

func (s *adminQuizService) GetQuiz(id uint) (*dto.QuizAdminDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", id, err)
	}
	return quizToAdminDTO(quiz), nil
}

func (s *adminQuizService) ListQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAllWithQuestionCount(false)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return quizSummaries(quizzes), nil
}

func (s *adminQuizService) UpdateQuiz(id uint, req dto.QuizUpdateDTO) (*dto.QuizAdminDTO, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", id, err)
	}
	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.TimeLimitMin > 0 {
		quiz.TimeLimitMin = req.TimeLimitMin
	}
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz %d: %w", id, err)
	}
	return quizToAdminDTO(quiz), nil
}

func (s *adminQuizService) SetActive(id uint, active bool) error {
	if _, err := s.quizRepo.FindByID(id); err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", id, err)
	}
	return s.quizRepo.SetActive(id, active)
}

func (s *adminQuizService) DeleteQuiz(id uint) error {
	if _, err := s.quizRepo.FindByID(id); err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", id, err)
	}
	if err := s.quizRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("quizID", id).Msg("Failed to delete quiz")
		return fmt.Errorf("failed to delete quiz %d: %w", id, err)
	}
	log.Info().Uint("quizID", id).Msg("Quiz deleted with questions and attempts")
	return nil
}

func (s *adminQuizService) UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionAdminDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", id, err)
	}
	if req.Teras != "" {
		question.Teras = req.Teras
	}
	if req.Prompt != "" {
		question.Prompt = req.Prompt
	}
	if req.BestAnswer != "" {
		question.BestAnswer = req.BestAnswer
	}
	if req.Explanation != "" {
		question.Explanation = req.Explanation
	}
	if len(req.Options) > 0 {
		options := optionsFromCreateDTOs(req.Options, question.BestAnswer)
		if err := s.questionRepo.ReplaceOptions(question.ID, options); err != nil {
			return nil, fmt.Errorf("failed to replace options for question %d: %w", id, err)
		}
		question.Options = options
	} else if req.BestAnswer != "" {
		// Re-derive the points table against the existing options.
		for i := range question.Options {
			question.Options[i].Points = 0
			if question.Options[i].Label == question.BestAnswer {
				question.Options[i].Points = parser.BestAnswerPoints
			}
		}
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	adminDTO := questionToAdminDTO(question)
	return &adminDTO, nil
}

func (s *adminQuizService) DeleteQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return fmt.Errorf("question not found with ID %d: %w", id, err)
	}
	return s.questionRepo.Delete(id)
}

func (s *adminQuizService) timeLimit(requested int) int {
	if requested > 0 {
		return requested
	}
	if s.cfg.Quiz.DefaultTimeLimitMin > 0 {
		return s.cfg.Quiz.DefaultTimeLimitMin
	}
	return 30
}

func questionFromCreateDTO(qDto dto.QuestionCreateDTO) model.Question {
	teras := qDto.Teras
	if teras == "" {
		teras = parser.DefaultTeras
	}
	return model.Question{
		Number:      qDto.Number,
		Teras:       teras,
		Prompt:      qDto.Prompt,
		BestAnswer:  qDto.BestAnswer,
		Explanation: qDto.Explanation,
		Options:     optionsFromCreateDTOs(qDto.Options, qDto.BestAnswer),
	}
}

func optionsFromCreateDTOs(dtos []dto.OptionCreateDTO, bestAnswer string) []model.Option {
	options := make([]model.Option, 0, len(dtos))
	for i, o := range dtos {
		points := 0
		if o.Label == bestAnswer {
			points = parser.BestAnswerPoints
		}
		options = append(options, model.Option{
			Label:    o.Label,
			Text:     o.Text,
			Points:   points,
			Position: i + 1,
		})
	}
	return options
}

func quizToAdminDTO(quiz *model.Quiz) *dto.QuizAdminDTO {
	out := dto.QuizAdminDTO{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Active:       quiz.Active,
		TimeLimitMin: quiz.TimeLimitMin,
		CreatedAt:    quiz.CreatedAt,
	}
	for i := range quiz.Questions {
		out.Questions = append(out.Questions, questionToAdminDTO(&quiz.Questions[i]))
	}
	return &out
}

func questionToAdminDTO(q *model.Question) dto.QuestionAdminDTO {
	out := dto.QuestionAdminDTO{
		ID:          q.ID,
		Number:      q.Number,
		Teras:       q.Teras,
		Prompt:      q.Prompt,
		BestAnswer:  q.BestAnswer,
		Explanation: q.Explanation,
	}
	for _, o := range q.Options {
		out.Options = append(out.Options, dto.OptionAdminDTO{Label: o.Label, Text: o.Text, Points: o.Points})
	}
	return out
}

func quizSummaries(quizzes []repository.QuizWithCount) []dto.QuizSummaryDTO {
	var dtos []dto.QuizSummaryDTO
	for _, qwc := range quizzes {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:            qwc.Quiz.ID,
			Title:         qwc.Quiz.Title,
			Description:   qwc.Quiz.Description,
			Active:        qwc.Quiz.Active,
			TimeLimitMin:  qwc.Quiz.TimeLimitMin,
			QuestionCount: qwc.QuestionCount,
			CreatedAt:     qwc.Quiz.CreatedAt,
		})
	}
	return dtos
}
