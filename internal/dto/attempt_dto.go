package dto

import "time"

// AttemptSubmitDTO is the scored submission: an answer map keyed by question
// number. SessionID is optional; when present the session's deadline decides
// the late flag and the session is discarded after scoring.
type AttemptSubmitDTO struct {
	UserID    uint           `json:"user_id" binding:"required"`
	SessionID string         `json:"session_id,omitempty"`
	Answers   map[int]string `json:"answers" binding:"required"`
}

type TerasScoreDTO struct {
	Score      int    `json:"score"`
	Max        int    `json:"max"`
	Percentage int    `json:"percentage"`
	Grade      string `json:"grade"`
}

type AttemptAnswerDTO struct {
	QuestionNumber int    `json:"question_number"`
	Chosen         string `json:"chosen"`
	Points         int    `json:"points"`
	Teras          string `json:"teras"`
}

// AttemptDetailDTO is the full scored result of one submission.
type AttemptDetailDTO struct {
	ID          uint                     `json:"id"`
	QuizID      uint                     `json:"quiz_id"`
	QuizTitle   string                   `json:"quiz_title,omitempty"`
	UserID      uint                     `json:"user_id"`
	SubmittedAt time.Time                `json:"submitted_at"`
	TotalScore  int                      `json:"total_score"`
	MaxScore    int                      `json:"max_score"`
	Percentage  int                      `json:"percentage"`
	Grade       string                   `json:"grade"`
	Late        bool                     `json:"late"`
	Status      string                   `json:"status"`
	AIFeedback  string                   `json:"ai_feedback,omitempty"`
	TerasScores map[string]TerasScoreDTO `json:"teras_scores"`
	Answers     []AttemptAnswerDTO       `json:"answers,omitempty"`
}

// AttemptSummaryDTO is one row of a user's attempt history.
type AttemptSummaryDTO struct {
	ID          uint      `json:"id"`
	QuizID      uint      `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	TotalScore  int       `json:"total_score"`
	MaxScore    int       `json:"max_score"`
	Percentage  int       `json:"percentage"`
	Grade       string    `json:"grade"`
	Late        bool      `json:"late"`
	Status      string    `json:"status"`
}
