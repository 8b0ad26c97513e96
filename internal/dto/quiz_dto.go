package dto

import "time"

// OptionPublicDTO hides per-option points from candidates.
type OptionPublicDTO struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuestionPublicDTO is a question as shown while taking a quiz: no best
// answer, no points, no explanation.
type QuestionPublicDTO struct {
	ID      uint              `json:"id"`
	Number  int               `json:"number"`
	Teras   string            `json:"teras"`
	Prompt  string            `json:"prompt"`
	Options []OptionPublicDTO `json:"options"`
}

// QuizSummaryDTO is used for listing quizzes available to candidates.
type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Active        bool      `json:"active"`
	TimeLimitMin  int       `json:"time_limit_min"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizDetailDTO is the candidate view of a full quiz.
type QuizDetailDTO struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	TimeLimitMin int                 `json:"time_limit_min"`
	Questions    []QuestionPublicDTO `json:"questions"`
	CreatedAt    time.Time           `json:"created_at"`
}
