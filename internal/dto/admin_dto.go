package dto

import "time"

// QuizUploadDTO carries a free-text question bank to be run through the
// document parser.
type QuizUploadDTO struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description,omitempty"`
	TimeLimitMin int    `json:"time_limit_min" binding:"omitempty,min=1"`
	Text         string `json:"text" binding:"required"`
}

type OptionCreateDTO struct {
	Label string `json:"label" binding:"required,len=1,oneof=A B C D E"`
	Text  string `json:"text" binding:"required"`
}

type QuestionCreateDTO struct {
	Number      int               `json:"number" binding:"required,min=1"`
	Teras       string            `json:"teras,omitempty"`
	Prompt      string            `json:"prompt" binding:"required"`
	Options     []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
	BestAnswer  string            `json:"best_answer" binding:"omitempty,len=1,oneof=A B C D E"`
	Explanation string            `json:"explanation,omitempty"`
}

// QuizCreateDTO is the structured JSON import path, bypassing the parser.
type QuizCreateDTO struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description,omitempty"`
	TimeLimitMin int                 `json:"time_limit_min" binding:"omitempty,min=1"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type QuizUpdateDTO struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	TimeLimitMin int    `json:"time_limit_min,omitempty" binding:"omitempty,min=1"`
}

type QuizActiveDTO struct {
	Active *bool `json:"active" binding:"required"`
}

type QuestionUpdateDTO struct {
	Teras       string            `json:"teras,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	Options     []OptionCreateDTO `json:"options,omitempty" binding:"omitempty,min=2,dive"`
	BestAnswer  string            `json:"best_answer,omitempty" binding:"omitempty,len=1,oneof=A B C D E"`
	Explanation string            `json:"explanation,omitempty"`
}

// OptionAdminDTO includes the points table, for admin screens only.
type OptionAdminDTO struct {
	Label  string `json:"label"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type QuestionAdminDTO struct {
	ID          uint             `json:"id"`
	Number      int              `json:"number"`
	Teras       string           `json:"teras"`
	Prompt      string           `json:"prompt"`
	Options     []OptionAdminDTO `json:"options"`
	BestAnswer  string           `json:"best_answer"`
	Explanation string           `json:"explanation,omitempty"`
}

type QuizAdminDTO struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Active       bool               `json:"active"`
	TimeLimitMin int                `json:"time_limit_min"`
	Questions    []QuestionAdminDTO `json:"questions,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type UserUpdateDTO struct {
	Role          string     `json:"role,omitempty" binding:"omitempty,oneof=candidate admin"`
	Plan          string     `json:"plan,omitempty"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty"`
}

type UserDTO struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Plan          string     `json:"plan,omitempty"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
