package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one completed, scored quiz submission. Attempts are immutable
// once scored; users may only bulk-clear their own history.
type Attempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz        Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	TotalScore  int            `json:"total_score"`
	MaxScore    int            `json:"max_score"`
	Percentage  int            `json:"percentage"`
	Late        bool           `json:"late"`
	Status      string         `json:"status" gorm:"default:'pending'"` // "pending", "scoring", "completed", "completed_with_errors"
	AIFeedback  string         `json:"ai_feedback,omitempty" gorm:"type:text"`
	Answers     []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TerasScores []AttemptTeras  `json:"teras_scores,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttemptAnswer is the raw answer map entry persisted with a scored attempt.
type AttemptAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	AttemptID      uint           `json:"attempt_id" gorm:"not null;index"`
	QuestionNumber int            `json:"question_number" gorm:"not null"`
	Chosen         string         `json:"chosen" gorm:"size:1;not null"`
	Points         int            `json:"points" gorm:"not null"`
	Teras          string         `json:"teras" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttemptTeras is the per-category breakdown row for an attempt.
type AttemptTeras struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;index"`
	Teras      string         `json:"teras" gorm:"not null"`
	Score      int            `json:"score" gorm:"not null"`
	Max        int            `json:"max" gorm:"not null"`
	Percentage int            `json:"percentage" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
