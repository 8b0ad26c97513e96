package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;index"`
	Number      int            `json:"number" gorm:"not null"` // sequence within the quiz, from the source document
	Teras       string         `json:"teras" gorm:"not null;default:'General'"`
	Prompt      string         `json:"prompt" gorm:"type:text;not null"`
	BestAnswer  string         `json:"best_answer" gorm:"size:1"` // empty when the source document carried no answer line
	Explanation string         `json:"explanation,omitempty" gorm:"type:text"`
	Options     []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Option struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Label      string         `json:"label" gorm:"size:1;not null"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	Points     int            `json:"points" gorm:"not null;default:0"`
	Position   int            `json:"position" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
