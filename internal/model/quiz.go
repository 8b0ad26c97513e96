package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null;uniqueIndex"`
	Description  string         `json:"description,omitempty"`
	Active       bool           `json:"active" gorm:"not null;default:true;index"`
	TimeLimitMin int            `json:"time_limit_min" gorm:"not null;default:30"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
