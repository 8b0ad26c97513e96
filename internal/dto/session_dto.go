package dto

import "time"

type SessionStartDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SessionAnswersDTO records (or overwrites) answers in an in-progress session.
type SessionAnswersDTO struct {
	Answers map[int]string `json:"answers" binding:"required"`
}

type SessionDTO struct {
	ID        string         `json:"id"`
	QuizID    uint           `json:"quiz_id"`
	UserID    uint           `json:"user_id"`
	Answers   map[int]string `json:"answers"`
	StartedAt time.Time      `json:"started_at"`
	Deadline  time.Time      `json:"deadline"`
}
