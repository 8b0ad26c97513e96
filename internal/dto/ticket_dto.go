package dto

import "time"

type TicketCreateDTO struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type TicketReplyDTO struct {
	Reply string `json:"reply" binding:"required"`
}

type TicketDTO struct {
	ID        uint       `json:"id"`
	Number    string     `json:"number"`
	UserID    uint       `json:"user_id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	Reply     string     `json:"reply,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
