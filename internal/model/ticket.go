package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TicketOpen    = "open"
	TicketReplied = "replied"
	TicketClosed  = "closed"
)

type SupportTicket struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Number    string         `json:"number" gorm:"not null;uniqueIndex"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	User      User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Subject   string         `json:"subject" gorm:"not null"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	Status    string         `json:"status" gorm:"default:'open'"`
	Reply     string         `json:"reply,omitempty" gorm:"type:text"`
	RepliedAt *time.Time     `json:"replied_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
