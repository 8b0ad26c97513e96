package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `json:"email" gorm:"not null;uniqueIndex"`
	Name          string         `json:"name" gorm:"not null"`
	Role          string         `json:"role" gorm:"not null;default:'candidate'"`
	Plan          string         `json:"plan,omitempty"` // active subscription plan code, empty = free tier
	PlanExpiresAt *time.Time     `json:"plan_expires_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasActivePlan reports whether the user's subscription covers the given time.
func (u *User) HasActivePlan(now time.Time) bool {
	return u.Plan != "" && u.PlanExpiresAt != nil && u.PlanExpiresAt.After(now)
}
