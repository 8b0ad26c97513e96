package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransactionPending = "pending"
	TransactionPaid    = "paid"
	TransactionFailed  = "failed"
)

// Transaction records one checkout against the bill-payment gateway.
type Transaction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	User      User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Plan      string         `json:"plan" gorm:"not null"`
	AmountSen int            `json:"amount_sen" gorm:"not null"` // amount in sen (MYR cents)
	Reference string         `json:"reference" gorm:"not null;uniqueIndex"`
	BillID    string         `json:"bill_id,omitempty" gorm:"index"` // gateway-side bill identifier
	Status    string         `json:"status" gorm:"default:'pending'"`
	PaidAt    *time.Time     `json:"paid_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
