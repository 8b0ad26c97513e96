package dto

import "time"

type CheckoutDTO struct {
	UserID uint   `json:"user_id" binding:"required"`
	Plan   string `json:"plan" binding:"required"`
}

type CheckoutResponseDTO struct {
	Reference  string `json:"reference"`
	BillID     string `json:"bill_id"`
	PaymentURL string `json:"payment_url"`
	AmountSen  int    `json:"amount_sen"`
}

type TransactionDTO struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Plan      string     `json:"plan"`
	AmountSen int        `json:"amount_sen"`
	Reference string     `json:"reference"`
	BillID    string     `json:"bill_id,omitempty"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
