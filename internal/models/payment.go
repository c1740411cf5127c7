package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
	PaymentPending   = "pending"
)

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"event_id"`
	EventTitle    string          `gorm:"not null" json:"event_title"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	PaidAt        time.Time       `gorm:"not null;index" json:"date"`
	Tier          string          `gorm:"not null" json:"tier"`
	CouponApplied *string         `json:"coupon_applied,omitempty"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail     string          `gorm:"not null" json:"user_email"`
	Status        string          `gorm:"not null;default:'pending'" json:"status"`
	TransactionID string          `gorm:"not null" json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
