package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusFree     = "free"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Registration links a user to an event they signed up for. The unique
// (user_id, event_id) index is what makes double submission impossible.
type Registration struct {
	gorm.Model
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event" json:"user_id"`
	User          *User           `json:"-"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event" json:"event_id"`
	Event         *Event          `json:"event,omitempty"`
	EventTitle    string          `gorm:"not null" json:"event_title"`
	PaymentStatus string          `gorm:"not null;default:'free'" json:"payment_status"`
	PaymentAmount decimal.Decimal `gorm:"type:numeric" json:"payment_amount"`
	TicketType    string          `gorm:"not null;default:'Standard'" json:"ticket_type"`
	PaymentID     *uuid.UUID      `gorm:"type:uuid" json:"payment_id,omitempty"`
	AttendedAt    *time.Time      `json:"attended_at,omitempty"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	return
}

// Bookmark marks an event as saved-for-later by a user. The unique pair
// index gives the list true set semantics.
type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_event" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_event" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (bookmark *Bookmark) BeforeCreate(tx *gorm.DB) (err error) {
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}
	return
}
