package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

const (
	OrganizerAdmin      = "admin"
	OrganizerDepartment = "department"
	OrganizerClub       = "club"
)

type Event struct {
	gorm.Model
	ID                   uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Title                string           `gorm:"not null" json:"title"`
	Description          string           `gorm:"not null" json:"description"`
	Date                 time.Time        `gorm:"type:date;not null;index" json:"date"`
	StartTime            string           `gorm:"not null" json:"start_time"`
	EndTime              string           `gorm:"not null" json:"end_time"`
	Location             string           `gorm:"not null" json:"location"`
	Category             string           `gorm:"not null;index" json:"category"`
	Capacity             int              `gorm:"not null" json:"capacity"`
	AttendeeCount        int              `gorm:"not null;default:0" json:"attendee_count"`
	Status               string           `gorm:"not null;default:'draft';index" json:"status"`
	RegistrationDeadline *time.Time       `json:"registration_deadline,omitempty"`
	Requirements         string           `json:"requirements,omitempty"`
	ImageURL             string           `json:"image_url,omitempty"`
	Price                *decimal.Decimal `gorm:"type:numeric" json:"price,omitempty"`
	OrganizerType        string           `gorm:"not null" json:"organizer_type"`
	OrganizerID          *uuid.UUID       `gorm:"type:uuid" json:"organizer_id,omitempty"`
	OrganizerName        string           `json:"organizer_name"`
	DepartmentID         *uuid.UUID       `gorm:"type:uuid;index" json:"department_id,omitempty"`
	ClubID               *uuid.UUID       `gorm:"type:uuid;index" json:"club_id,omitempty"`
	CreatedBy            uuid.UUID        `gorm:"type:uuid" json:"created_by"`
	Agenda               []AgendaItem     `gorm:"constraint:OnDelete:CASCADE" json:"agenda,omitempty"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// SpotsLeft returns the number of unclaimed seats.
func (event *Event) SpotsLeft() int {
	return event.Capacity - event.AttendeeCount
}

// IsFull reports whether the event has no remaining capacity.
func (event *Event) IsFull() bool {
	return event.AttendeeCount >= event.Capacity
}

// IsPaid reports whether registering requires payment.
func (event *Event) IsPaid() bool {
	return event.Price != nil && event.Price.IsPositive()
}

// RegistrationOpen reports whether registrations are accepted at the given
// time. A missing deadline means registration stays open until the event date.
func (event *Event) RegistrationOpen(now time.Time) bool {
	if event.Status != EventStatusPublished {
		return false
	}
	if event.RegistrationDeadline != nil {
		return !now.After(*event.RegistrationDeadline)
	}
	return !now.Truncate(24 * time.Hour).After(event.Date)
}

type AgendaItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position int       `gorm:"not null" json:"position"`
	Time     string    `gorm:"not null" json:"time"`
	Activity string    `gorm:"not null" json:"activity"`
}

func (item *AgendaItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}
