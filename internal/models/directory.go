package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"not null;unique" json:"name"`
	Description  string         `gorm:"not null" json:"description"`
	Image        string         `json:"image,omitempty"`
	FacultyCount int            `gorm:"not null;default:0" json:"faculty_count"`
	StudentCount int            `gorm:"not null;default:0" json:"student_count"`
	Courses      int            `gorm:"not null;default:0" json:"courses"`
	Established  string         `json:"established,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (department *Department) BeforeCreate(tx *gorm.DB) (err error) {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	return
}

type Club struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"not null;unique" json:"name"`
	Description     string         `gorm:"not null" json:"description"`
	Image           string         `json:"image,omitempty"`
	Category        string         `gorm:"not null" json:"category"`
	MemberCount     int            `gorm:"not null;default:0" json:"member_count"`
	FoundedYear     string         `json:"founded_year,omitempty"`
	MeetingSchedule string         `json:"meeting_schedule,omitempty"`
	President       string         `json:"president,omitempty"`
	ContactEmail    string         `json:"contact_email,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (club *Club) BeforeCreate(tx *gorm.DB) (err error) {
	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}
	return
}

type Mentor struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name              string         `gorm:"not null" json:"name"`
	Email             string         `gorm:"not null;unique" json:"email"`
	Department        string         `gorm:"not null" json:"department"`
	Specialization    string         `json:"specialization,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	Image             string         `json:"image,omitempty"`
	OfficeHours       string         `json:"office_hours,omitempty"`
	ContactInfo       string         `json:"contact_info,omitempty"`
	YearsOfExperience int            `gorm:"not null;default:0" json:"years_of_experience"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (mentor *Mentor) BeforeCreate(tx *gorm.DB) (err error) {
	if mentor.ID == uuid.Nil {
		mentor.ID = uuid.New()
	}
	return
}
