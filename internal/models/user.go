package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	RoleID        uuid.UUID      `json:"-"`
	Role          Role           `json:"role"`
	DepartmentID  *uuid.UUID     `gorm:"type:uuid" json:"department_id,omitempty"`
	ClubID        *uuid.UUID     `gorm:"type:uuid" json:"club_id,omitempty"`
	PhoneNumber   string         `json:"phone_number,omitempty"`
	Department    string         `json:"department,omitempty"`
	Year          string         `json:"year,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Interests     []string       `gorm:"serializer:json" json:"interests,omitempty"`
	ProfileImage  string         `json:"profile_image,omitempty"`
	Registrations []Registration `json:"registrations,omitempty"`
	Bookmarks     []Bookmark     `json:"bookmarks,omitempty"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
