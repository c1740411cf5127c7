package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventPricing owns the paid tiers and coupon codes of a single event.
type EventPricing struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EventID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	EventTitle string         `gorm:"not null" json:"event_title"`
	Tiers      []PricingTier  `gorm:"constraint:OnDelete:CASCADE" json:"pricing_tiers"`
	Coupons    []Coupon       `gorm:"constraint:OnDelete:CASCADE" json:"valid_coupons"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (pricing *EventPricing) BeforeCreate(tx *gorm.DB) (err error) {
	if pricing.ID == uuid.Nil {
		pricing.ID = uuid.New()
	}
	return
}

type PricingTier struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EventPricingID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Name           string          `gorm:"not null" json:"name"`
	Price          decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Available      bool            `gorm:"not null;default:true" json:"available"`
	Benefits       *string         `json:"benefits,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (tier *PricingTier) BeforeCreate(tx *gorm.DB) (err error) {
	if tier.ID == uuid.Nil {
		tier.ID = uuid.New()
	}
	return
}

// Coupon reduces a tier price by a whole percentage. A coupon with no
// EventPricingID is global and applies to every paid event.
type Coupon struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EventPricingID *uuid.UUID     `gorm:"type:uuid;index" json:"-"`
	Code           string         `gorm:"not null;uniqueIndex" json:"code"`
	Discount       int            `gorm:"not null" json:"discount"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (coupon *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	return
}
