package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

var (
	errTierNotFound  = errors.New("ticket tier not found or unavailable")
	errInvalidCoupon = errors.New("invalid coupon code")
)

// Quote is the final price for a tier after coupon resolution.
type Quote struct {
	Tier          string          `json:"tier"`
	BasePrice     decimal.Decimal `json:"base_price"`
	Discount      int             `json:"discount"`
	CouponApplied *string         `json:"coupon_applied,omitempty"`
	CouponValid   bool            `json:"coupon_valid"`
	Amount        decimal.Decimal `json:"amount"`
}

// resolveQuote computes the charge for an event, tier and optional coupon.
// Coupon validation is a plain database lookup: the same input always
// produces the same result. Events without a pricing record fall back to
// the event's own price under a single Standard tier.
func resolveQuote(tx *gorm.DB, event *models.Event, tierName, couponCode string) (*Quote, error) {
	quote := &Quote{Tier: "Standard"}

	var pricing models.EventPricing
	var pricingID *uuid.UUID
	err := tx.Preload("Tiers").Where("event_id = ?", event.ID).First(&pricing).Error
	switch {
	case err == nil:
		pricingID = &pricing.ID
		tier, found := pickTier(pricing.Tiers, tierName)
		if !found {
			return nil, errTierNotFound
		}
		quote.Tier = tier.Name
		quote.BasePrice = tier.Price
	case errors.Is(err, gorm.ErrRecordNotFound):
		if event.Price == nil {
			return nil, errTierNotFound
		}
		if tierName != "" && tierName != "Standard" {
			return nil, errTierNotFound
		}
		quote.BasePrice = *event.Price
	default:
		return nil, err
	}

	if couponCode != "" {
		coupon, err := lookupCoupon(tx, pricingID, couponCode)
		if err != nil {
			return nil, err
		}
		quote.Discount = coupon.Discount
		quote.CouponApplied = &coupon.Code
		quote.CouponValid = true
	}

	quote.Amount = helpers.ApplyDiscount(quote.BasePrice, quote.Discount)
	return quote, nil
}

func pickTier(tiers []models.PricingTier, name string) (*models.PricingTier, bool) {
	for i := range tiers {
		if !tiers[i].Available {
			continue
		}
		if name == "" || tiers[i].Name == name {
			return &tiers[i], true
		}
	}
	return nil, false
}

// lookupCoupon accepts codes scoped to the event's pricing record as well
// as the seeded campus-wide ones.
func lookupCoupon(tx *gorm.DB, pricingID *uuid.UUID, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	query := tx.Where("code = ?", code)
	if pricingID != nil {
		query = query.Where("event_pricing_id IS NULL OR event_pricing_id = ?", pricingID)
	} else {
		query = query.Where("event_pricing_id IS NULL")
	}
	if err := query.First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCoupon
		}
		return nil, err
	}
	return &coupon, nil
}

type QuoteRequest struct {
	TicketType string `json:"ticket_type"`
	CouponCode string `json:"coupon_code"`
}

// QuoteEvent lets the client preview the charge before committing to the
// registration flow.
func QuoteEvent(c *gin.Context) {
	var req QuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	if !event.IsPaid() {
		c.JSON(http.StatusOK, Quote{Tier: "Standard", Amount: decimal.Zero})
		return
	}

	quote, err := resolveQuote(gormDB, &event, req.TicketType, req.CouponCode)
	if errors.Is(err, errInvalidCoupon) {
		// An unknown code never changes the amount; the quote comes back
		// at the tier price with coupon_valid false.
		quote, err = resolveQuote(gormDB, &event, req.TicketType, "")
	}
	if err != nil {
		switch {
		case errors.Is(err, errTierNotFound):
			helpers.RespondWithError(c, http.StatusBadRequest, "Requested ticket tier is not available.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing quote.")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

func GetEventPricing(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var pricing models.EventPricing
	err := gormDB.Preload("Tiers").Preload("Coupons").
		Where("event_id = ?", c.Param("id")).First(&pricing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No pricing configured for this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving pricing.")
		return
	}

	c.JSON(http.StatusOK, pricing)
}

func ListEventPricing(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var pricing []models.EventPricing
	err := gormDB.Preload("Tiers").Preload("Coupons").
		Order("event_title").Find(&pricing).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving pricing.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

type PricingTierInput struct {
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Available bool            `json:"available"`
	Benefits  *string         `json:"benefits"`
}

type CouponInput struct {
	Code     string `json:"code" binding:"required"`
	Discount int    `json:"discount" binding:"required,min=1,max=100"`
}

type SavePricingRequest struct {
	Tiers   []PricingTierInput `json:"pricing_tiers" binding:"required,min=1,dive"`
	Coupons []CouponInput      `json:"valid_coupons" binding:"omitempty,dive"`
}

// SaveEventPricing creates or replaces the pricing record of an event,
// including its tiers and event-scoped coupon codes.
func SaveEventPricing(c *gin.Context) {
	var req SavePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	var pricing models.EventPricing
	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("event_id = ?", event.ID).First(&pricing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pricing = models.EventPricing{
				ID:         uuid.New(),
				EventID:    event.ID,
				EventTitle: event.Title,
			}
			if err := tx.Create(&pricing).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Where("event_pricing_id = ?", pricing.ID).Delete(&models.PricingTier{}).Error; err != nil {
			return err
		}
		tiers := make([]models.PricingTier, 0, len(req.Tiers))
		for _, tier := range req.Tiers {
			tiers = append(tiers, models.PricingTier{
				EventPricingID: pricing.ID,
				Name:           tier.Name,
				Price:          tier.Price,
				Available:      tier.Available,
				Benefits:       tier.Benefits,
			})
		}
		if err := tx.Create(&tiers).Error; err != nil {
			return err
		}

		if req.Coupons != nil {
			if err := tx.Where("event_pricing_id = ?", pricing.ID).Delete(&models.Coupon{}).Error; err != nil {
				return err
			}
			for _, input := range req.Coupons {
				coupon := models.Coupon{
					EventPricingID: &pricing.ID,
					Code:           input.Code,
					Discount:       input.Discount,
				}
				if err := tx.Create(&coupon).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if txErr != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save event pricing.")
		return
	}

	gormDB.Preload("Tiers").Preload("Coupons").First(&pricing, pricing.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Event pricing saved successfully.",
		"pricing": pricing,
	})
}

type CouponRequest struct {
	Code     string `json:"code" binding:"required"`
	Discount int    `json:"discount" binding:"required,min=1,max=100"`
}

// CreateCoupon adds a campus-wide coupon; scoped coupons are managed
// through SaveEventPricing.
func CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	coupon := models.Coupon{
		Code:     req.Code,
		Discount: req.Discount,
	}
	if err := gormDB.Create(&coupon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusConflict, "Coupon code already exists.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully.",
		"coupon":  coupon,
	})
}

func DeleteCoupon(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("code = ?", c.Param("code")).Delete(&models.Coupon{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Coupon not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully."})
}
