package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/middleware"
	"github.com/arjunrk/campusvibe/internal/models"
	"github.com/arjunrk/campusvibe/internal/monitoring"
	"github.com/arjunrk/campusvibe/internal/payment"
)

var (
	errEventFull          = errors.New("event is fully booked")
	errAlreadyRegistered  = errors.New("already registered for this event")
	errRegistrationClosed = errors.New("registration is closed for this event")
	errPaymentRequired    = errors.New("card details are required for paid events")
	errNotRegistered      = errors.New("no registration found for this event")
)

type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type RegistrationRequest struct {
	TicketType string       `json:"ticket_type"`
	CouponCode string       `json:"coupon_code"`
	Card       *CardDetails `json:"card"`
}

// RegisterForEvent runs the whole registration workflow in one database
// transaction. The event row is locked for the duration, so the capacity
// check, the registration insert and the counter increment cannot be
// interleaved by a concurrent attempt: either everything commits or
// nothing does.
func RegisterForEvent(c *gin.Context) {
	var req RegistrationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userUUID := userID.(uuid.UUID)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userUUID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	gateway := middleware.GetPaymentGateway(c)

	var registration models.Registration
	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&event).Error; err != nil {
			return err
		}

		if !event.RegistrationOpen(time.Now()) {
			return errRegistrationClosed
		}
		if event.IsFull() {
			return errEventFull
		}

		var existing int64
		if err := tx.Model(&models.Registration{}).
			Where("user_id = ? AND event_id = ?", userUUID, event.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyRegistered
		}

		registration = models.Registration{
			UserID:        userUUID,
			EventID:       event.ID,
			EventTitle:    event.Title,
			PaymentStatus: models.PaymentStatusFree,
			PaymentAmount: decimal.Zero,
			TicketType:    "Standard",
		}

		if event.IsPaid() {
			quote, err := resolveQuote(tx, &event, req.TicketType, req.CouponCode)
			if err != nil {
				return err
			}

			if req.Card == nil {
				return errPaymentRequired
			}
			result, err := gateway.Charge(c.Request.Context(), payment.ChargeRequest{
				Amount:      quote.Amount,
				Description: event.Title,
				CardNumber:  req.Card.Number,
				CardHolder:  req.Card.Holder,
				Expiry:      req.Card.Expiry,
				CVV:         req.Card.CVV,
			})
			if err != nil {
				return err
			}

			paymentRecord := models.Payment{
				EventID:       event.ID,
				EventTitle:    event.Title,
				Amount:        result.Amount,
				PaidAt:        result.ChargedAt,
				Tier:          quote.Tier,
				CouponApplied: quote.CouponApplied,
				UserID:        user.ID,
				UserEmail:     user.Email,
				Status:        models.PaymentCompleted,
				TransactionID: result.TransactionID,
			}
			if err := tx.Create(&paymentRecord).Error; err != nil {
				return err
			}

			registration.PaymentStatus = models.PaymentStatusPaid
			registration.PaymentAmount = result.Amount
			registration.TicketType = quote.Tier
			registration.PaymentID = &paymentRecord.ID
		}

		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&event).
			Update("attendee_count", gorm.Expr("attendee_count + ?", 1)).Error
	})

	if txErr != nil {
		respondRegistrationError(c, txErr)
		return
	}

	monitoring.CountRegistration("registered")
	if registration.PaymentStatus == models.PaymentStatusPaid {
		monitoring.CountPayment("completed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Successfully registered for the event.",
		"registration": registration,
	})
}

func respondRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
	case errors.Is(err, errRegistrationClosed):
		monitoring.CountRegistration("rejected")
		helpers.RespondWithError(c, http.StatusConflict, "Registration is closed for this event.")
	case errors.Is(err, errEventFull):
		monitoring.CountRegistration("rejected")
		helpers.RespondWithError(c, http.StatusConflict, "Event is fully booked.")
	case errors.Is(err, errAlreadyRegistered):
		monitoring.CountRegistration("rejected")
		helpers.RespondWithError(c, http.StatusConflict, "You are already registered for this event.")
	case errors.Is(err, errTierNotFound):
		helpers.RespondWithError(c, http.StatusBadRequest, "Requested ticket tier is not available.")
	case errors.Is(err, errInvalidCoupon):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid coupon code.")
	case errors.Is(err, errPaymentRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, "Card details are required for paid events.")
	case errors.Is(err, payment.ErrInvalidCard),
		errors.Is(err, payment.ErrInvalidHolder),
		errors.Is(err, payment.ErrInvalidExpiry),
		errors.Is(err, payment.ErrExpiredCard),
		errors.Is(err, payment.ErrInvalidCVV):
		monitoring.CountPayment("declined")
		helpers.RespondWithError(c, http.StatusPaymentRequired, err.Error())
	default:
		monitoring.CountRegistration("error")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to register for the event.")
	}
}

// CancelRegistration removes the caller's registration and releases the
// seat in the same transaction. Paid registrations get their payment
// flipped to refunded.
func CancelRegistration(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&event).Error; err != nil {
			return err
		}

		var registration models.Registration
		if err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).
			First(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotRegistered
			}
			return err
		}

		if registration.PaymentStatus == models.PaymentStatusPaid && registration.PaymentID != nil {
			if err := tx.Model(&models.Payment{}).
				Where("id = ?", registration.PaymentID).
				Update("status", models.PaymentRefunded).Error; err != nil {
				return err
			}
			monitoring.CountPayment("refunded")
		}

		if err := tx.Delete(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&event).
			Update("attendee_count", gorm.Expr("attendee_count - ?", 1)).Error
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(txErr, errNotRegistered):
			helpers.RespondWithError(c, http.StatusNotFound, "You are not registered for this event.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel registration.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration cancelled successfully.",
	})
}

func ListMyRegistrations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registrations []models.Registration
	err := gormDB.Preload("Event").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&registrations).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registrations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

func CheckRegistration(c *gin.Context) {
	eventID := c.Param("id")

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var count int64
	err := gormDB.Model(&models.Registration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error checking registration.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": count > 0})
}
