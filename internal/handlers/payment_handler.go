package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
	"github.com/arjunrk/campusvibe/internal/monitoring"
)

func paymentOrderClause(c *gin.Context) string {
	sortBy := c.DefaultQuery("sort", "date")
	order := c.DefaultQuery("order", "desc")
	if order != "asc" {
		order = "desc"
	}
	if sortBy == "amount" {
		return "amount " + order
	}
	return "paid_at " + order
}

// ListPayments serves the admin payment screen: all payments, optionally
// filtered by status, sortable by date or amount.
func ListPayments(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		if status != models.PaymentCompleted && status != models.PaymentRefunded && status != models.PaymentPending {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment status filter.")
			return
		}
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order(paymentOrderClause(c)).Find(&payments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func ListEventPayments(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var payments []models.Payment
	err := gormDB.Where("event_id = ?", c.Param("id")).
		Order("paid_at DESC").Find(&payments).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ListMyPayments is the signed-in user's payment history, sortable the
// same way as the admin list.
func ListMyPayments(c *gin.Context) {
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

	var payments []models.Payment
	err := gormDB.Where("user_id = ?", userID).
		Order(paymentOrderClause(c)).Find(&payments).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payment history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// RefundPayment flips a completed payment to refunded and marks the
// matching registration. The seat itself is only released when the user
// cancels the registration.
func RefundPayment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var refunded models.Payment
	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", c.Param("id")).First(&refunded).Error; err != nil {
			return err
		}
		if refunded.Status != models.PaymentCompleted {
			return errNotRefundable
		}

		if err := tx.Model(&refunded).Update("status", models.PaymentRefunded).Error; err != nil {
			return err
		}

		return tx.Model(&models.Registration{}).
			Where("payment_id = ?", refunded.ID).
			Update("payment_status", models.PaymentStatusRefunded).Error
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Payment not found.")
		case errors.Is(txErr, errNotRefundable):
			helpers.RespondWithError(c, http.StatusConflict, "Only completed payments can be refunded.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to refund payment.")
		}
		return
	}

	monitoring.CountPayment("refunded")
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment refunded successfully.",
		"payment": refunded,
	})
}

var errNotRefundable = errors.New("payment is not refundable")
