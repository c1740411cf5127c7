package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

func generateTicketData(registration *models.Registration) string {
	signature := generateTicketSignature(registration.ID, registration.EventID, registration.UserID, os.Getenv("JWT_SECRET"))
	return fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID.String(),
		registration.EventID.String(),
		signature,
	)
}

func generateTicketSignature(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func extractRegistrationID(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "registration:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "registration:"))
}

func validateTicketSignature(registration *models.Registration, qrData string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "signature:") {
		return false
	}

	signature := strings.TrimPrefix(parts[2], "signature:")
	expected := generateTicketSignature(registration.ID, registration.EventID, registration.UserID, os.Getenv("JWT_SECRET"))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GenerateTicketQR renders the caller's entry ticket for an event they
// registered for as a signed QR PNG.
func GenerateTicketQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid registration ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registration models.Registration
	if err := gormDB.Where("id = ?", registrationID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if registration.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a ticket for this registration.")
		return
	}

	if registration.AttendedAt != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Ticket already used.")
		return
	}

	qrImage, err := qrcode.Encode(generateTicketData(&registration), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// CheckInTicket lets the event's organizer scan a ticket at the door and
// mark the registration as attended.
func CheckInTicket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var checkInRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&checkInRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	registrationID, err := extractRegistrationID(checkInRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}

	var registration models.Registration
	if err := gormDB.Preload("Event").Where("id = ?", registrationID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if !validateTicketSignature(&registration, checkInRequest.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	role, _ := c.Get("role")
	if registration.Event == nil || (registration.Event.CreatedBy != userID && role != models.RoleAdmin) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to check in this ticket.")
		return
	}

	if registration.AttendedAt != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Ticket already used.")
		return
	}

	now := time.Now()
	if err := gormDB.Model(&registration).Update("attended_at", now).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to check in ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket validated successfully.",
		"ticket": gin.H{
			"event_title": registration.EventTitle,
			"ticket_type": registration.TicketType,
		},
	})
}
