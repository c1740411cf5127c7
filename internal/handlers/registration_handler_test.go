package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/middleware"
	"github.com/arjunrk/campusvibe/internal/models"
	"github.com/arjunrk/campusvibe/internal/payment"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.AgendaItem{},
		&models.Registration{},
		&models.Bookmark{},
		&models.EventPricing{},
		&models.PricingTier{},
		&models.Coupon{},
		&models.Payment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	var role models.Role
	if err := db.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		role = models.Role{Name: models.RoleUser}
		require.NoError(t, db.Create(&role).Error)
	}

	user := models.User{
		Name:     "Asha Patel",
		Email:    email,
		Password: "not-a-real-hash",
		RoleID:   role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, capacity int, price *decimal.Decimal) models.Event {
	event := models.Event{
		Title:         "Tech Summit",
		Description:   "Annual campus technology summit.",
		Date:          time.Now().UTC().AddDate(0, 0, 7),
		StartTime:     "10:00",
		EndTime:       "16:00",
		Location:      "Main Hall",
		Category:      "Technology",
		Capacity:      capacity,
		Status:        models.EventStatusPublished,
		OrganizerType: models.OrganizerAdmin,
		OrganizerName: "Campus Administration",
		Price:         price,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func authedRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.PaymentGatewayMiddleware(payment.NewSimulatedGateway()))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleUser)
		c.Next()
	})
	r.POST("/v1/events/:id/register", RegisterForEvent)
	r.DELETE("/v1/events/:id/register", CancelRegistration)
	r.POST("/v1/events/:id/bookmark", ToggleBookmark)
	r.PUT("/v1/events/:id", UpdateEvent)
	return r
}

func postJSON(r *gin.Engine, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countRegistrations(t *testing.T, db *gorm.DB, userID, eventID uuid.UUID) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Registration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error)
	return count
}

func reloadEvent(t *testing.T, db *gorm.DB, id uuid.UUID) models.Event {
	var event models.Event
	require.NoError(t, db.Where("id = ?", id).First(&event).Error)
	return event
}

func TestRegisterForEventCreatesRowAndIncrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	event := seedEvent(t, db, 100, nil)
	r := authedRouter(db, user.ID)

	w := postJSON(r, "/v1/events/"+event.ID.String()+"/register", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), countRegistrations(t, db, user.ID, event.ID))
	assert.Equal(t, 1, reloadEvent(t, db, event.ID).AttendeeCount)

	var registration models.Registration
	require.NoError(t, db.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		First(&registration).Error)
	assert.Equal(t, models.PaymentStatusFree, registration.PaymentStatus)
	assert.Equal(t, event.Title, registration.EventTitle)
}

func TestRegisterForEventRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	event := seedEvent(t, db, 100, nil)
	r := authedRouter(db, user.ID)

	first := postJSON(r, "/v1/events/"+event.ID.String()+"/register", "")
	second := postJSON(r, "/v1/events/"+event.ID.String()+"/register", "")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "already registered")
	assert.Equal(t, int64(1), countRegistrations(t, db, user.ID, event.ID))
	assert.Equal(t, 1, reloadEvent(t, db, event.ID).AttendeeCount)
}

func TestRegisterForEventRejectsWhenFull(t *testing.T) {
	db := setupTestDB(t)
	first := seedUser(t, db, "asha@campus.edu")
	second := seedUser(t, db, "ravi@campus.edu")
	event := seedEvent(t, db, 1, nil)

	w := postJSON(authedRouter(db, first.ID), "/v1/events/"+event.ID.String()+"/register", "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(authedRouter(db, second.ID), "/v1/events/"+event.ID.String()+"/register", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "fully booked")
	assert.Equal(t, int64(0), countRegistrations(t, db, second.ID, event.ID))
	assert.Equal(t, 1, reloadEvent(t, db, event.ID).AttendeeCount)
}

func TestRegisterForEventChargesPaidEventWithCoupon(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	price := decimal.NewFromInt(100)
	event := seedEvent(t, db, 100, &price)
	require.NoError(t, db.Create(&models.Coupon{Code: "CAMPUS10", Discount: 10}).Error)
	r := authedRouter(db, user.ID)

	body := `{"coupon_code":"CAMPUS10","card":{"number":"4242424242424242","holder":"Asha Patel","expiry":"12/30","cvv":"123"}}`
	w := postJSON(r, "/v1/events/"+event.ID.String()+"/register", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registration models.Registration
	require.NoError(t, db.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		First(&registration).Error)
	assert.Equal(t, models.PaymentStatusPaid, registration.PaymentStatus)
	assert.True(t, registration.PaymentAmount.Equal(decimal.NewFromInt(90)),
		"amount %s", registration.PaymentAmount)
	require.NotNil(t, registration.PaymentID)

	var paymentRecord models.Payment
	require.NoError(t, db.Where("id = ?", registration.PaymentID).First(&paymentRecord).Error)
	assert.Equal(t, models.PaymentCompleted, paymentRecord.Status)
	assert.True(t, paymentRecord.Amount.Equal(decimal.NewFromInt(90)))
	require.NotNil(t, paymentRecord.CouponApplied)
	assert.Equal(t, "CAMPUS10", *paymentRecord.CouponApplied)
}

func TestRegisterForEventRejectsDeclinedCard(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	price := decimal.NewFromInt(100)
	event := seedEvent(t, db, 100, &price)
	r := authedRouter(db, user.ID)

	body := `{"card":{"number":"4242424242424241","holder":"Asha Patel","expiry":"12/30","cvv":"123"}}`
	w := postJSON(r, "/v1/events/"+event.ID.String()+"/register", body)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, int64(0), countRegistrations(t, db, user.ID, event.ID))
	assert.Equal(t, 0, reloadEvent(t, db, event.ID).AttendeeCount)
}

func TestCancelRegistrationReleasesSeat(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	event := seedEvent(t, db, 100, nil)
	r := authedRouter(db, user.ID)

	w := postJSON(r, "/v1/events/"+event.ID.String()+"/register", "")
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/v1/events/"+event.ID.String()+"/register", nil)
	cancel := httptest.NewRecorder()
	r.ServeHTTP(cancel, req)

	assert.Equal(t, http.StatusOK, cancel.Code)
	assert.Equal(t, int64(0), countRegistrations(t, db, user.ID, event.ID))
	assert.Equal(t, 0, reloadEvent(t, db, event.ID).AttendeeCount)
}

func TestRegisterForEventRejectsInvalidEventID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/events/:id/register", RegisterForEvent)

	w := postJSON(r, "/v1/events/not-a-uuid/register", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid event ID")
}

func TestRegisterForEventRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/events/:id/register", RegisterForEvent)

	w := postJSON(r, "/v1/events/"+uuid.NewString()+"/register", `{"ticket_type":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterForEventRequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/events/:id/register", RegisterForEvent)

	w := postJSON(r, "/v1/events/"+uuid.NewString()+"/register", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
