package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

type EventRequest struct {
	Title                string            `json:"title" binding:"required"`
	Description          string            `json:"description" binding:"required"`
	Date                 string            `json:"date" binding:"required"`
	StartTime            string            `json:"start_time" binding:"required"`
	EndTime              string            `json:"end_time" binding:"required"`
	Location             string            `json:"location" binding:"required"`
	Category             string            `json:"category" binding:"required"`
	Capacity             int               `json:"capacity" binding:"required,min=1"`
	RegistrationDeadline *time.Time        `json:"registration_deadline"`
	Requirements         string            `json:"requirements"`
	ImageURL             string            `json:"image_url"`
	Price                *decimal.Decimal  `json:"price"`
	Status               string            `json:"status"`
	OrganizerType        string            `json:"organizer_type" binding:"required,oneof=admin department club"`
	OrganizerID          *uuid.UUID        `json:"organizer_id"`
	OrganizerName        string            `json:"organizer_name"`
	Agenda               []AgendaItemInput `json:"agenda"`
}

type AgendaItemInput struct {
	Time     string `json:"time" binding:"required"`
	Activity string `json:"activity" binding:"required"`
}

// resolveOrganizerName fills the denormalized organizer display name from
// the owning department or club when the caller didn't supply one.
func resolveOrganizerName(gormDB *gorm.DB, req *EventRequest) string {
	if req.OrganizerName != "" {
		return req.OrganizerName
	}
	if req.OrganizerID != nil {
		switch req.OrganizerType {
		case models.OrganizerDepartment:
			var department models.Department
			if err := gormDB.Where("id = ?", req.OrganizerID).First(&department).Error; err == nil {
				return department.Name
			}
		case models.OrganizerClub:
			var club models.Club
			if err := gormDB.Where("id = ?", req.OrganizerID).First(&club).Error; err == nil {
				return club.Name
			}
		}
	}
	return "Campus Administration"
}

func buildAgenda(eventID uuid.UUID, items []AgendaItemInput) []models.AgendaItem {
	agenda := make([]models.AgendaItem, 0, len(items))
	for i, item := range items {
		agenda = append(agenda, models.AgendaItem{
			EventID:  eventID,
			Position: i,
			Time:     item.Time,
			Activity: item.Activity,
		})
	}
	return agenda
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
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

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.EventStatusDraft
	}

	event := models.Event{
		ID:                   uuid.New(),
		Title:                req.Title,
		Description:          req.Description,
		Date:                 date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Location:             req.Location,
		Category:             req.Category,
		Capacity:             req.Capacity,
		AttendeeCount:        0,
		Status:               status,
		RegistrationDeadline: req.RegistrationDeadline,
		Requirements:         req.Requirements,
		ImageURL:             req.ImageURL,
		Price:                req.Price,
		OrganizerType:        req.OrganizerType,
		OrganizerID:          req.OrganizerID,
		OrganizerName:        resolveOrganizerName(gormDB, &req),
		CreatedBy:            user.ID,
	}
	if req.OrganizerType == models.OrganizerDepartment {
		event.DepartmentID = req.OrganizerID
	}
	if req.OrganizerType == models.OrganizerClub {
		event.ClubID = req.OrganizerID
	}
	event.Agenda = buildAgenda(event.ID, req.Agenda)

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("Agenda", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{}).Where("status = ?", models.EventStatusPublished)

	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if term := c.Query("q"); term != "" {
		pattern := fmt.Sprintf("%%%s%%", term)
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		parsed, err := helpers.ParseDate(startDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD.")
			return
		}
		query = query.Where("date >= ?", parsed)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		parsed, err := helpers.ParseDate(endDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD.")
			return
		}
		query = query.Where("date <= ?", parsed)
	}
	if c.Query("upcoming") == "true" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		query = query.Where("date >= ?", today)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Agenda").Offset(offset).Limit(limitNum).Order("date ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

// ListEventsByOrganizer serves /departments/:id/events and /clubs/:id/events.
func ListEventsByOrganizer(column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID := c.Param("id")

		db, exists := c.Get("db")
		if !exists {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
			return
		}
		gormDB := db.(*gorm.DB)

		var events []models.Event
		err := gormDB.Where(fmt.Sprintf("%s = ?", column), organizerID).
			Order("date ASC").Find(&events).Error
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// canManageEvent allows the creator and admins to mutate an event.
func canManageEvent(c *gin.Context, event *models.Event) bool {
	role, _ := c.Get("role")
	if role == models.RoleAdmin {
		return true
	}
	userID, exists := c.Get("user_id")
	return exists && event.CreatedBy == userID
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if !canManageEvent(c, &event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to update this event.")
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Date = date
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Location = req.Location
	event.Category = req.Category
	event.Capacity = req.Capacity
	event.RegistrationDeadline = req.RegistrationDeadline
	event.Requirements = req.Requirements
	event.ImageURL = req.ImageURL
	event.Price = req.Price
	if req.Status != "" {
		event.Status = req.Status
	}
	event.OrganizerType = req.OrganizerType
	event.OrganizerID = req.OrganizerID
	event.OrganizerName = resolveOrganizerName(gormDB, &req)

	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		if req.Agenda == nil {
			return nil
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.AgendaItem{}).Error; err != nil {
			return err
		}
		if agenda := buildAgenda(event.ID, req.Agenda); len(agenda) > 0 {
			return tx.Create(&agenda).Error
		}
		return nil
	})
	if txErr != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

type EventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published cancelled completed"`
}

func UpdateEventStatus(c *gin.Context) {
	eventID := c.Param("id")

	var req EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status. Must be draft, published, cancelled or completed.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if !canManageEvent(c, &event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to update this event.")
		return
	}

	if err := gormDB.Model(&event).Update("status", req.Status).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event status updated successfully.",
		"status":  req.Status,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if !canManageEvent(c, &event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this event.")
		return
	}

	if err := gormDB.Delete(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
