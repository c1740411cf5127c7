package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

// ToggleBookmark flips the saved-for-later state of an event for the
// caller. The unique (user_id, event_id) index keeps the bookmark list a
// set, so toggling twice always restores the original state.
func ToggleBookmark(c *gin.Context) {
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

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	var bookmarked bool
	txErr := gormDB.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("user_id = ? AND event_id = ?", userUUID, eventID).First(&existing).Error
		switch {
		case err == nil:
			bookmarked = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookmarked = true
			return tx.Create(&models.Bookmark{UserID: userUUID, EventID: eventID}).Error
		default:
			return err
		}
	})
	if txErr != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to toggle bookmark.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func ListBookmarks(c *gin.Context) {
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

	var events []models.Event
	err := gormDB.
		Joins("JOIN bookmarks ON bookmarks.event_id = events.id").
		Where("bookmarks.user_id = ?", userID).
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookmarks.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
