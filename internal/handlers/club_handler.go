package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

type ClubRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Image           string `json:"image"`
	Category        string `json:"category" binding:"required"`
	MemberCount     int    `json:"member_count"`
	FoundedYear     string `json:"founded_year"`
	MeetingSchedule string `json:"meeting_schedule"`
	President       string `json:"president"`
	ContactEmail    string `json:"contact_email"`
}

func ListClubs(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Club{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var clubs []models.Club
	if err := query.Order("name").Find(&clubs).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving clubs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func GetClub(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var club models.Club
	if err := gormDB.Where("id = ?", c.Param("id")).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving club.")
		return
	}

	c.JSON(http.StatusOK, club)
}

func CreateClub(c *gin.Context) {
	var req ClubRequest
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

	club := models.Club{
		Name:            req.Name,
		Description:     req.Description,
		Image:           req.Image,
		Category:        req.Category,
		MemberCount:     req.MemberCount,
		FoundedYear:     req.FoundedYear,
		MeetingSchedule: req.MeetingSchedule,
		President:       req.President,
		ContactEmail:    req.ContactEmail,
	}
	if err := gormDB.Create(&club).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create club.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Club created successfully.",
		"club":    club,
	})
}

func UpdateClub(c *gin.Context) {
	var req ClubRequest
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

	var club models.Club
	if err := gormDB.Where("id = ?", c.Param("id")).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding club.")
		return
	}

	club.Name = req.Name
	club.Description = req.Description
	club.Image = req.Image
	club.Category = req.Category
	club.MemberCount = req.MemberCount
	club.FoundedYear = req.FoundedYear
	club.MeetingSchedule = req.MeetingSchedule
	club.President = req.President
	club.ContactEmail = req.ContactEmail

	if err := gormDB.Save(&club).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update club.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Club updated successfully.",
		"club":    club,
	})
}

func DeleteClub(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Club{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete club.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted successfully."})
}
