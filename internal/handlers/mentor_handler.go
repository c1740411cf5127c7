package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

type MentorRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Department        string `json:"department" binding:"required"`
	Specialization    string `json:"specialization"`
	Bio               string `json:"bio"`
	Image             string `json:"image"`
	OfficeHours       string `json:"office_hours"`
	ContactInfo       string `json:"contact_info"`
	YearsOfExperience int    `json:"years_of_experience"`
}

func ListMentors(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Mentor{})
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}

	var mentors []models.Mentor
	if err := query.Order("name").Find(&mentors).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving mentors.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

func GetMentor(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var mentor models.Mentor
	if err := gormDB.Where("id = ?", c.Param("id")).First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Mentor not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving mentor.")
		return
	}

	c.JSON(http.StatusOK, mentor)
}

func CreateMentor(c *gin.Context) {
	var req MentorRequest
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

	mentor := models.Mentor{
		Name:              req.Name,
		Email:             req.Email,
		Department:        req.Department,
		Specialization:    req.Specialization,
		Bio:               req.Bio,
		Image:             req.Image,
		OfficeHours:       req.OfficeHours,
		ContactInfo:       req.ContactInfo,
		YearsOfExperience: req.YearsOfExperience,
	}
	if err := gormDB.Create(&mentor).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create mentor.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Mentor created successfully.",
		"mentor":  mentor,
	})
}

func UpdateMentor(c *gin.Context) {
	var req MentorRequest
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

	var mentor models.Mentor
	if err := gormDB.Where("id = ?", c.Param("id")).First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Mentor not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding mentor.")
		return
	}

	mentor.Name = req.Name
	mentor.Email = req.Email
	mentor.Department = req.Department
	mentor.Specialization = req.Specialization
	mentor.Bio = req.Bio
	mentor.Image = req.Image
	mentor.OfficeHours = req.OfficeHours
	mentor.ContactInfo = req.ContactInfo
	mentor.YearsOfExperience = req.YearsOfExperience

	if err := gormDB.Save(&mentor).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update mentor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Mentor updated successfully.",
		"mentor":  mentor,
	})
}

func DeleteMentor(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Mentor{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete mentor.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Mentor not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentor deleted successfully."})
}
