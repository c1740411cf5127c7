package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/helpers"
	"github.com/arjunrk/campusvibe/internal/models"
)

type DepartmentRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Image        string `json:"image"`
	FacultyCount int    `json:"faculty_count"`
	StudentCount int    `json:"student_count"`
	Courses      int    `json:"courses"`
	Established  string `json:"established"`
}

func ListDepartments(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var departments []models.Department
	if err := gormDB.Order("name").Find(&departments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving departments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

func GetDepartment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var department models.Department
	if err := gormDB.Where("id = ?", c.Param("id")).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Department not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving department.")
		return
	}

	c.JSON(http.StatusOK, department)
}

func CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
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

	department := models.Department{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		FacultyCount: req.FacultyCount,
		StudentCount: req.StudentCount,
		Courses:      req.Courses,
		Established:  req.Established,
	}
	if err := gormDB.Create(&department).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create department.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Department created successfully.",
		"department": department,
	})
}

func UpdateDepartment(c *gin.Context) {
	var req DepartmentRequest
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

	var department models.Department
	if err := gormDB.Where("id = ?", c.Param("id")).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Department not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding department.")
		return
	}

	department.Name = req.Name
	department.Description = req.Description
	department.Image = req.Image
	department.FacultyCount = req.FacultyCount
	department.StudentCount = req.StudentCount
	department.Courses = req.Courses
	department.Established = req.Established

	if err := gormDB.Save(&department).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update department.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Department updated successfully.",
		"department": department,
	})
}

func DeleteDepartment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Department{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete department.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Department not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully."})
}
