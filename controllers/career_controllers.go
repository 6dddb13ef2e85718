package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// CareerController manages staff career paths from the admin back-office.
type CareerController struct {
	DB *gorm.DB
}

func NewCareerController(db *gorm.DB) *CareerController {
	return &CareerController{DB: db}
}

// GetAllCareerPaths lists career records with their users.
func (cc *CareerController) GetAllCareerPaths(c *gin.Context) {
	var paths []models.CareerPath
	if err := cc.DB.Preload("User").Find(&paths).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of career paths", paths)
}

// GetCareerPathByID returns one record.
func (cc *CareerController) GetCareerPathByID(c *gin.Context) {
	idStr := c.Param("career_id")
	id, _ := strconv.Atoi(idStr)

	var path models.CareerPath
	if err := cc.DB.Preload("User").First(&path, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Career path detail", path)
}

// CreateCareerPath attaches a position record to a staff account.
func (cc *CareerController) CreateCareerPath(c *gin.Context) {
	var req struct {
		UserID            uint    `json:"user_id" binding:"required"`
		Position          string  `json:"position" binding:"required"`
		Salary            float64 `json:"salary"`
		ImprovementPoints int     `json:"improvement_points"`
		Level             int     `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := cc.DB.First(&user, req.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	level := req.Level
	if level <= 0 {
		level = 1
	}

	path := models.CareerPath{
		UserID:            req.UserID,
		Position:          req.Position,
		Salary:            req.Salary,
		ImprovementPoints: req.ImprovementPoints,
		Level:             level,
	}
	if err := cc.DB.Create(&path).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Career path created", path)
}

// UpdateCareerPath changes position, salary, points or level.
func (cc *CareerController) UpdateCareerPath(c *gin.Context) {
	idStr := c.Param("career_id")
	id, _ := strconv.Atoi(idStr)

	var path models.CareerPath
	if err := cc.DB.First(&path, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Position          *string  `json:"position"`
		Salary            *float64 `json:"salary"`
		ImprovementPoints *int     `json:"improvement_points"`
		Level             *int     `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Position != nil {
		path.Position = *req.Position
	}
	if req.Salary != nil {
		path.Salary = *req.Salary
	}
	if req.ImprovementPoints != nil {
		path.ImprovementPoints = *req.ImprovementPoints
	}
	if req.Level != nil {
		path.Level = *req.Level
	}

	if err := cc.DB.Save(&path).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Career path updated", path)
}

// DeleteCareerPath removes a record.
func (cc *CareerController) DeleteCareerPath(c *gin.Context) {
	idStr := c.Param("career_id")
	id, _ := strconv.Atoi(idStr)

	if err := cc.DB.Delete(&models.CareerPath{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Career path deleted", gin.H{"career_id": id})
}
