package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

// GetAllBranches lists branches. Customers only see open ones; the admin
// back-office passes ?all=true.
func (bc *BranchController) GetAllBranches(c *gin.Context) {
	query := bc.DB.Model(&models.Branch{})
	if c.Query("all") != "true" {
		query = query.Where("is_open = ?", true)
	}

	var branches []models.Branch
	if err := query.Order("name asc").Find(&branches).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of branches", branches)
}

// CreateBranch adds a branch.
func (bc *BranchController) CreateBranch(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	branch := models.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		IsOpen:  true,
	}
	if err := bc.DB.Create(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New branch created: %s", branch.Name)
	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

// UpdateBranch changes branch details or the open flag.
func (bc *BranchController) UpdateBranch(c *gin.Context) {
	idStr := c.Param("branch_id")
	id, _ := strconv.Atoi(idStr)

	var branch models.Branch
	if err := bc.DB.First(&branch, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
		IsOpen  *bool   `json:"is_open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.IsOpen != nil {
		branch.IsOpen = *req.IsOpen
	}

	if err := bc.DB.Save(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Branch updated", branch)
}

// DeleteBranch removes a branch without tables.
func (bc *BranchController) DeleteBranch(c *gin.Context) {
	idStr := c.Param("branch_id")
	id, _ := strconv.Atoi(idStr)

	var count int64
	bc.DB.Model(&models.Table{}).Where("branch_id = ?", id).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrBranchHasTables)
		return
	}

	if err := bc.DB.Delete(&models.Branch{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Branch deleted", gin.H{"branch_id": id})
}

// GetBranchTables lists the tables of one branch.
func (bc *BranchController) GetBranchTables(c *gin.Context) {
	idStr := c.Param("branch_id")
	id, _ := strconv.Atoi(idStr)

	var tables []models.Table
	if err := bc.DB.Where("branch_id = ?", id).Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tables of branch", tables)
}

var ErrBranchHasTables = &CustomError{"Branch still has tables"}
