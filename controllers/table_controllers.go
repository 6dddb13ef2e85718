package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable adds a table to a branch and mints its QR code.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		BranchID    uint   `json:"branch_id" binding:"required"`
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var branch models.Branch
	if err := tc.DB.First(&branch, req.BranchID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 4
	}

	table := models.Table{
		BranchID:    req.BranchID,
		TableNumber: req.TableNumber,
		Capacity:    capacity,
		QRCode:      fmt.Sprintf("QR-TABLE-%s-%s", req.TableNumber, uuid.NewString()),
		Status:      models.TableAvailable,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("New table created: %s (branch=%d)", table.TableNumber, table.BranchID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables lists every table, optionally filtered by status.
func (tc *TableController) GetAllTables(c *gin.Context) {
	query := tc.DB.Model(&models.Table{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID returns one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus sets a table's status directly (admin override).
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Status != models.TableAvailable && body.Status != models.TableOccupied && body.Status != models.TableDirty {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status %q", body.Status))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// MarkTableClean flips a dirty table back to available.
func (tc *TableController) MarkTableClean(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.Status != models.TableDirty {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table is not dirty"))
		return
	}

	table.Status = models.TableAvailable
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table marked as clean", table)
}

// DeleteTable removes a table.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
