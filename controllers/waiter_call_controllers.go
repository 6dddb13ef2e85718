package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// WaiterCallController is the staff side of the call-waiter feature.
type WaiterCallController struct {
	DB *gorm.DB
}

func NewWaiterCallController(db *gorm.DB) *WaiterCallController {
	return &WaiterCallController{DB: db}
}

// GetAllWaiterCalls lists calls, pending first.
func (wc *WaiterCallController) GetAllWaiterCalls(c *gin.Context) {
	query := wc.DB.Preload("Table")
	if c.Query("status") != "all" {
		query = query.Where("status = ?", models.WaiterCallPending)
	}

	var calls []models.WaiterCall
	if err := query.Order("created_at asc").Find(&calls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of waiter calls", calls)
}

// AcknowledgeWaiterCall marks a call handled.
func (wc *WaiterCallController) AcknowledgeWaiterCall(c *gin.Context) {
	idStr := c.Param("call_id")
	id, _ := strconv.Atoi(idStr)

	var call models.WaiterCall
	if err := wc.DB.First(&call, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	call.Status = models.WaiterCallAcknowledged
	if err := wc.DB.Save(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waiter call acknowledged", call)
}
