package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// PaymentController is the staff side of payments: listing and verifying
// pending PromptPay transfers.
type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetPayments lists payments, optionally by status.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	query := pc.DB.Preload("Order")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at desc").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}

// GetPaymentByID returns one payment with its order.
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	idStr := c.Param("payment_id")
	id, _ := strconv.Atoi(idStr)

	var payment models.Payment
	if err := pc.DB.Preload("Order").First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// VerifyPayment marks a pending transfer successful after staff checked the
// bank app, and flips the order to paid.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	idStr := c.Param("payment_id")
	id, _ := strconv.Atoi(idStr)

	var payment models.Payment
	if err := pc.DB.Preload("Order").First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if payment.Status != models.PaymentRecordPending {
		utils.RespondError(c, http.StatusConflict, errors.New("payment is not pending"))
		return
	}

	now := time.Now()
	payment.Status = models.PaymentRecordSuccess
	payment.PaymentTime = &now
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uint); ok {
			payment.VerifiedBy = &id
		}
	}

	if err := pc.DB.Save(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, payment.OrderID).Error; err == nil {
		order.PaymentStatus = models.PaymentPaid
		pc.DB.Save(&order)
		board.BroadcastPaymentUpdate(payment, order)
	}

	utils.InfoLogger.Printf("Payment #%d verified for order #%d", payment.ID, payment.OrderID)
	utils.RespondJSON(c, http.StatusOK, "Payment verified", payment)
}
