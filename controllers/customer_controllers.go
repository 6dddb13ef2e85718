package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// CustomerController handles the anonymous dine-in flow: QR check-in,
// calling a waiter and settling the bill.
type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// CheckIn associates a scanned QR payload with a dine-in session. Scanning
// an already-occupied table again returns the existing active session, so a
// page reload does not open a second session.
func (cc *CustomerController) CheckIn(c *gin.Context) {
	var req struct {
		TableID   uint   `json:"table_id" binding:"required"`
		BranchID  uint   `json:"branch_id"`
		QRCode    string `json:"qr_code"`
		GuestName string `json:"guest_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := cc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.BranchID != 0 && table.BranchID != req.BranchID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table does not belong to this branch"))
		return
	}
	if req.QRCode != "" && table.QRCode != req.QRCode {
		utils.RespondError(c, http.StatusBadRequest, errors.New("qr code does not match table"))
		return
	}

	if table.Status == models.TableOccupied {
		var existing models.DineInSession
		if err := cc.DB.Where("table_id = ? AND status = ?", table.ID, models.SessionActive).
			First(&existing).Error; err == nil {
			utils.RespondJSON(c, http.StatusOK, "Session already active", existing)
			return
		}
	}

	if table.Status == models.TableDirty {
		utils.RespondError(c, http.StatusConflict, ErrTableNotReady)
		return
	}

	session := models.DineInSession{
		TableID:    table.ID,
		SessionKey: uuid.NewString(),
		GuestName:  req.GuestName,
		Status:     models.SessionActive,
	}
	if err := cc.DB.Create(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.Status = models.TableOccupied
	if err := cc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Check-in at table %s (session=%s)", table.TableNumber, session.SessionKey)
	utils.RespondJSON(c, http.StatusCreated, "Checked in", session)
}

// GetActiveSession looks up the active session of a table, used by a
// reloading client to recover its session key context.
func (cc *CustomerController) GetActiveSession(c *gin.Context) {
	tableID := c.Param("table_id")

	var session models.DineInSession
	if err := cc.DB.Preload("Table").
		Where("table_id = ? AND status = ?", tableID, models.SessionActive).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no active session at this table"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active session", session)
}

// FinishSession closes a visit and flags the table for cleaning.
func (cc *CustomerController) FinishSession(c *gin.Context) {
	var req struct {
		SessionKey string `json:"session_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.DineInSession
	if err := cc.DB.Where("session_key = ?", req.SessionKey).First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	session.Status = models.SessionFinished
	if err := cc.DB.Save(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var table models.Table
	if err := cc.DB.First(&table, session.TableID).Error; err == nil {
		table.Status = models.TableDirty
		cc.DB.Save(&table)
		board.BroadcastTableUpdate(table)
	}

	utils.RespondJSON(c, http.StatusOK, "Session finished", session)
}

// CallWaiter raises a staff notification from the customer's phone.
func (cc *CustomerController) CallWaiter(c *gin.Context) {
	var req struct {
		SessionKey string `json:"session_key" binding:"required"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.DineInSession
	if err := cc.DB.Where("session_key = ? AND status = ?", req.SessionKey, models.SessionActive).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no active session for this key"))
		return
	}

	call := models.WaiterCall{
		SessionID: session.ID,
		TableID:   session.TableID,
		Message:   req.Message,
		Status:    models.WaiterCallPending,
	}
	if err := cc.DB.Create(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastWaiterCall(call)

	utils.InfoLogger.Printf("Waiter called from table %d", session.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Waiter called", call)
}

// CreatePayment records the bill settlement for an order. Cash settles
// immediately; PromptPay opens a pending payment that staff verify (or that
// expires).
func (cc *CustomerController) CreatePayment(c *gin.Context) {
	var req struct {
		OrderID      uint    `json:"order_id" binding:"required"`
		Method       string  `json:"method" binding:"required"`
		CashReceived float64 `json:"cash_received"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Method != models.PaymentMethodCash && req.Method != models.PaymentMethodPromptPay {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown payment method %q", req.Method))
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.PaymentStatus == models.PaymentPaid {
		utils.RespondError(c, http.StatusConflict, ErrAlreadyPaid)
		return
	}
	if order.Status == models.OrderCancelled {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("order is cancelled"))
		return
	}

	// Amount always comes from the order; client figures are display-only
	payment := models.Payment{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  req.Method,
	}

	switch req.Method {
	case models.PaymentMethodCash:
		if req.CashReceived < order.TotalAmount {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("insufficient cash received"))
			return
		}
		now := time.Now()
		payment.Status = models.PaymentRecordSuccess
		payment.CashReceived = req.CashReceived
		payment.Change = req.CashReceived - order.TotalAmount
		payment.PaymentTime = &now
	case models.PaymentMethodPromptPay:
		expiry := time.Now().Add(15 * time.Minute)
		payment.Status = models.PaymentRecordPending
		payment.ReferenceID = uuid.NewString()
		payment.ExpiredAt = &expiry
	}

	if err := cc.DB.Create(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if payment.Status == models.PaymentRecordSuccess {
		order.PaymentStatus = models.PaymentPaid
		if err := cc.DB.Save(&order).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	board.BroadcastPaymentUpdate(payment, order)

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

var (
	ErrTableNotReady = &CustomError{"Table is waiting to be cleaned"}
	ErrAlreadyPaid   = &CustomError{"Order is already paid"}
)
