package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB    *gorm.DB
	Carts *cart.Store
}

func NewOrderController(db *gorm.DB, carts *cart.Store) *OrderController {
	return &OrderController{DB: db, Carts: carts}
}

// CreateOrder is the checkout: it turns the session's cart into an order.
// Items arrive as menu id and quantity only; every price is read back from
// the menus table. On success the cart is cleared; on any failure the cart
// is left untouched so the customer can retry.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		SessionKey string              `json:"session_key" binding:"required"`
		Notes      string              `json:"notes"`
		Items      []cart.CheckoutItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.DineInSession
	if err := oc.DB.Where("session_key = ? AND status = ?", req.SessionKey, models.SessionActive).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no active session for this key"))
		return
	}

	// The request may carry the item list explicitly; otherwise checkout
	// drains the server-side cart of the session.
	items := req.Items
	fromCart := false
	if len(items) == 0 {
		items = oc.Carts.CheckoutItems(req.SessionKey)
		fromCart = true
	}
	if len(items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			SessionID:     session.ID,
			TableID:       session.TableID,
			Status:        models.OrderPending,
			PaymentStatus: models.PaymentPending,
			Notes:         req.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range items {
			if item.Quantity <= 0 {
				return fmt.Errorf("invalid quantity for menu %d", item.MenuID)
			}

			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				return fmt.Errorf("menu %d not found", item.MenuID)
			}
			if !menu.IsAvailable {
				return fmt.Errorf("menu %q is not available", menu.Name)
			}
			if menu.Stock < item.Quantity {
				return fmt.Errorf("menu %q is out of stock", menu.Name)
			}

			menu.Stock -= item.Quantity
			if err := tx.Save(&menu).Error; err != nil {
				return err
			}

			orderItem := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu.ID,
				Quantity: item.Quantity,
				Price:    menu.Price,
				Notes:    item.Notes,
				Status:   models.ItemPending,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += menu.Price * float64(item.Quantity)
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	if fromCart {
		if err := oc.Carts.Clear(req.SessionKey); err != nil {
			// Order exists either way; a stale snapshot only costs a re-clear
			utils.ErrorLogger.Printf("Failed to clear cart for session %s: %v", req.SessionKey, err)
		}
	}

	oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").First(&order, order.ID)
	board.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order #%d created at table %d (total=%.2f)", order.ID, order.TableID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrdersBySession lists a visit's orders for the tracking view.
func (oc *OrderController) GetOrdersBySession(c *gin.Context) {
	sessionKey := c.Query("session_key")
	if sessionKey == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("session_key is required"))
		return
	}

	var session models.DineInSession
	if err := oc.DB.Where("session_key = ?", sessionKey).First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		Where("session_id = ?", session.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders of session", orders)
}

// GetOrderByID returns one order with its items.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders lists orders for the back-office, filterable by status and
// day.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").Preload("Table")

	if status := c.Query("status"); status != "" && status != "all" {
		if !models.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", status))
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(created_at) = ?", date)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// RecallOrder is the admin override that pulls a terminal order back onto
// the kitchen board for correction. The only backward move in the machine.
func (oc *OrderController) RecallOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !models.CanRecall(order.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order in status %q cannot be recalled", order.Status))
		return
	}

	order.Status = models.OrderCooking
	order.FinishCookingTime = nil
	now := time.Now()
	if order.StartCookingTime == nil {
		order.StartCookingTime = &now
	}
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order #%d recalled to kitchen", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order recalled", order)
}
