package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// CookerController backs the kitchen board. The board polls GetKitchenOrders
// and issues set-status requests; all transition legality is checked here so
// a stale board cannot push an order somewhere illegal.
type CookerController struct {
	DB *gorm.DB
}

func NewCookerController(db *gorm.DB) *CookerController {
	return &CookerController{DB: db}
}

// BoardOrder is an order as the kitchen board shows it, with the transitions
// the board may offer. "ready" is withheld until every item is ready, so the
// board never renders a Mark Ready button it cannot honor.
type BoardOrder struct {
	models.Order
	NextStatuses  []string `json:"next_statuses"`
	AllItemsReady bool     `json:"all_items_ready"`
}

func boardOrder(order models.Order) BoardOrder {
	next := models.NextStatuses(order.Status)
	allReady := order.AllItemsReady()
	if !allReady {
		filtered := next[:0]
		for _, s := range next {
			if s != models.OrderReady {
				filtered = append(filtered, s)
			}
		}
		next = filtered
	}
	return BoardOrder{Order: order, NextStatuses: next, AllItemsReady: allReady}
}

// GetKitchenOrders lists the orders the kitchen cares about. Default is the
// active set (pending, cooking, ready); ?status= narrows to one column and
// ?status=all includes history.
func (kc *CookerController) GetKitchenOrders(c *gin.Context) {
	query := kc.DB.Preload("OrderItems").Preload("OrderItems.Menu").Preload("Table")

	switch status := c.Query("status"); status {
	case "", "active":
		query = query.Where("status IN ?", []string{models.OrderPending, models.OrderCooking, models.OrderReady})
	case "all":
		// no filter
	default:
		if !models.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", status))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]BoardOrder, 0, len(orders))
	for _, order := range orders {
		out = append(out, boardOrder(order))
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", out)
}

// GetPendingItems lists items waiting to be cooked, oldest first.
func (kc *CookerController) GetPendingItems(c *gin.Context) {
	var items []models.OrderItem
	if err := kc.DB.Preload("Menu").
		Where("status = ?", models.ItemPending).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pending items", items)
}

// UpdateOrderStatus is the single idempotent set-status operation for an
// order. Repeating the current status is a no-op success; anything else must
// be a legal forward transition, and moving to ready additionally requires
// every item to be ready.
func (kc *CookerController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}

	var order models.Order
	if err := kc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status == req.Status {
		utils.RespondJSON(c, http.StatusOK, "Order already in status", boardOrder(order))
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot move order from %q to %q", order.Status, req.Status))
		return
	}

	if req.Status == models.OrderReady && !order.AllItemsReady() {
		utils.RespondError(c, http.StatusConflict, ErrItemsNotReady)
		return
	}

	now := time.Now()
	switch req.Status {
	case models.OrderCooking:
		order.StartCookingTime = &now
	case models.OrderReady:
		order.FinishCookingTime = &now
	}
	order.Status = req.Status

	if err := kc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order #%d moved to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", boardOrder(order))
}

// UpdateItemStatus moves one item through its own machine. Starting the
// first item pulls a pending order into cooking; finishing the last one
// promotes the order to ready.
func (kc *CookerController) UpdateItemStatus(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.OrderItem
	if err := kc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if item.Status == req.Status {
		utils.RespondJSON(c, http.StatusOK, "Item already in status", item)
		return
	}

	if !models.CanTransitionItem(item.Status, req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot move item from %q to %q", item.Status, req.Status))
		return
	}

	item.Status = req.Status
	if err := kc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	board.BroadcastItemUpdate(item)

	var order models.Order
	if err := kc.DB.Preload("OrderItems").First(&order, item.OrderID).Error; err == nil {
		now := time.Now()
		switch {
		case req.Status == models.ItemPreparing && order.Status == models.OrderPending:
			order.Status = models.OrderCooking
			order.StartCookingTime = &now
			kc.DB.Save(&order)
			board.BroadcastOrderUpdate(order)
		case req.Status == models.ItemReady && order.Status == models.OrderCooking && order.AllItemsReady():
			order.Status = models.OrderReady
			order.FinishCookingTime = &now
			kc.DB.Save(&order)
			board.BroadcastOrderUpdate(order)
			utils.InfoLogger.Printf("Order #%d is ready to serve", order.ID)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}

// ErrItemsNotReady guards the order-level ready transition.
var ErrItemsNotReady = &CustomError{"All items must be ready before the order can be marked ready"}
