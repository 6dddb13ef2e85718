package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalOrders    int64   `json:"total_orders"`
	TodayOrders    int64   `json:"today_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	TodayRevenue   float64 `json:"today_revenue"`
	AvgCookingMins float64 `json:"avg_cooking_mins"`
	OrderStats     struct {
		Pending   int64 `json:"pending"`
		Cooking   int64 `json:"cooking"`
		Ready     int64 `json:"ready"`
		Served    int64 `json:"served"`
		Cancelled int64 `json:"cancelled"`
	} `json:"order_stats"`
	TableStats struct {
		Available int64 `json:"available"`
		Occupied  int64 `json:"occupied"`
		Dirty     int64 `json:"dirty"`
	} `json:"table_stats"`
	PendingWaiterCalls int64 `json:"pending_waiter_calls"`
	LowIngredients     int64 `json:"low_ingredients"`
}

// GetDashboardStats aggregates the counters for the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats DashboardStats

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderCooking).Count(&stats.OrderStats.Cooking)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderReady).Count(&stats.OrderStats.Ready)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderServed).Count(&stats.OrderStats.Served)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderCancelled).Count(&stats.OrderStats.Cancelled)

	ac.DB.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) = ?", models.PaymentPaid, today).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TodayRevenue)

	ac.DB.Model(&models.Table{}).Where("status = ?", models.TableAvailable).Count(&stats.TableStats.Available)
	ac.DB.Model(&models.Table{}).Where("status = ?", models.TableOccupied).Count(&stats.TableStats.Occupied)
	ac.DB.Model(&models.Table{}).Where("status = ?", models.TableDirty).Count(&stats.TableStats.Dirty)

	ac.DB.Model(&models.WaiterCall{}).Where("status = ?", models.WaiterCallPending).Count(&stats.PendingWaiterCalls)
	ac.DB.Model(&models.Ingredient{}).Where("quantity <= threshold").Count(&stats.LowIngredients)

	// Averaged in Go so the same query works on mysql and sqlite
	var cooked []models.Order
	ac.DB.Select("start_cooking_time", "finish_cooking_time").
		Where("start_cooking_time IS NOT NULL AND finish_cooking_time IS NOT NULL").
		Find(&cooked)
	if len(cooked) > 0 {
		var total time.Duration
		for _, o := range cooked {
			total += o.FinishCookingTime.Sub(*o.StartCookingTime)
		}
		stats.AvgCookingMins = total.Minutes() / float64(len(cooked))
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetOrderFlow shows the latest orders in a compact shape for the admin
// monitor.
func (ac *AdminController) GetOrderFlow(c *gin.Context) {
	var orders []models.Order
	if err := ac.DB.Preload("OrderItems.Menu").Preload("Table").
		Order("created_at DESC").
		Limit(10).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type flowItem struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	type flowOrder struct {
		OrderID     uint       `json:"order_id"`
		TableNumber string     `json:"table_number"`
		Total       float64    `json:"total"`
		Status      string     `json:"status"`
		CreatedAt   time.Time  `json:"created_at"`
		Items       []flowItem `json:"items"`
	}

	recent := make([]flowOrder, 0, len(orders))
	for _, order := range orders {
		items := make([]flowItem, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			items = append(items, flowItem{Name: item.Menu.Name, Quantity: item.Quantity})
		}
		recent = append(recent, flowOrder{
			OrderID:     order.ID,
			TableNumber: order.Table.TableNumber,
			Total:       order.TotalAmount,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
			Items:       items,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Recent orders retrieved successfully", gin.H{
		"recent_orders": recent,
	})
}
