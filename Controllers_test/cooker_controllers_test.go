package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/thanakornw/dineqr/controllers"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
)

func setupCookerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	cookerCtrl := controllers.NewCookerController(db)
	r.GET("/cooker/orders", cookerCtrl.GetKitchenOrders)
	r.PATCH("/cooker/orders/:order_id/status", cookerCtrl.UpdateOrderStatus)
	r.PATCH("/cooker/order-items/:item_id/status", cookerCtrl.UpdateItemStatus)

	return r
}

// seedKitchenOrder creates a table, a session and a pending order with two
// pending items. Returns the order with items loaded.
func seedKitchenOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()

	branch := models.Branch{Name: "Test Branch", IsOpen: true}
	assert.NoError(t, db.Create(&branch).Error)

	table := models.Table{BranchID: branch.ID, TableNumber: "A3", Status: models.TableOccupied, QRCode: "QR-TEST-A3"}
	assert.NoError(t, db.Create(&table).Error)

	session := models.DineInSession{
		TableID:    table.ID,
		SessionKey: fmt.Sprintf("sess-%d", table.ID),
		Status:     models.SessionActive,
	}
	assert.NoError(t, db.Create(&session).Error)

	category := models.MenuCategory{Name: "Mains", SortOrder: 1}
	assert.NoError(t, db.Create(&category).Error)

	padThai := models.Menu{CategoryID: category.ID, Name: "ผัดไทย", NameEn: "Pad Thai", Price: 150, Stock: 10, IsAvailable: true}
	friedRice := models.Menu{CategoryID: category.ID, Name: "ข้าวผัด", NameEn: "Fried Rice", Price: 120, Stock: 10, IsAvailable: true}
	assert.NoError(t, db.Create(&padThai).Error)
	assert.NoError(t, db.Create(&friedRice).Error)

	order := models.Order{
		SessionID:   session.ID,
		TableID:     table.ID,
		Status:      models.OrderPending,
		TotalAmount: 420,
		OrderItems: []models.OrderItem{
			{MenuID: padThai.ID, Quantity: 2, Price: 150, Status: models.ItemPending},
			{MenuID: friedRice.ID, Quantity: 1, Price: 120, Status: models.ItemPending},
		},
	}
	assert.NoError(t, db.Create(&order).Error)
	return order
}

func patchStatus(t *testing.T, r *gin.Engine, path, status string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	req, err := http.NewRequest("PATCH", path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderStatusForwardOnly(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)
	path := fmt.Sprintf("/cooker/orders/%d/status", order.ID)

	// Skipping a stage is rejected
	w := patchStatus(t, r, path, "ready")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = patchStatus(t, r, path, "served")
	assert.Equal(t, http.StatusConflict, w.Code)

	// The legal next step succeeds
	w = patchStatus(t, r, path, "cooking")
	assert.Equal(t, http.StatusOK, w.Code)

	// Moving backwards is rejected
	w = patchStatus(t, r, path, "pending")
	assert.Equal(t, http.StatusConflict, w.Code)

	var got models.Order
	assert.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderCooking, got.Status)
	assert.NotNil(t, got.StartCookingTime)
}

func TestOrderStatusIdempotentRepeat(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)
	path := fmt.Sprintf("/cooker/orders/%d/status", order.ID)

	w := patchStatus(t, r, path, "cooking")
	assert.Equal(t, http.StatusOK, w.Code)

	// Repeating the current status is a no-op success
	w = patchStatus(t, r, path, "cooking")
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	assert.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderCooking, got.Status)
}

func TestOrderReadyGatedOnItems(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)
	orderPath := fmt.Sprintf("/cooker/orders/%d/status", order.ID)

	w := patchStatus(t, r, orderPath, "cooking")
	assert.Equal(t, http.StatusOK, w.Code)

	// One item done, one still pending: ready must be refused
	first := order.OrderItems[0]
	itemPath := fmt.Sprintf("/cooker/order-items/%d/status", first.ID)
	w = patchStatus(t, r, itemPath, "preparing")
	assert.Equal(t, http.StatusOK, w.Code)
	w = patchStatus(t, r, itemPath, "ready")
	assert.Equal(t, http.StatusOK, w.Code)

	w = patchStatus(t, r, orderPath, "ready")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Finish the second item; its completion promotes the order itself
	second := order.OrderItems[1]
	itemPath = fmt.Sprintf("/cooker/order-items/%d/status", second.ID)
	w = patchStatus(t, r, itemPath, "preparing")
	assert.Equal(t, http.StatusOK, w.Code)
	w = patchStatus(t, r, itemPath, "ready")
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	assert.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderReady, got.Status)
	assert.NotNil(t, got.FinishCookingTime)

	// And ready can be served
	w = patchStatus(t, r, orderPath, "served")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFirstItemStartPullsOrderIntoCooking(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)

	itemPath := fmt.Sprintf("/cooker/order-items/%d/status", order.OrderItems[0].ID)
	w := patchStatus(t, r, itemPath, "preparing")
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	assert.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderCooking, got.Status)
}

func TestItemTransitionsForwardOnly(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)

	itemPath := fmt.Sprintf("/cooker/order-items/%d/status", order.OrderItems[0].ID)

	// pending -> ready skips preparing
	w := patchStatus(t, r, itemPath, "ready")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = patchStatus(t, r, itemPath, "preparing")
	assert.Equal(t, http.StatusOK, w.Code)

	// preparing -> pending moves backwards
	w = patchStatus(t, r, itemPath, "pending")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestKitchenBoardWithholdsReady(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)

	w := patchStatus(t, r, fmt.Sprintf("/cooker/orders/%d/status", order.ID), "cooking")
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/cooker/orders", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			ID            uint     `json:"id"`
			Status        string   `json:"status"`
			NextStatuses  []string `json:"next_statuses"`
			AllItemsReady bool     `json:"all_items_ready"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	got := resp.Data[0]
	assert.Equal(t, models.OrderCooking, got.Status)
	assert.False(t, got.AllItemsReady)
	assert.NotContains(t, got.NextStatuses, models.OrderReady)
	assert.Contains(t, got.NextStatuses, models.OrderCancelled)
}

func TestCancelledOrderIsTerminalForKitchen(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	r := setupCookerRouter(db)
	order := seedKitchenOrder(t, db)
	path := fmt.Sprintf("/cooker/orders/%d/status", order.ID)

	w := patchStatus(t, r, path, "cancelled")
	assert.Equal(t, http.StatusOK, w.Code)

	// Nothing moves a cancelled order
	for _, next := range []string{"pending", "cooking", "ready", "served"} {
		w = patchStatus(t, r, path, next)
		assert.Equal(t, http.StatusConflict, w.Code, "cancelled -> %s should be refused", next)
	}
}
