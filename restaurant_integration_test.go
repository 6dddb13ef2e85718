package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/controllers"
	"github.com/thanakornw/dineqr/database"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/router"
	"github.com/thanakornw/dineqr/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupIntegrationDB migrates an in-memory sqlite and runs the standard
// seed, so the flow below starts from the same data a fresh install has.
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CareerPath{},
		&models.Branch{},
		&models.Table{},
		&models.DineInSession{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Ingredient{},
		&models.WaiterCall{},
		&models.CartSnapshot{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func loginAs(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// TestDineInFlow walks the whole visit: pick the branch, check in at table
// A3, build a cart of 2x Pad Thai and 1x Fried Rice, check out, cook and
// serve the order, pay cash, and close the session.
func TestDineInFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupIntegrationDB()
	carts := cart.NewStore(controllers.NewCartSaver(db))
	r := router.SetupRouter(db, carts)

	// --- Branch selection ---
	w := doJSON(t, r, http.MethodGet, "/branches", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var branchResp struct {
		Data []models.Branch `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &branchResp))
	assert.NotEmpty(t, branchResp.Data)
	branch := branchResp.Data[0]

	// --- Scan the QR at table A3 ---
	var table models.Table
	assert.NoError(t, db.Where("table_number = ?", "A3").First(&table).Error)

	w = doJSON(t, r, http.MethodPost, "/user/checkin", map[string]interface{}{
		"table_id":  table.ID,
		"branch_id": branch.ID,
		"qr_code":   table.QRCode,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	sessionKey, _ := data["session_key"].(string)
	assert.NotEmpty(t, sessionKey)

	assert.NoError(t, db.First(&table, table.ID).Error)
	assert.Equal(t, models.TableOccupied, table.Status)

	// A second scan of the same table joins the existing session
	w = doJSON(t, r, http.MethodPost, "/user/checkin", map[string]interface{}{
		"table_id": table.ID,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionKey, decodeData(t, w)["session_key"])

	// --- Build the cart: 2x Pad Thai, 1x Fried Rice ---
	var padThai, friedRice models.Menu
	assert.NoError(t, db.Where("name_en = ?", "Pad Thai").First(&padThai).Error)
	assert.NoError(t, db.Where("name_en = ?", "Fried Rice").First(&friedRice).Error)

	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/user/cart/items", map[string]interface{}{
			"session_key": sessionKey,
			"menu_id":     padThai.ID,
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/user/cart/items", map[string]interface{}{
		"session_key": sessionKey,
		"menu_id":     friedRice.ID,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	cartData := decodeData(t, w)
	assert.Equal(t, 420.0, cartData["total"])

	// --- Checkout ---
	w = doJSON(t, r, http.MethodPost, "/user/orders", map[string]interface{}{
		"session_key": sessionKey,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var orderResp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderResp))
	order := orderResp.Data
	assert.Equal(t, 420.0, order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Len(t, order.OrderItems, 2)
	quantities := map[uint]int{}
	for _, item := range order.OrderItems {
		quantities[item.MenuID] = item.Quantity
	}
	assert.Equal(t, 2, quantities[padThai.ID])
	assert.Equal(t, 1, quantities[friedRice.ID])

	// The cart emptied on success
	w = doJSON(t, r, http.MethodGet, "/user/cart?session_key="+sessionKey, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decodeData(t, w)["total"])

	// --- Kitchen works the order ---
	cookerToken := loginAs(t, r, "cooker@restaurant.com", "cooker123")

	orderPath := fmt.Sprintf("/cooker/orders/%d/status", order.ID)
	w = doJSON(t, r, http.MethodPatch, orderPath, map[string]string{"status": "cooking"}, cookerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Ready is refused while items are still cooking
	w = doJSON(t, r, http.MethodPatch, orderPath, map[string]string{"status": "ready"}, cookerToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	for _, item := range order.OrderItems {
		itemPath := fmt.Sprintf("/cooker/order-items/%d/status", item.ID)
		w = doJSON(t, r, http.MethodPatch, itemPath, map[string]string{"status": "preparing"}, cookerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		w = doJSON(t, r, http.MethodPatch, itemPath, map[string]string{"status": "ready"}, cookerToken)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var cooked models.Order
	assert.NoError(t, db.First(&cooked, order.ID).Error)
	assert.Equal(t, models.OrderReady, cooked.Status)

	w = doJSON(t, r, http.MethodPatch, orderPath, map[string]string{"status": "served"}, cookerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// --- Pay cash ---
	w = doJSON(t, r, http.MethodPost, "/user/payment", map[string]interface{}{
		"order_id":      order.ID,
		"method":        "cash",
		"cash_received": 500,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	payData := decodeData(t, w)
	assert.Equal(t, "success", payData["status"])
	assert.Equal(t, 80.0, payData["change"])

	var paid models.Order
	assert.NoError(t, db.First(&paid, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)

	// --- Close the visit ---
	w = doJSON(t, r, http.MethodPost, "/user/sessions/finish", map[string]string{
		"session_key": sessionKey,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&table, table.ID).Error)
	assert.Equal(t, models.TableDirty, table.Status)

	// A new guest cannot sit down before the table is cleaned
	w = doJSON(t, r, http.MethodPost, "/user/checkin", map[string]interface{}{
		"table_id": table.ID,
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Staff clean it, and the table is open again
	adminToken := loginAs(t, r, "admin@restaurant.com", "admin123")
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/tables/%d/clean", table.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&table, table.ID).Error)
	assert.Equal(t, models.TableAvailable, table.Status)

	// --- Admin sees the day's numbers ---
	w = doJSON(t, r, http.MethodGet, "/admin/dashboard/stats", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	stats := decodeData(t, w)
	assert.Equal(t, 1.0, stats["total_orders"])
	assert.Equal(t, 420.0, stats["total_revenue"])
}
