package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/controllers"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
)

type orderFixture struct {
	db        *gorm.DB
	router    *gin.Engine
	carts     *cart.Store
	session   models.DineInSession
	padThai   models.Menu
	friedRice models.Menu
}

func setupOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	utils.InitLogger()

	db := setupTestDB()
	carts := cart.NewStore(controllers.NewCartSaver(db))

	gin.SetMode(gin.TestMode)
	r := gin.Default()

	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, carts)
	r.GET("/user/cart", cartCtrl.GetCart)
	r.POST("/user/cart/items", cartCtrl.AddItem)
	r.POST("/user/orders", orderCtrl.CreateOrder)
	r.GET("/user/orders", orderCtrl.GetOrdersBySession)

	branch := models.Branch{Name: "Test Branch", IsOpen: true}
	assert.NoError(t, db.Create(&branch).Error)

	table := models.Table{BranchID: branch.ID, TableNumber: "A3", Status: models.TableOccupied, QRCode: "QR-ORDER-A3"}
	assert.NoError(t, db.Create(&table).Error)

	session := models.DineInSession{TableID: table.ID, SessionKey: "order-test-session", Status: models.SessionActive}
	assert.NoError(t, db.Create(&session).Error)

	category := models.MenuCategory{Name: "Mains", SortOrder: 1}
	assert.NoError(t, db.Create(&category).Error)

	padThai := models.Menu{CategoryID: category.ID, Name: "ผัดไทย", NameEn: "Pad Thai", Price: 150, Stock: 10, IsAvailable: true}
	friedRice := models.Menu{CategoryID: category.ID, Name: "ข้าวผัด", NameEn: "Fried Rice", Price: 120, Stock: 10, IsAvailable: true}
	assert.NoError(t, db.Create(&padThai).Error)
	assert.NoError(t, db.Create(&friedRice).Error)

	return &orderFixture{
		db:        db,
		router:    r,
		carts:     carts,
		session:   session,
		padThai:   padThai,
		friedRice: friedRice,
	}
}

func TestCheckoutPricesFromMenusTable(t *testing.T) {
	f := setupOrderFixture(t)

	// Quantities only; the client never states a price
	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
		"items": []map[string]interface{}{
			{"menu_id": f.padThai.ID, "quantity": 2},
			{"menu_id": f.friedRice.ID, "quantity": 1},
		},
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 420.0, resp.Data.TotalAmount)
	assert.Equal(t, models.OrderPending, resp.Data.Status)
	assert.Len(t, resp.Data.OrderItems, 2)
	for _, item := range resp.Data.OrderItems {
		switch item.MenuID {
		case f.padThai.ID:
			assert.Equal(t, 150.0, item.Price)
			assert.Equal(t, 2, item.Quantity)
		case f.friedRice.ID:
			assert.Equal(t, 120.0, item.Price)
			assert.Equal(t, 1, item.Quantity)
		default:
			t.Fatalf("unexpected menu id %d", item.MenuID)
		}
		assert.Equal(t, models.ItemPending, item.Status)
	}

	// Stock came down by the ordered quantities
	var menu models.Menu
	assert.NoError(t, f.db.First(&menu, f.padThai.ID).Error)
	assert.Equal(t, 8, menu.Stock)
}

func TestCheckoutDrainsCart(t *testing.T) {
	f := setupOrderFixture(t)

	w := postJSON(t, f.router, "/user/cart/items", map[string]interface{}{
		"session_key": f.session.SessionKey,
		"menu_id":     f.padThai.ID,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, f.router, "/user/cart/items", map[string]interface{}{
		"session_key": f.session.SessionKey,
		"menu_id":     f.padThai.ID,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// No explicit items: checkout uses the server-side cart
	w = postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 300.0, resp.Data.TotalAmount)

	// Cart is cleared on success
	assert.True(t, f.carts.IsEmpty(f.session.SessionKey))
	assert.Equal(t, 0.0, f.carts.Total(f.session.SessionKey))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := setupOrderFixture(t)

	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	f := setupOrderFixture(t)

	f.padThai.IsAvailable = false
	assert.NoError(t, f.db.Save(&f.padThai).Error)
	// The cart was filled before the menu went off sale
	_, err := f.carts.AddItem(f.session.SessionKey, cart.Item{MenuID: f.padThai.ID, Name: f.padThai.Name, Price: f.padThai.Price})
	assert.NoError(t, err)

	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Nothing was ordered and the cart survived for a retry
	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.False(t, f.carts.IsEmpty(f.session.SessionKey))
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := setupOrderFixture(t)

	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
		"items": []map[string]interface{}{
			{"menu_id": f.padThai.ID, "quantity": 3},
			{"menu_id": f.friedRice.ID, "quantity": 99},
		},
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The pad thai decrement inside the failed transaction was undone
	var menu models.Menu
	assert.NoError(t, f.db.First(&menu, f.padThai.ID).Error)
	assert.Equal(t, 10, menu.Stock)

	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutUnknownSessionRejected(t *testing.T) {
	f := setupOrderFixture(t)

	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": "no-such-session",
		"items": []map[string]interface{}{
			{"menu_id": f.padThai.ID, "quantity": 1},
		},
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrdersBySessionTracking(t *testing.T) {
	f := setupOrderFixture(t)

	w := postJSON(t, f.router, "/user/orders", map[string]interface{}{
		"session_key": f.session.SessionKey,
		"items": []map[string]interface{}{
			{"menu_id": f.friedRice.ID, "quantity": 1},
		},
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	rec := getWithToken(t, f.router, fmt.Sprintf("/user/orders?session_key=%s", f.session.SessionKey), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 120.0, resp.Data[0].TotalAmount)
}
