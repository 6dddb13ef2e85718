package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartController exposes the session cart. The store is injected; this
// controller only validates the session and the menu before mutating.
type CartController struct {
	DB    *gorm.DB
	Carts *cart.Store
}

func NewCartController(db *gorm.DB, carts *cart.Store) *CartController {
	return &CartController{DB: db, Carts: carts}
}

// NewCartSaver mirrors cart lines into the cart_snapshots table on every
// mutation.
func NewCartSaver(db *gorm.DB) cart.Saver {
	return func(sessionKey string, lines []cart.Line) error {
		payload, err := json.Marshal(lines)
		if err != nil {
			return err
		}
		snapshot := models.CartSnapshot{
			SessionKey: sessionKey,
			Payload:    string(payload),
		}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&snapshot).Error
	}
}

func (cc *CartController) activeSession(c *gin.Context, sessionKey string) (*models.DineInSession, bool) {
	if sessionKey == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("session_key is required"))
		return nil, false
	}

	var session models.DineInSession
	if err := cc.DB.Where("session_key = ? AND status = ?", sessionKey, models.SessionActive).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no active session for this key"))
		return nil, false
	}
	return &session, true
}

// hydrate restores the cart from its persisted snapshot after a restart.
func (cc *CartController) hydrate(sessionKey string) {
	if !cc.Carts.IsEmpty(sessionKey) {
		return
	}

	var snapshot models.CartSnapshot
	if err := cc.DB.Where("session_key = ?", sessionKey).First(&snapshot).Error; err != nil {
		return
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(snapshot.Payload), &lines); err != nil || len(lines) == 0 {
		return
	}
	cc.Carts.Restore(sessionKey, lines)
}

func (cc *CartController) respondCart(c *gin.Context, sessionKey string, message string) {
	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"items": cc.Carts.Lines(sessionKey),
		"total": cc.Carts.Total(sessionKey),
	})
}

// GetCart returns the session's current selections and display total.
func (cc *CartController) GetCart(c *gin.Context) {
	sessionKey := c.Query("session_key")
	if _, ok := cc.activeSession(c, sessionKey); !ok {
		return
	}

	cc.hydrate(sessionKey)
	cc.respondCart(c, sessionKey, "Cart contents")
}

// AddItem puts one unit of a menu into the cart, merging duplicates.
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		SessionKey string `json:"session_key" binding:"required"`
		MenuID     uint   `json:"menu_id" binding:"required"`
		Notes      string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, ok := cc.activeSession(c, req.SessionKey); !ok {
		return
	}

	var menu models.Menu
	if err := cc.DB.First(&menu, req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !menu.IsAvailable {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("menu %q is not available", menu.Name))
		return
	}

	cc.hydrate(req.SessionKey)
	if _, err := cc.Carts.AddItem(req.SessionKey, cart.Item{
		MenuID: menu.ID,
		Name:   menu.Name,
		Price:  menu.Price,
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if req.Notes != "" {
		if _, err := cc.Carts.SetNotes(req.SessionKey, menu.ID, req.Notes); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	cc.respondCart(c, req.SessionKey, "Item added to cart")
}

// UpdateQuantity adjusts a line by delta; at zero or below the line goes
// away.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		SessionKey string `json:"session_key" binding:"required"`
		Delta      int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, ok := cc.activeSession(c, req.SessionKey); !ok {
		return
	}

	cc.hydrate(req.SessionKey)
	if _, err := cc.Carts.UpdateQuantity(req.SessionKey, uint(menuID), req.Delta); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, req.SessionKey, "Cart updated")
}

// RemoveItem deletes a line outright.
func (cc *CartController) RemoveItem(c *gin.Context) {
	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sessionKey := c.Query("session_key")
	if _, ok := cc.activeSession(c, sessionKey); !ok {
		return
	}

	cc.hydrate(sessionKey)
	if _, err := cc.Carts.RemoveItem(sessionKey, uint(menuID)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, sessionKey, "Item removed from cart")
}
