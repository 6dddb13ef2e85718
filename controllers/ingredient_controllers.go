package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// IngredientController manages kitchen stock from the cooker screen.
type IngredientController struct {
	DB *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{DB: db}
}

// GetAllIngredients lists stock. ?low=true narrows to items at or below
// their reorder threshold.
func (ic *IngredientController) GetAllIngredients(c *gin.Context) {
	query := ic.DB.Model(&models.Ingredient{})
	if c.Query("low") == "true" {
		query = query.Where("quantity <= threshold")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

// CreateIngredient registers a stock item.
func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name      string  `json:"name" binding:"required"`
		Unit      string  `json:"unit" binding:"required"`
		Quantity  float64 `json:"quantity"`
		Threshold float64 `json:"threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:      req.Name,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// UpdateIngredient adjusts quantity or threshold after a stock count.
func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Quantity  *float64 `json:"quantity"`
		Threshold *float64 `json:"threshold"`
		Unit      *string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Quantity != nil {
		ingredient.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		ingredient.Threshold = *req.Threshold
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if ingredient.IsLow() {
		utils.InfoLogger.Printf("Ingredient %s is low on stock (%.1f %s)", ingredient.Name, ingredient.Quantity, ingredient.Unit)
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

// DeleteIngredient removes a stock item.
func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	if err := ic.DB.Delete(&models.Ingredient{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", gin.H{"ingredient_id": id})
}
