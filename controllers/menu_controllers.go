package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/cache"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
)

var errInvalidCategory = errors.New("Invalid category. Must be FOOD, DRINK, or DESSERT")

type MenuController struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
	Uploader *utils.Uploader
}

func NewMenuController(db *gorm.DB, store cache.Store, ttl time.Duration, uploader *utils.Uploader) *MenuController {
	return &MenuController{DB: db, Cache: store, CacheTTL: ttl, Uploader: uploader}
}

type menuRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Category    string  `json:"category" form:"category"`
	Image       string  `json:"image" form:"image"`
}

// GetAllMenus -> the whole menu, grouped by category
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	ctx := c.Request.Context()

	var items []models.MenuItem
	if err := cache.GetJSON(ctx, mc.Cache, cache.KeyMenuAll, &items); err == nil {
		utils.RespondJSON(c, http.StatusOK, "", items)
		return
	}

	if err := mc.DB.WithContext(ctx).Order("category asc").Order("id asc").Find(&items).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}
	mc.store(ctx, cache.KeyMenuAll, items)
	utils.RespondJSON(c, http.StatusOK, "", items)
}

// GetMenuByCategory -> FOOD, DRINK or DESSERT, ordered by name
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	category, ok := models.NormalizeCategory(c.Param("category"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errInvalidCategory)
		return
	}
	ctx := c.Request.Context()
	key := cache.KeyMenuCategory + category

	var items []models.MenuItem
	if err := cache.GetJSON(ctx, mc.Cache, key, &items); err == nil {
		utils.RespondJSON(c, http.StatusOK, "", items)
		return
	}

	if err := mc.DB.WithContext(ctx).Where("category = ?", category).Order("name asc").Find(&items).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}
	mc.store(ctx, key, items)
	utils.RespondJSON(c, http.StatusOK, "", items)
}

// CreateMenu -> JSON or multipart; an uploaded "image" file wins over an image URL
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := utils.CheckImageRef(req.Image); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	uploaded, err := mc.Uploader.SaveImage(c, "image", "menu")
	if err != nil {
		respondUploadError(c, err)
		return
	}
	if uploaded != "" {
		req.Image = uploaded
	}

	category, ok := models.NormalizeCategory(req.Category)
	if req.Name == "" || req.Description == "" || req.Price <= 0 || req.Category == "" || req.Image == "" {
		mc.Uploader.Remove(uploaded)
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name, description, price, category and image are required"))
		return
	}
	if !ok {
		mc.Uploader.Remove(uploaded)
		utils.RespondError(c, http.StatusBadRequest, errInvalidCategory)
		return
	}

	item := models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    category,
		Image:       req.Image,
	}
	if err := mc.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		mc.Uploader.Remove(uploaded)
		utils.RespondServerError(c, err)
		return
	}

	mc.invalidate(c.Request.Context())
	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, item.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenu -> empty fields keep their current value
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req menuRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	err := mc.DB.WithContext(c.Request.Context()).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("Menu item not found"))
		return
	}
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	if req.Category != "" {
		category, ok := models.NormalizeCategory(req.Category)
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, errInvalidCategory)
			return
		}
		item.Category = category
	}
	if err := utils.CheckImageRef(req.Image); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	uploaded, err := mc.Uploader.SaveImage(c, "image", "menu")
	if err != nil {
		respondUploadError(c, err)
		return
	}

	oldImage := item.Image
	if req.Name != "" {
		item.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price > 0 {
		item.Price = req.Price
	}
	switch {
	case uploaded != "":
		item.Image = uploaded
	case req.Image != "":
		item.Image = req.Image
	}

	if err := mc.DB.WithContext(c.Request.Context()).Save(&item).Error; err != nil {
		mc.Uploader.Remove(uploaded)
		utils.RespondServerError(c, err)
		return
	}
	if item.Image != oldImage {
		mc.Uploader.Remove(oldImage)
	}

	mc.invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

// DeleteMenu -> removes the item and its stored image
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var item models.MenuItem
	err := mc.DB.WithContext(c.Request.Context()).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("Menu item not found"))
		return
	}
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	if err := mc.DB.WithContext(c.Request.Context()).Delete(&item).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}
	mc.Uploader.Remove(item.Image)

	mc.invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}

func (mc *MenuController) store(ctx context.Context, key string, v interface{}) {
	if err := cache.SetJSON(ctx, mc.Cache, key, v, mc.CacheTTL); err != nil {
		utils.ErrorLogger.Errorf("cache set %s: %v", key, err)
	}
}

func (mc *MenuController) invalidate(ctx context.Context) {
	keys := []string{
		cache.KeyMenuAll,
		cache.KeyMenuCategory + models.CategoryFood,
		cache.KeyMenuCategory + models.CategoryDrink,
		cache.KeyMenuCategory + models.CategoryDessert,
	}
	if err := mc.Cache.Del(ctx, keys...); err != nil {
		utils.ErrorLogger.Errorf("cache invalidate menu: %v", err)
	}
}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrImageType) || errors.Is(err, utils.ErrImageSize) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondServerError(c, err)
}
