package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/cache"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
)

type RestaurantController struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
	Uploader *utils.Uploader
}

func NewRestaurantController(db *gorm.DB, store cache.Store, ttl time.Duration, uploader *utils.Uploader) *RestaurantController {
	return &RestaurantController{DB: db, Cache: store, CacheTTL: ttl, Uploader: uploader}
}

type restaurantInfo struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	Facilities []models.Facility  `json:"facilities"`
}

// GetRestaurantInfo -> profile plus facilities; restaurant is null until first saved
func (rc *RestaurantController) GetRestaurantInfo(c *gin.Context) {
	ctx := c.Request.Context()

	var info restaurantInfo
	if err := cache.GetJSON(ctx, rc.Cache, cache.KeyRestaurantInfo, &info); err == nil {
		utils.RespondJSON(c, http.StatusOK, "", info)
		return
	}

	var restaurant models.Restaurant
	err := rc.DB.WithContext(ctx).Order("id asc").First(&restaurant).Error
	switch {
	case err == nil:
		info.Restaurant = &restaurant
	case !errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondServerError(c, err)
		return
	}

	info.Facilities = []models.Facility{}
	if err := rc.DB.WithContext(ctx).Order("id asc").Find(&info.Facilities).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}

	if err := cache.SetJSON(ctx, rc.Cache, cache.KeyRestaurantInfo, info, rc.CacheTTL); err != nil {
		utils.ErrorLogger.Errorf("cache set restaurant: %v", err)
	}
	utils.RespondJSON(c, http.StatusOK, "", info)
}

// UpdateRestaurantInfo -> upserts the single profile row; empty fields are left unchanged
func (rc *RestaurantController) UpdateRestaurantInfo(c *gin.Context) {
	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Address     string `json:"address" form:"address"`
		Phone       string `json:"phone" form:"phone"`
		Email       string `json:"email" form:"email"`
		OwnerName   string `json:"ownerName" form:"ownerName"`
		OwnerQuote  string `json:"ownerQuote" form:"ownerQuote"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	image, err := rc.Uploader.SaveImage(c, "image", "restaurant")
	if err != nil {
		respondUploadError(c, err)
		return
	}
	ownerImage, err := rc.Uploader.SaveImage(c, "ownerImage", "owner")
	if err != nil {
		rc.Uploader.Remove(image)
		respondUploadError(c, err)
		return
	}

	ctx := c.Request.Context()
	var restaurant models.Restaurant
	err = rc.DB.WithContext(ctx).Order("id asc").First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		restaurant = models.DefaultRestaurant()
	} else if err != nil {
		rc.Uploader.Remove(image)
		rc.Uploader.Remove(ownerImage)
		utils.RespondServerError(c, err)
		return
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&restaurant.Name, req.Name)
	set(&restaurant.Description, req.Description)
	set(&restaurant.Address, req.Address)
	set(&restaurant.Phone, req.Phone)
	set(&restaurant.Email, req.Email)
	set(&restaurant.OwnerName, req.OwnerName)
	set(&restaurant.OwnerQuote, req.OwnerQuote)

	var replaced []string
	if image != "" {
		replaced = append(replaced, restaurant.Image)
		restaurant.Image = image
	}
	if ownerImage != "" {
		replaced = append(replaced, restaurant.OwnerImage)
		restaurant.OwnerImage = ownerImage
	}

	if err := rc.DB.WithContext(ctx).Save(&restaurant).Error; err != nil {
		rc.Uploader.Remove(image)
		rc.Uploader.Remove(ownerImage)
		utils.RespondServerError(c, err)
		return
	}
	for _, old := range replaced {
		rc.Uploader.Remove(old)
	}

	rc.invalidate(ctx)
	utils.RespondJSON(c, http.StatusOK, "Restaurant information updated successfully", restaurant)
}

// AddFacility -> name and description are required
func (rc *RestaurantController) AddFacility(c *gin.Context) {
	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Name == "" || req.Description == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name and description are required"))
		return
	}

	image, err := rc.Uploader.SaveImage(c, "image", "facility")
	if err != nil {
		respondUploadError(c, err)
		return
	}

	facility := models.Facility{Name: req.Name, Description: req.Description, Image: image}
	if err := rc.DB.WithContext(c.Request.Context()).Create(&facility).Error; err != nil {
		rc.Uploader.Remove(image)
		utils.RespondServerError(c, err)
		return
	}

	rc.invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusCreated, "Facility added successfully", facility)
}

// DeleteFacility -> 404 when missing
func (rc *RestaurantController) DeleteFacility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var facility models.Facility
	err := rc.DB.WithContext(c.Request.Context()).First(&facility, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("Facility not found"))
		return
	}
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	if err := rc.DB.WithContext(c.Request.Context()).Delete(&facility).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}
	rc.Uploader.Remove(facility.Image)

	rc.invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Facility deleted successfully", nil)
}

func (rc *RestaurantController) invalidate(ctx context.Context) {
	if err := rc.Cache.Del(ctx, cache.KeyRestaurantInfo); err != nil {
		utils.ErrorLogger.Errorf("cache invalidate restaurant: %v", err)
	}
}
