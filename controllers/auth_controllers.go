package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/middlewares"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB        *gorm.DB
	Blacklist *utils.TokenBlacklist
}

func NewAuthController(db *gorm.DB, blacklist *utils.TokenBlacklist) *AuthController {
	return &AuthController{DB: db, Blacklist: blacklist}
}

// Register -> creates a USER account and signs it in
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name, email and password (min 6 characters) are required"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Phone:    req.Phone,
		Role:     models.RoleUser,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondServerError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login -> returns a JWT for valid credentials
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Email and password are required"))
		return
	}

	var user models.User
	err := ac.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid credentials"))
		return
	}
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me -> the current user's profile
func (ac *AuthController) Me(c *gin.Context) {
	id, _ := middlewares.GetIdentity(c)

	var user models.User
	err := ac.DB.First(&user, id.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "", user)
}

// Logout -> revokes the presented token
func (ac *AuthController) Logout(c *gin.Context) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	if err := ac.Blacklist.Revoke(c.Request.Context(), claims); err != nil {
		utils.RespondServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %d logged out", claims.UserID)
	utils.RespondJSON(c, http.StatusOK, "Logged out successfully", nil)
}
