package database

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the admin account, or promotes and re-keys it if the email already exists.
func SeedAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	var admin models.User
	err = db.Where("email = ?", email).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		utils.InfoLogger.Printf("Admin user created: %s", email)
	case err != nil:
		return nil, fmt.Errorf("lookup admin: %w", err)
	default:
		admin.Password = string(hashed)
		admin.Role = models.RoleAdmin
		if err := db.Save(&admin).Error; err != nil {
			return nil, fmt.Errorf("update admin: %w", err)
		}
		utils.InfoLogger.Printf("Admin user updated: %s", email)
	}

	return &admin, nil
}
