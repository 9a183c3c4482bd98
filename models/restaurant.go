package models

import "time"

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `gorm:"type:varchar(500)" json:"address"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	OwnerName   string    `gorm:"type:varchar(255)" json:"ownerName"`
	OwnerQuote  string    `gorm:"type:text" json:"ownerQuote"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	OwnerImage  string    `gorm:"type:varchar(500)" json:"ownerImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultRestaurant is used when the profile row is created on first update.
func DefaultRestaurant() Restaurant {
	return Restaurant{
		Name:        "AmbatoEat",
		Description: "A modern restaurant with delicious food.",
		Address:     "Jakarta, Indonesia",
		Phone:       "+62 123 456 7890",
		Email:       "info@ambatoeat.com",
	}
}

type Facility struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
