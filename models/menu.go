package models

import (
	"strings"
	"time"
)

const (
	CategoryFood    = "FOOD"
	CategoryDrink   = "DRINK"
	CategoryDessert = "DESSERT"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(20);not null;index" json:"category"`
	Image       string    `gorm:"type:varchar(500);not null" json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeCategory upper-cases c and reports whether it is a known category.
func NormalizeCategory(c string) (string, bool) {
	c = strings.ToUpper(strings.TrimSpace(c))
	switch c {
	case CategoryFood, CategoryDrink, CategoryDessert:
		return c, true
	}
	return c, false
}
