package models

import "time"

const (
	TableAvailable   = "AVAILABLE"
	TableReserved    = "RESERVED"
	TableMaintenance = "MAINTENANCE"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"uniqueIndex;not null" json:"tableNumber"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Status      string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableReserved, TableMaintenance:
		return true
	}
	return false
}
