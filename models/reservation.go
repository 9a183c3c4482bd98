package models

import "time"

const (
	ReservationActive    = "ACTIVE"
	ReservationCompleted = "COMPLETED"
	// ReservationCanceled is part of the stored vocabulary but nothing produces it yet.
	ReservationCanceled = "CANCELED"
)

// Reservation books one table for one exact timestamp.
// DeletedAt marks a user cancellation; it is a plain column so admin listings keep seeing the row.
type Reservation struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	UserID          uint         `gorm:"not null;index" json:"userId"`
	TableID         uint         `gorm:"not null;index:idx_reservation_slot,priority:1" json:"tableId"`
	ReservationDate time.Time    `gorm:"not null;index:idx_reservation_slot,priority:2" json:"reservationDate"`
	Status          string       `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	DeletedAt       *time.Time   `json:"deletedAt"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	Table           *Table       `gorm:"foreignKey:TableID" json:"table,omitempty"`
	User            *UserSummary `gorm:"-" json:"user,omitempty"`
}

// Holds reports whether the reservation still occupies its slot.
func (r Reservation) Holds() bool {
	return r.Status == ReservationActive && r.DeletedAt == nil
}
