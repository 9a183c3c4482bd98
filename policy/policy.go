package policy

import "github.com/yeremiapane/ambatoeat-api/models"

// Identity is the authenticated caller as recovered from a verified token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func IsAdmin(id Identity) bool { return id.Role == models.RoleAdmin }

// IsUser gates customer routes. Admins pass too.
func IsUser(id Identity) bool { return id.Role == models.RoleUser || id.Role == models.RoleAdmin }

// CanCancelReservation allows admins and the reservation owner.
func CanCancelReservation(id Identity, r models.Reservation) bool {
	return IsAdmin(id) || r.UserID == id.UserID
}
