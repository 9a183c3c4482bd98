package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
)

// Error is a failure the caller can act on. Anything else reaching a handler is internal.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf reports the kind of a service error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

var (
	ErrReservationFieldsRequired = NewError(KindValidation, "Table ID and reservation date are required")
	ErrTableNotFound             = NewError(KindNotFound, "Table not found")
	ErrTableUnavailable          = NewError(KindValidation, "Table is not available")
	ErrSlotTaken                 = NewError(KindConflict, "Table is already reserved for this date")
	ErrReservationNotFound       = NewError(KindNotFound, "Reservation not found")
	ErrNotOwner                  = NewError(KindForbidden, "Access denied. This reservation does not belong to you")
	ErrTableInUse                = NewError(KindConflict, "Cannot delete table with active reservations")
	ErrTableHasHistory           = NewError(KindConflict, "Cannot delete table with reservation history")
	ErrTableNumberTaken          = NewError(KindConflict, "Table number already exists")
	ErrTableFieldsRequired       = NewError(KindValidation, "Table number and capacity are required")
	ErrInvalidTableStatus        = NewError(KindValidation, "Invalid table status")
)

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
