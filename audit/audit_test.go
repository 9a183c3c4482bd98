package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/models"
)

func TestToDocumentEncodesReservation(t *testing.T) {
	res := models.Reservation{
		ID:              5,
		UserID:          2,
		TableID:         3,
		ReservationDate: time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC),
		Status:          models.ReservationActive,
	}

	doc, err := toDocument(res)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationActive, doc["status"])
	assert.EqualValues(t, 3, doc["tableid"])
}

func TestToDocumentNil(t *testing.T) {
	doc, err := toDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
