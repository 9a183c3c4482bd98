package broker

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/events"
)

func TestMessage(t *testing.T) {
	e := events.New(events.ReservationCreated, map[string]int{"tableNumber": 3})
	e.ReservationID = 12
	e.TableID = 3

	msg, err := message(e)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.True(t, msg.Timestamp.Equal(e.OccurredAt))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "reservation.created", decoded["event"])
	assert.Equal(t, float64(12), decoded["reservationId"])
}

func TestMessageRejectsUnencodableData(t *testing.T) {
	_, err := message(events.New(events.TableUpdated, make(chan int)))
	assert.Error(t, err)
}
