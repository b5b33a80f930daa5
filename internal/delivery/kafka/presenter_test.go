package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUpdatedEventSeatIDs(t *testing.T) {
	e := OrderUpdatedEvent{
		Tickets: []OrderTicket{
			{SeatID: "seat-1"},
			{SeatID: ""},
			{SeatID: "seat-2"},
		},
	}

	assert.Equal(t, []string{"seat-1", "seat-2"}, e.SeatIDs())
	assert.Empty(t, OrderUpdatedEvent{}.SeatIDs())
}

func TestOrderUpdatedEventDecoding(t *testing.T) {
	payload := `{
		"order_id": "order-1",
		"session_id": "session-1",
		"status": "completed",
		"discount_id": "disc-1",
		"discount_code": "EARLYBIRD",
		"discount_amount": 5,
		"tickets": [{"seat_id": "seat-1"}]
	}`

	var e OrderUpdatedEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	assert.Equal(t, "order-1", e.OrderID)
	assert.Equal(t, OrderStatusCompleted, e.Status)
	assert.Equal(t, 5.0, e.DiscountAmount)
	assert.Equal(t, []string{"seat-1"}, e.SeatIDs())
}
