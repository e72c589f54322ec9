package event

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRabbitMQEventPublisherRejectsNilConnection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pub, err := NewRabbitMQEventPublisher(nil, "credit-system", logger)

	assert.Nil(t, pub)
	assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
}

func TestCreditIssuedEventJSONShape(t *testing.T) {
	evt := CreditIssuedEvent{
		Timestamp: time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC),
		Payload: CreditEventPayload{
			CreditID:             10,
			CreditCode:           "7f000001-0000-0000-0000-000000000001",
			CustomerID:           1,
			CreditValue:          "500.00",
			NumberOfInstallments: 5,
			Status:               "IN_PROGRESS",
		},
	}

	body, err := json.Marshal(evt)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &decoded))

	payload, ok := decoded["payload"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "500.00", payload["creditValue"])
	assert.Equal(t, float64(1), payload["customerId"])
	assert.Equal(t, "IN_PROGRESS", payload["status"])
}
