package eventservice

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestRunLogsEvents(t *testing.T) {
	mockMC := &MockMessageConsumer{
		deliveries: []amqp.Delivery{
			{RoutingKey: "user.created", Body: []byte(`{"id": 1, "name": "alice"}`)},
			{RoutingKey: "blog.created", Body: []byte(`{"id": 1, "user_id": 1, "title": "hello"}`)},
		},
	}
	mockLogger := new(MockLogger)

	s := NewEventService(mockMC, mockLogger)
	s.Run()

	assert.Eventually(t, func() bool {
		infos := mockLogger.InfoMessages()
		count := 0
		for _, msg := range infos {
			if msg == "lifecycle event" {
				count++
			}
		}
		return count == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, mockLogger.ErrorMessages())

	t.Cleanup(func() {
		s.Close()
	})
}

func TestRunMalformedEvent(t *testing.T) {
	mockMC := &MockMessageConsumer{
		deliveries: []amqp.Delivery{
			{RoutingKey: "user.created", Body: []byte(`not json`)},
		},
	}
	mockLogger := new(MockLogger)

	s := NewEventService(mockMC, mockLogger)
	s.Run()

	assert.Eventually(t, func() bool {
		return len(mockLogger.ErrorMessages()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.NotContains(t, mockLogger.InfoMessages(), "lifecycle event")

	t.Cleanup(func() {
		s.Close()
	})
}
