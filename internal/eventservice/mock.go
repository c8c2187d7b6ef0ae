package eventservice

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amberlee2706/scribe/internal/common"
)

type MockMessageConsumer struct {
	deliveries []amqp.Delivery
}

func (m *MockMessageConsumer) Consume(queue common.Queue, consumer string) (<-chan amqp.Delivery, error) {
	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)

		for _, d := range m.deliveries {
			msgsChan <- d
		}
	}()

	return msgsChan, nil
}

type MockLogger struct {
	mu       sync.Mutex
	infoMsgs []string
	errMsgs  []string
}

func (l *MockLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsgs = append(l.errMsgs, msg)
}

func (l *MockLogger) InfoMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infoMsgs...)
}

func (l *MockLogger) ErrorMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errMsgs...)
}
