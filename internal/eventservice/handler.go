package eventservice

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/amberlee2706/scribe/internal/common"
)

func NewEventService(mb common.MessageConsumer, logger EventLogger) *EventService {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventService{
		mb:     mb,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run drains the audit queue and writes one log line per lifecycle event.
// It returns immediately; consumption happens on a background goroutine
// until Close is called or the delivery channel closes.
func (s *EventService) Run() {
	msgs, err := s.mb.Consume(common.EventQueue, "event-audit")
	if err != nil {
		s.logger.Error("could not consume messages", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var payload map[string]any
				err := json.Unmarshal(msg.Body, &payload)
				if err != nil {
					s.logger.Error("could not unmarshal event", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				s.logger.Info("lifecycle event", slog.String("key", msg.RoutingKey), slog.Any("payload", payload))
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping event consumer due to context cancellation")
				return
			}
		}
	}()
}

func (s *EventService) Close() {
	s.cancel()
}
