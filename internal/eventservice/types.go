package eventservice

import (
	"context"

	"github.com/amberlee2706/scribe/internal/common"
)

type EventService struct {
	mb     common.MessageConsumer
	logger EventLogger
	ctx    context.Context
	cancel context.CancelFunc
}

type EventLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}
