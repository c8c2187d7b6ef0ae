package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(queue Queue, consumer string) (<-chan amqp.Delivery, error)
}

const (
	EventExchange Exchange = "blog_events"
	EventQueue    Queue    = "event_audit_queue"

	UserCreatedKey    BindingKey = "user.created"
	BlogCreatedKey    BindingKey = "blog.created"
	CommentCreatedKey BindingKey = "comment.created"
)

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the connection and channel of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	err = mb.conn.Close()
	if err != nil {
		return err
	}

	return nil
}

// SetupEventExchange declares the lifecycle event exchange and binds the
// audit queue to every entity-created routing key.
func SetupEventExchange(mb *MessageBroker) error {
	err := mb.ch.ExchangeDeclare(string(EventExchange), "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = mb.ch.QueueDeclare(string(EventQueue), true, false, false, false, nil)
	if err != nil {
		return err
	}

	for _, key := range []BindingKey{UserCreatedKey, BlogCreatedKey, CommentCreatedKey} {
		err = mb.ch.QueueBind(string(EventQueue), string(key), string(EventExchange), false, nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

func (mb *MessageBroker) Consume(queue Queue, consumer string) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}
