package commander

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// ErrEmptyMessage is returned when there is nothing to publish.
var ErrEmptyMessage = errors.New("empty message")

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RabbitMQSender publishes catalog commands under single routing key.
// Consumers bind their queue to that key on the catalog exchange.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing to routingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// NewRabbitMQCommander returns ChunkCommander publishing commands to routingKey.
func NewRabbitMQCommander(publisher RabbitMQPublisher, routingKey string) ChunkCommander {
	return NewChunkCommander(NewRabbitMQSender(publisher, routingKey))
}

// Send publishes msg to the sender's routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	if len(msg) == 0 {
		return ErrEmptyMessage
	}

	if err := s.publisher.Publish(ctx, s.routingKey, msg); err != nil {
		return fmt.Errorf("can't publish to %q: %w", s.routingKey, err)
	}

	return nil
}
