package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const contentTypeJSON = "application/json"

// ErrNotConfirmed is returned when broker nacks published message.
var ErrNotConfirmed = errors.New("message not confirmed by broker")

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes and publishes amqp messages on single channel.
type RabbitMQ struct {
	channel  *amqp.Channel
	exchange string
	done     chan struct{}
}

// NewRabbitMQ opens channel in confirm mode on connection for exchange.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}
	if err := channel.Confirm(false); err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("can't enable publisher confirms: %w", err)
	}

	return &RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Setup declares durable direct exchange and queue bound to it with routing key.
func (mq *RabbitMQ) Setup(queue, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange %q: %w", mq.exchange, err)
	}
	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %q: %w", queue, err)
	}
	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue %q to %q: %w", queue, routingKey, err)
	}
	return nil
}

// Publish publishes persistent JSON message to routing key and waits until
// broker confirms it.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	conf, err := mq.channel.PublishWithDeferredConfirmWithContext(ctx, mq.exchange, routingKey, false, false, newPublishing(message))
	if err != nil {
		return fmt.Errorf("can't publish message: %w", err)
	}
	return awaitConfirm(ctx, conf)
}

// confirmation is pending broker confirmation of published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

func awaitConfirm(ctx context.Context, conf confirmation) error {
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("can't wait for publish confirmation: %w", err)
	}
	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

func newPublishing(body []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
}

// Consume passes deliveries from queue to handler in background until ctx is done
// or the channel is closed.
// Every delivery is acknowledged once handler returns. Handler and ack errors are
// reported on the returned channel, which is closed when consuming stops.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	deliveries, err := mq.channel.Consume(queue, "catalog-sync-"+uuid.NewString(), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming %q: %w", queue, err)
	}

	c := consumer{
		handler: handler,
		errs:    make(chan error),
	}
	mq.done = make(chan struct{})
	go func() {
		defer close(mq.done)
		defer close(c.errs)
		c.run(ctx, deliveries)
	}()

	return c.errs, nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.done
}

// Close closes channel.
func (mq *RabbitMQ) Close() error {
	return mq.channel.Close()
}

type consumer struct {
	handler HandlerFunc
	errs    chan error
}

func (c consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			if !c.handle(ctx, delivery) {
				return
			}
		}
	}
}

// handle applies and acknowledges single delivery. It returns false when
// errors can't be reported anymore.
func (c consumer) handle(ctx context.Context, delivery amqp.Delivery) bool {
	if err := c.handler(ctx, delivery.Body); err != nil {
		c.report(ctx, err)
	}

	if err := delivery.Ack(false); err != nil {
		return c.report(ctx, fmt.Errorf("can't ack message %d: %w", delivery.DeliveryTag, err))
	}

	return true
}

func (c consumer) report(ctx context.Context, err error) bool {
	select {
	case <-ctx.Done():
		return false
	case c.errs <- err:
		return true
	}
}
