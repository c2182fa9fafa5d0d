package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Store --filename store.go
//go:generate mockery --name Refresher --filename refresher.go
//go:generate mockery --name Targets --filename targets.go

// ErrUnknownMessageType is returned for messages of unsupported type.
var ErrUnknownMessageType = errors.New("unknown message type")

// Store stores products.
type Store interface {
	UpsertBatch(ctx context.Context, scope models.Scope, products []models.Product) (int, error)
}

// Refresher refetches products from upstream and stores them.
type Refresher interface {
	Refresh(ctx context.Context, scope models.Scope, target fetcher.Target, skus []string) ([]models.Product, error)
}

// Targets resolves upstream targets of scopes.
type Targets interface {
	Resolve(ctx context.Context, scope models.Scope) (fetcher.Target, error)
}

// MessageError is returned when message couldn't be applied.
type MessageError struct {
	Type     string
	Scope    models.Scope
	Products int
	Err      error
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("can't apply %s message with %d products to %s: %v", e.Type, e.Products, e.Scope, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq       *rabbitmq.RabbitMQ
	store     Store
	refresher Refresher
	targets   Targets
	logger    *zerolog.Logger
}

// NewRMQHandler returns new RMQHandler.
func NewRMQHandler(
	rmq *rabbitmq.RabbitMQ,
	store Store,
	refresher Refresher,
	targets Targets,
	logger *zerolog.Logger,
) *RMQHandler {
	return &RMQHandler{
		rmq:       rmq,
		store:     store,
		refresher: refresher,
		targets:   targets,
		logger:    logger,
	}
}

// Start starts consuming and handling catalog messages from RMQ.
// Messages are acknowledged even when handling fails, failures are logged.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logError(err)
		}
	}()

	return nil
}

// Handle applies single catalog message.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	var msg models.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		return fmt.Errorf("can't decode message: %w", err)
	}

	switch msg.Type {
	case commander.TypeSync:
		return h.handleSync(ctx, &msg)
	case commander.TypeRefresh:
		return h.handleRefresh(ctx, &msg)
	default:
		return &MessageError{Type: msg.Type, Scope: msg.Config, Err: ErrUnknownMessageType}
	}
}

func (h *RMQHandler) handleSync(ctx context.Context, msg *models.Message) error {
	var products []models.Product
	if err := json.Unmarshal(msg.Data, &products); err != nil {
		return &MessageError{Type: msg.Type, Scope: msg.Config, Err: fmt.Errorf("can't decode products: %w", err)}
	}

	stored, err := h.store.UpsertBatch(ctx, msg.Config, products)
	if err != nil {
		return &MessageError{Type: msg.Type, Scope: msg.Config, Products: len(products), Err: err}
	}

	h.logger.Debug().
		Str("scope", msg.Config.String()).
		Int("products", stored).
		Msg("sync chunk stored")

	return nil
}

func (h *RMQHandler) handleRefresh(ctx context.Context, msg *models.Message) error {
	var refs []models.SKURef
	if err := json.Unmarshal(msg.Data, &refs); err != nil {
		return &MessageError{Type: msg.Type, Scope: msg.Config, Err: fmt.Errorf("can't decode skus: %w", err)}
	}

	target, err := h.targets.Resolve(ctx, msg.Config)
	if err != nil {
		return &MessageError{Type: msg.Type, Scope: msg.Config, Products: len(refs), Err: err}
	}

	skus := lo.Uniq(lo.FilterMap(refs, func(ref models.SKURef, _ int) (string, bool) {
		return ref.SKU, ref.SKU != ""
	}))
	products, err := h.refresher.Refresh(ctx, msg.Config, target, skus)
	if err != nil {
		return &MessageError{Type: msg.Type, Scope: msg.Config, Products: len(skus), Err: err}
	}

	h.logger.Debug().
		Str("scope", msg.Config.String()).
		Int("requested", len(skus)).
		Int("products", len(products)).
		Msg("products refreshed")

	return nil
}

func (h *RMQHandler) logError(err error) {
	event := h.logger.Error().Err(err)

	var msgErr *MessageError
	if errors.As(err, &msgErr) {
		event = event.
			Str("type", msgErr.Type).
			Str("scope", msgErr.Scope.String()).
			Int("products", msgErr.Products)
	}

	event.Msg("can't handle message")
}
