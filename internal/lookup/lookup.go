// Package lookup resolves single products from the store with upstream fallback.
package lookup

import (
	"context"
	"fmt"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/platform"
	"github.com/MichalMitros/catalog-sync/internal/platform/background"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Fetcher --filename fetcher.go

// Fetcher fetches single product from upstream.
type Fetcher interface {
	FetchOne(ctx context.Context, target fetcher.Target, query fetcher.Query) (*models.Product, error)
}

// Store reads and writes products.
type Store interface {
	GetBySKU(ctx context.Context, scope models.Scope, sku string) (*models.Product, error)
	GetByURLKey(ctx context.Context, scope models.Scope, urlKey string) (string, error)
	UpsertBatch(ctx context.Context, scope models.Scope, products []models.Product) (int, error)
}

// Tasks runs background tasks.
type Tasks interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error) *background.Task
}

// Request identifies product by SKU or url key. SKU wins when both are set.
type Request struct {
	SKU    string
	URLKey string
}

// Result is resolved product.
type Result struct {
	Product *models.Product
	// Backfill is store write of product fetched from upstream, nil when product came from the store.
	Backfill *background.Task
}

// Service resolves products.
type Service struct {
	store   Store
	fetcher Fetcher
	tasks   Tasks
	logger  *zerolog.Logger
}

// NewService returns new Service.
func NewService(store Store, fet Fetcher, tasks Tasks, logger *zerolog.Logger) *Service {
	return &Service{
		store:   store,
		fetcher: fet,
		tasks:   tasks,
		logger:  logger,
	}
}

// Resolve returns product from the store. Products missing in the store are fetched
// from upstream once and written back to the store in background.
func (s *Service) Resolve(ctx context.Context, scope models.Scope, target fetcher.Target, req Request) (*Result, error) {
	sku := req.SKU
	if sku == "" {
		if req.URLKey == "" {
			return nil, platform.ErrBadRequest
		}

		indexed, err := s.store.GetByURLKey(ctx, scope, req.URLKey)
		if err != nil {
			return nil, fmt.Errorf("can't resolve url key: %w", err)
		}
		if indexed == "" {
			return nil, platform.ErrNotFound
		}
		sku = indexed
	}

	product, err := s.store.GetBySKU(ctx, scope, sku)
	if err != nil {
		return nil, fmt.Errorf("can't get product: %w", err)
	}
	if product != nil {
		return &Result{Product: product}, nil
	}

	product, err = s.fetcher.FetchOne(ctx, target, fetcher.SingleProduct(sku, ""))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("scope", scope.String()).
			Str("sku", sku).
			Msg("can't fetch product from upstream")
		return nil, platform.ErrNotFound
	}
	if product == nil {
		return nil, platform.ErrNotFound
	}

	backfill := s.tasks.Go(ctx, "backfill "+scope.String()+"/"+sku, func(ctx context.Context) error {
		if _, err := s.store.UpsertBatch(ctx, scope, []models.Product{*product}); err != nil {
			return fmt.Errorf("can't backfill product: %w", err)
		}
		return nil
	})

	return &Result{Product: product, Backfill: backfill}, nil
}
