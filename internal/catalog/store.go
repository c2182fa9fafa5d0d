// Package catalog stores products with url key index and sync watermarks in object storage.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/internal/platform/objectstore"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	jsonContentType  = "application/json"
	indexContentType = "application/octet-stream"

	defaultBatchSize = 50
)

// ErrMissingSKU is returned for products which can't be stored without SKU.
var ErrMissingSKU = errors.New("product has no sku")

// ObjectStore gets and puts objects.
type ObjectStore interface {
	Get(ctx context.Context, key string) (*objectstore.Object, error)
	Head(ctx context.Context, key string) (*objectstore.Object, error)
	Put(ctx context.Context, key string, body []byte, opts objectstore.PutOptions) error
}

// Store is product store.
type Store struct {
	objects   ObjectStore
	logger    *zerolog.Logger
	batchSize int
}

// Option configures Store.
type Option func(s *Store)

// WithBatchSize sets number of products written concurrently.
func WithBatchSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewStore returns new Store.
func NewStore(objects ObjectStore, logger *zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		objects:   objects,
		logger:    logger,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertBatch stores products with their url key index entries.
// Products are written in sequential sub-batches, products within sub-batch concurrently.
// Failure of one product doesn't stop the others. It returns number of fully stored
// products and joined errors of the failed ones.
func (s *Store) UpsertBatch(ctx context.Context, scope models.Scope, products []models.Product) (int, error) {
	var (
		stored int
		errs   []error
	)

	for _, batch := range lo.Chunk(products, s.batchSize) {
		results := make([]error, len(batch))

		var eg errgroup.Group
		for ix := range batch {
			eg.Go(func() error {
				results[ix] = s.put(ctx, scope, &batch[ix])
				return nil
			})
		}
		_ = eg.Wait()

		for _, err := range results {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			stored++
		}
	}

	s.logger.Debug().
		Str("scope", scope.String()).
		Int("products", len(products)).
		Int("stored", stored).
		Msg("products batch stored")

	return stored, errors.Join(errs...)
}

// put writes product record and its index entry concurrently. Both writes must succeed.
func (s *Store) put(ctx context.Context, scope models.Scope, product *models.Product) error {
	if product.SKU == "" {
		return ErrMissingSKU
	}

	body, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("can't encode product %q: %w", product.SKU, err)
	}

	metadata := map[string]string{
		"sku":     product.SKU,
		"name":    product.Name,
		"url_key": product.URLKey,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.objects.Put(egCtx, ProductKey(scope, product.SKU), body, objectstore.PutOptions{
			ContentType: jsonContentType,
			Metadata:    metadata,
		})
	})
	if product.URLKey != "" {
		eg.Go(func() error {
			return s.objects.Put(egCtx, URLKeyIndexKey(scope, product.URLKey), nil, objectstore.PutOptions{
				ContentType: indexContentType,
				Metadata:    metadata,
			})
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("can't store product %q: %w", product.SKU, err)
	}
	return nil
}

// GetBySKU returns stored product or nil when it doesn't exist.
func (s *Store) GetBySKU(ctx context.Context, scope models.Scope, sku string) (*models.Product, error) {
	obj, err := s.objects.Get(ctx, ProductKey(scope, sku))
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("can't get product %q: %w", sku, err)
	}

	product, err := models.NewProduct(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read product %q: %w", sku, err)
	}
	return &product, nil
}

// GetByURLKey returns SKU indexed under url key or empty string when there is no index entry.
func (s *Store) GetByURLKey(ctx context.Context, scope models.Scope, urlKey string) (string, error) {
	obj, err := s.objects.Head(ctx, URLKeyIndexKey(scope, urlKey))
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("can't get url key %q: %w", urlKey, err)
	}
	return obj.Metadata["sku"], nil
}

// Watermark returns last sync time of scope or unix epoch when scope was never synced.
func (s *Store) Watermark(ctx context.Context, scope models.Scope) (time.Time, error) {
	obj, err := s.objects.Get(ctx, WatermarkKey(scope))
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return time.Unix(0, 0).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("can't get watermark: %w", err)
	}

	var watermark models.Watermark
	if err := json.Unmarshal(obj.Body, &watermark); err != nil {
		return time.Time{}, fmt.Errorf("can't decode watermark: %w", err)
	}
	return watermark.LastSyncDate.UTC(), nil
}

// AdvanceWatermark sets scope watermark to t. Watermark is never moved backwards.
func (s *Store) AdvanceWatermark(ctx context.Context, scope models.Scope, t time.Time) error {
	current, err := s.Watermark(ctx, scope)
	if err != nil {
		return err
	}
	if !t.After(current) {
		s.logger.Debug().
			Str("scope", scope.String()).
			Time("watermark", current).
			Time("requested", t).
			Msg("watermark not moved backwards")
		return nil
	}

	body, err := json.Marshal(models.Watermark{LastSyncDate: t.UTC()})
	if err != nil {
		return fmt.Errorf("can't encode watermark: %w", err)
	}

	err = s.objects.Put(ctx, WatermarkKey(scope), body, objectstore.PutOptions{ContentType: jsonContentType})
	if err != nil {
		return fmt.Errorf("can't put watermark: %w", err)
	}
	return nil
}
