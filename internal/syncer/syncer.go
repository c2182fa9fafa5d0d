package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Sender --filename sender.go
//go:generate mockery --name Store --filename store.go
//go:generate mockery --name Journal --filename journal.go

const defaultChunkSize = 50

// Fetcher fetches all pages of products query.
type Fetcher interface {
	FetchAll(ctx context.Context, target fetcher.Target, query fetcher.Query, profile fetcher.Profile) ([]models.Product, error)
}

// Sender hands sync chunks to the queue.
type Sender interface {
	SendSyncChunk(ctx context.Context, scope commander.Scope, products []json.RawMessage) error
}

// Store is products and watermarks storage.
type Store interface {
	// Watermark returns last sync time of scope.
	Watermark(ctx context.Context, scope models.Scope) (time.Time, error)
	// AdvanceWatermark moves scope watermark forward.
	AdvanceWatermark(ctx context.Context, scope models.Scope, t time.Time) error
	// UpsertBatch stores products and returns number of stored ones.
	UpsertBatch(ctx context.Context, scope models.Scope, products []models.Product) (int, error)
}

// Journal records sync runs.
type Journal interface {
	// StartRun creates new run if there is no run for provided scope running.
	StartRun(ctx context.Context, scope models.Scope, force bool) (*models.Run, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Result is sync pass result.
type Result struct {
	// Fetched is number of products returned by upstream.
	Fetched int
	// Products are out of sync products, or all fetched products for forced pass.
	Products []models.Product
	// Chunks is number of chunks sent to the queue.
	Chunks int
	// Propagated is number of products sent to the queue or stored.
	Propagated int
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer synchronizes local catalog copy with upstream.
type Syncer struct {
	fetcher   Fetcher
	sender    Sender
	store     Store
	journal   Journal
	logger    *zerolog.Logger
	chunkSize int
	fullScan  fetcher.Profile
	targeted  fetcher.Profile
	clock     Clock
}

// NewSyncer returns new Syncer.
func NewSyncer(
	fet Fetcher,
	sender Sender,
	store Store,
	journal Journal,
	logger *zerolog.Logger,
	ops ...Option,
) *Syncer {
	s := &Syncer{
		fetcher:   fet,
		sender:    sender,
		store:     store,
		journal:   journal,
		logger:    logger,
		chunkSize: defaultChunkSize,
		fullScan:  fetcher.FullScan,
		targeted:  fetcher.Targeted,
		clock:     systemClock{},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Sync runs sync pass for scope.
// Regular pass sends products updated since scope watermark to the queue in chunks
// and advances the watermark. Forced pass stores the whole catalog directly.
// Forced pass that stores only part of the catalog still returns fetched products,
// the failure is logged and recorded in the run journal.
func (s *Syncer) Sync(ctx context.Context, scope models.Scope, target fetcher.Target, force bool) (*Result, error) {
	run, err := s.journal.StartRun(ctx, scope, force)
	if err != nil {
		return nil, fmt.Errorf("can't start sync: %w", err)
	}

	var result *Result
	if force {
		result, err = s.syncAll(ctx, scope, target)
	} else {
		result, err = s.syncDelta(ctx, scope, target)
	}

	if result != nil {
		run.FetchedProducts = lo.ToPtr(int32(result.Fetched))
		run.PropagatedProducts = lo.ToPtr(int32(result.Propagated))
		run.Chunks = lo.ToPtr(int32(result.Chunks))
	}

	if err := s.finishSync(ctx, run, err); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Syncer) syncDelta(ctx context.Context, scope models.Scope, target fetcher.Target) (*Result, error) {
	watermark, err := s.store.Watermark(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("can't read watermark: %w", err)
	}

	fetched, err := s.fetcher.FetchAll(ctx, target, fetcher.UpdatedProducts(watermark), s.fullScan)
	if err != nil {
		return nil, fmt.Errorf("can't fetch updated products: %w", err)
	}

	delta := lo.Filter(fetched, func(p models.Product, _ int) bool {
		return p.UpdatedAfter(watermark)
	})
	result := &Result{
		Fetched:  len(fetched),
		Products: delta,
	}

	if len(delta) == 0 {
		s.logger.Debug().
			Str("scope", scope.String()).
			Int("fetched", len(fetched)).
			Msg("no out of sync products found")
		return result, nil
	}

	s.logger.Debug().
		Str("scope", scope.String()).
		Int("fetched", len(fetched)).
		Int("outOfSync", len(delta)).
		Msg("found out of sync products")

	cmdScope := commander.Scope{Tenant: scope.Tenant, Store: scope.Store}
	for ix, chunk := range lo.Chunk(delta, s.chunkSize) {
		records, err := toRecords(chunk)
		if err != nil {
			return result, &DispatchError{Chunk: ix, Err: err}
		}
		if err := s.sender.SendSyncChunk(ctx, cmdScope, records); err != nil {
			return result, &DispatchError{Chunk: ix, Err: err}
		}
		result.Chunks++
		result.Propagated += len(chunk)
	}

	if err := s.store.AdvanceWatermark(ctx, scope, s.clock.Now()); err != nil {
		return result, fmt.Errorf("can't advance watermark: %w", err)
	}

	return result, nil
}

func (s *Syncer) syncAll(ctx context.Context, scope models.Scope, target fetcher.Target) (*Result, error) {
	fetched, err := s.fetcher.FetchAll(ctx, target, fetcher.AllProducts(), s.fullScan)
	if err != nil {
		return nil, fmt.Errorf("can't fetch products: %w", err)
	}

	result := &Result{
		Fetched:  len(fetched),
		Products: fetched,
	}

	stored, err := s.store.UpsertBatch(ctx, scope, fetched)
	result.Propagated = stored
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrIncompleteStore, err)
	}

	if err := s.store.AdvanceWatermark(ctx, scope, s.clock.Now()); err != nil {
		return result, fmt.Errorf("can't advance watermark: %w", err)
	}

	return result, nil
}

// Refresh refetches products with provided SKUs and stores them.
func (s *Syncer) Refresh(ctx context.Context, scope models.Scope, target fetcher.Target, skus []string) ([]models.Product, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	products, err := s.fetcher.FetchAll(ctx, target, fetcher.ProductsBySKU(skus), s.targeted)
	if err != nil {
		return nil, fmt.Errorf("can't fetch products: %w", err)
	}

	stored, err := s.store.UpsertBatch(ctx, scope, products)
	s.logger.Debug().
		Str("scope", scope.String()).
		Int("requested", len(skus)).
		Int("fetched", len(products)).
		Int("stored", stored).
		Msg("products refreshed")
	if err != nil {
		return products, fmt.Errorf("can't store products: %w", err)
	}

	return products, nil
}

func (s *Syncer) finishSync(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = lo.ToPtr(s.clock.Now())

	err := s.journal.FinishRun(context.WithoutCancel(ctx), run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish sync: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed sync: %w (fail reason: %w)", err, status)
	}

	// fetched products are still returned, the run stays failed in the journal
	if errors.Is(status, ErrIncompleteStore) {
		s.logger.Error().
			Err(status).
			Str("scope", run.Scope.String()).
			Int("run_id", run.ID).
			Msg("forced sync stored catalog partially")
		return nil
	}

	return status
}

func toRecords(products []models.Product) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(products))
	for ix := range products {
		record, err := json.Marshal(products[ix])
		if err != nil {
			return nil, fmt.Errorf("can't encode product %q: %w", products[ix].SKU, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// WithChunkSize sets maximal number of products in sync chunk.
func WithChunkSize(size int) Option {
	return func(s *Syncer) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithProfiles sets pagination profiles of full catalog scans and SKU set queries.
func WithProfiles(fullScan, targeted fetcher.Profile) Option {
	return func(s *Syncer) {
		s.fullScan = fullScan
		s.targeted = targeted
	}
}
