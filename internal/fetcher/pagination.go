package fetcher

import (
	"context"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Profile is pagination policy of a query.
type Profile struct {
	PageSize    int
	Concurrency int
}

var (
	// FullScan is profile for whole catalog scans.
	FullScan = Profile{PageSize: 200, Concurrency: 5}
	// Targeted is profile for small SKU set queries.
	Targeted = Profile{PageSize: 50, Concurrency: 25}
)

// FetchAll returns products from all pages of query in page order.
// First page is fetched alone to learn page count, remaining pages are fetched
// by a pool of profile.Concurrency workers. Any failure aborts the whole fetch.
func (f *Fetcher) FetchAll(ctx context.Context, target Target, query Query, profile Profile) ([]models.Product, error) {
	first, err := f.FetchPage(ctx, target, query, profile.PageSize, 1)
	if err != nil {
		return nil, err
	}
	if first.TotalPages <= 1 {
		return first.Items, nil
	}

	pages := make([][]models.Product, first.TotalPages)
	pages[0] = first.Items

	eg, egCtx := errgroup.WithContext(ctx)

	indices := make(chan int)
	eg.Go(func() error {
		defer close(indices)
		for page := 2; page <= first.TotalPages; page++ {
			select {
			case <-egCtx.Done():
				return nil
			case indices <- page:
			}
		}
		return nil
	})

	workers := min(max(profile.Concurrency, 1), first.TotalPages-1)
	for range workers {
		eg.Go(func() error {
			for page := range indices {
				if egCtx.Err() != nil {
					return nil
				}
				result, err := f.FetchPage(egCtx, target, query, profile.PageSize, page)
				if err != nil {
					return err
				}
				pages[page-1] = result.Items
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return lo.Flatten(pages), nil
}
