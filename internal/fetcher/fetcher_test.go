package fetcher_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userAgent = "test/0.0.0"

var target = fetcher.Target{
	APIKey:        "api-key",
	EnvironmentID: "env-1",
	WebsiteCode:   "base",
	StoreViewCode: "default",
	StoreCode:     "main_website_store",
}

// upstream is fake paged products endpoint.
type upstream struct {
	totalPages int
	perPage    int
	failPage   int
	delay      time.Duration

	requests    atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (u *upstream) ServeHTTP(wrt http.ResponseWriter, req *http.Request) {
	u.requests.Add(1)
	current := u.inFlight.Add(1)
	defer u.inFlight.Add(-1)
	for {
		maxSeen := u.maxInFlight.Load()
		if current <= maxSeen || u.maxInFlight.CompareAndSwap(maxSeen, current) {
			break
		}
	}

	var body gqlRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		wrt.WriteHeader(http.StatusBadRequest)
		return
	}
	page := int(body.Variables["currentPage"].(float64))

	if u.delay > 0 {
		time.Sleep(u.delay)
	}
	if page == u.failPage {
		wrt.WriteHeader(http.StatusInternalServerError)
		return
	}

	items := lo.Times(u.perPage, func(i int) map[string]any {
		return map[string]any{
			"sku":        pageSKU(page, i),
			"name":       "product",
			"updated_at": "2024-05-01 00:00:00",
		}
	})

	wrt.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(wrt).Encode(map[string]any{
		"data": map[string]any{
			"products": map[string]any{
				"total_count": u.totalPages * u.perPage,
				"page_info":   map[string]any{"total_pages": u.totalPages, "current_page": page},
				"items":       items,
			},
		},
	})
}

func pageSKU(page, ix int) string {
	return fmt.Sprintf("SKU-%03d-%02d", page, ix)
}

func wantSKUs(totalPages, perPage int) []string {
	var skus []string
	for page := 1; page <= totalPages; page++ {
		for ix := 0; ix < perPage; ix++ {
			skus = append(skus, pageSKU(page, ix))
		}
	}
	return skus
}

func skus(products []models.Product) []string {
	return lo.Map(products, func(p models.Product, _ int) string {
		return p.SKU
	})
}

func newFetcher(t *testing.T, handler http.Handler) (*fetcher.Fetcher, fetcher.Target) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tgt := target
	tgt.Endpoint = srv.URL + "/graphql"

	return fetcher.NewFetcher(srv.Client(), userAgent), tgt
}

func TestUnitFetchAllCompleteness(t *testing.T) {
	const totalPages = 12

	tests := map[string]struct {
		concurrency int
	}{
		"sequential":              {concurrency: 1},
		"bounded":                 {concurrency: 5},
		"one worker per page":     {concurrency: totalPages},
		"more workers than pages": {concurrency: totalPages + 10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			up := &upstream{totalPages: totalPages, perPage: 3}
			fet, tgt := newFetcher(t, up)

			products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.Profile{
				PageSize:    3,
				Concurrency: tt.concurrency,
			})

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, wantSKUs(totalPages, 3), skus(products), "should return all products in page order")
			assert.EqualValues(t, totalPages, up.requests.Load(), "should request every page once")
		})
	}
}

func TestUnitFetchAllBoundsInFlightRequests(t *testing.T) {
	up := &upstream{totalPages: 20, perPage: 1, delay: 20 * time.Millisecond}
	fet, tgt := newFetcher(t, up)

	products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.Profile{
		PageSize:    1,
		Concurrency: 4,
	})

	require.NoError(t, err, "shouldn't return any error")
	assert.Len(t, products, 20, "should return all products")
	assert.LessOrEqual(t, up.maxInFlight.Load(), int32(4), "shouldn't exceed concurrency")
}

func TestUnitFetchAllSinglePage(t *testing.T) {
	up := &upstream{totalPages: 1, perPage: 2}
	fet, tgt := newFetcher(t, up)

	products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.FullScan)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, wantSKUs(1, 2), skus(products))
	assert.EqualValues(t, 1, up.requests.Load(), "should make one request")
}

func TestUnitFetchAllAbortsOnError(t *testing.T) {
	up := &upstream{totalPages: 10, perPage: 1, failPage: 3}
	fet, tgt := newFetcher(t, up)

	products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.Profile{
		PageSize:    1,
		Concurrency: 1,
	})

	require.ErrorIs(t, err, fetcher.ErrStatusNotOK, "should return status error")
	var upErr *fetcher.UpstreamError
	require.ErrorAs(t, err, &upErr, "should return upstream error")
	assert.Equal(t, 3, upErr.Page, "should point failed page")
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode, "should keep response status")
	assert.Nil(t, products, "shouldn't return partial result")
	assert.EqualValues(t, 3, up.requests.Load(), "shouldn't request pages after failure")
}

func TestUnitFetchAllFirstPageError(t *testing.T) {
	up := &upstream{totalPages: 10, perPage: 1, failPage: 1}
	fet, tgt := newFetcher(t, up)

	products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.FullScan)

	require.ErrorIs(t, err, fetcher.ErrStatusNotOK, "should return status error")
	assert.Nil(t, products, "shouldn't return any products")
	assert.EqualValues(t, 1, up.requests.Load(), "should stop after first page")
}

func TestUnitFetchAllMalformedEnvelope(t *testing.T) {
	fet, tgt := newFetcher(t, http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		_, _ = wrt.Write([]byte(`{"errors":[{"message":"internal"}]}`))
	}))

	_, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.FullScan)

	require.ErrorIs(t, err, fetcher.ErrMalformedEnvelope, "should return malformed envelope error")
	var upErr *fetcher.UpstreamError
	require.ErrorAs(t, err, &upErr, "should return upstream error")
	assert.Zero(t, upErr.StatusCode, "should have no status for malformed body")
}

func TestUnitFetchAllMissingPageInfo(t *testing.T) {
	fet, tgt := newFetcher(t, http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		_, _ = wrt.Write([]byte(`{"data":{"products":{"total_count":500,"items":[{"sku":"ABC123"}]}}}`))
	}))

	products, err := fet.FetchAll(context.TODO(), tgt, fetcher.AllProducts(), fetcher.FullScan)

	require.ErrorIs(t, err, fetcher.ErrMalformedEnvelope, "should reject paged response without page info")
	assert.Nil(t, products, "shouldn't return truncated catalog")
	var upErr *fetcher.UpstreamError
	require.ErrorAs(t, err, &upErr, "should return upstream error")
	assert.Equal(t, 1, upErr.Page, "should report failed page")
}

func TestUnitFetchAllCanceledContext(t *testing.T) {
	up := &upstream{totalPages: 2, perPage: 1}
	fet, tgt := newFetcher(t, up)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fet.FetchAll(ctx, tgt, fetcher.AllProducts(), fetcher.FullScan)

	require.ErrorIs(t, err, context.Canceled, "should return context error")
	assert.Zero(t, up.requests.Load(), "shouldn't make any request")
}

func TestUnitFetchPageRequest(t *testing.T) {
	wantHeaders := map[string]string{
		"User-Agent":              userAgent,
		"Content-Type":            "application/json",
		"Accept":                  "application/json",
		"X-Api-Key":               "api-key",
		"Magento-Environment-Id":  "env-1",
		"Magento-Website-Code":    "base",
		"Magento-Store-View-Code": "default",
		"Magento-Store-Code":      "main_website_store",
	}

	requests := make(chan gqlRequest, 1)
	fet, tgt := newFetcher(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method, "should use POST")
		validateHeaders(t, req.Header, wantHeaders)
		var body gqlRequest
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		requests <- body
		_, _ = wrt.Write([]byte(`{"data":{"products":{"page_info":{"total_pages":7,"current_page":7},"items":[]}}}`))
	}))

	since := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := fet.FetchPage(context.TODO(), tgt, fetcher.UpdatedProducts(since), 50, 7)

	require.NoError(t, err, "shouldn't return any error")
	got := <-requests
	assert.Contains(t, got.Query, "page_info", "should send paged query")
	assert.EqualValues(t, 50, got.Variables["pageSize"], "should send page size")
	assert.EqualValues(t, 7, got.Variables["currentPage"], "should send current page")
	assert.Equal(t, map[string]any{
		"price":      map[string]any{"from": float64(0), "to": float64(10000000)},
		"updated_at": map[string]any{"from": "2024-05-01 12:00:00"},
	}, got.Variables["filter"], "should send updated since filter")
}

func TestUnitFetchOne(t *testing.T) {
	tests := map[string]struct {
		query      fetcher.Query
		response   string
		wantFilter map[string]any
		wantSKU    string
	}{
		"by sku": {
			query:      fetcher.SingleProduct("ABC123", ""),
			response:   `{"data":{"products":{"items":[{"sku":"ABC123","url_key":"blue-widget"}]}}}`,
			wantFilter: map[string]any{"sku": map[string]any{"eq": "ABC123"}},
			wantSKU:    "ABC123",
		},
		"by url key": {
			query:      fetcher.SingleProduct("", "blue-widget"),
			response:   `{"data":{"products":{"items":[{"sku":"ABC123","url_key":"blue-widget"}]}}}`,
			wantFilter: map[string]any{"url_key": map[string]any{"eq": "blue-widget"}},
			wantSKU:    "ABC123",
		},
		"not found": {
			query:      fetcher.SingleProduct("MISSING", ""),
			response:   `{"data":{"products":{"items":[]}}}`,
			wantFilter: map[string]any{"sku": map[string]any{"eq": "MISSING"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			requests := make(chan gqlRequest, 1)
			fet, tgt := newFetcher(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				var body gqlRequest
				assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
				requests <- body
				_, _ = wrt.Write([]byte(tt.response))
			}))

			product, err := fet.FetchOne(context.TODO(), tgt, tt.query)

			require.NoError(t, err, "shouldn't return any error")
			got := <-requests
			assert.Equal(t, tt.wantFilter, got.Variables["filter"], "should send correct filter")
			assert.NotContains(t, got.Variables, "currentPage", "shouldn't page single item query")
			if tt.wantSKU == "" {
				assert.Nil(t, product, "shouldn't return product")
				return
			}
			require.NotNil(t, product, "should return product")
			assert.Equal(t, tt.wantSKU, product.SKU)
		})
	}
}

func TestUnitProductsBySKU(t *testing.T) {
	query := fetcher.ProductsBySKU([]string{"A", "B"})

	assert.Equal(t, map[string]any{
		"sku": map[string]any{"in": []string{"A", "B"}},
	}, query.Variables["filter"], "should filter by sku set")
}

func validateHeaders(t *testing.T, headers http.Header, expected map[string]string) {
	t.Helper()

	for header, expectedValue := range expected {
		assert.Equalf(t, expectedValue, headers.Get(header), "request should contain correct value for header %s", header)
	}
}
