package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
)

// Upstream is mocked GraphQL catalog.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	products []models.Product
	requests int
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// NewUpstream starts mocked GraphQL catalog serving products.
// It supports paging and sku/url_key filters, other filters are ignored.
func NewUpstream(t *testing.T, products []models.Product) *Upstream {
	t.Helper()

	u := &Upstream{products: products}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))

	t.Cleanup(func() {
		u.Close()
	})

	return u
}

// SetProducts replaces served products.
func (u *Upstream) SetProducts(products []models.Product) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.products = products
}

// Requests returns number of served requests.
func (u *Upstream) Requests() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.requests
}

func (u *Upstream) serve(wrt http.ResponseWriter, req *http.Request) {
	var body gqlRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		wrt.WriteHeader(http.StatusBadRequest)
		return
	}

	u.mu.Lock()
	u.requests++
	items := lo.Filter(u.products, func(p models.Product, _ int) bool {
		return matches(p, body.Variables)
	})
	u.mu.Unlock()

	products := map[string]any{"items": items}
	if pageSize, ok := body.Variables["pageSize"].(float64); ok {
		page := int(body.Variables["currentPage"].(float64))
		chunks := lo.Chunk(items, int(pageSize))
		products["total_count"] = len(items)
		products["page_info"] = map[string]any{"total_pages": max(len(chunks), 1), "current_page": page}
		products["items"] = []models.Product{}
		if page <= len(chunks) {
			products["items"] = chunks[page-1]
		}
	}

	wrt.Header().Set(contentType, "application/json")
	_ = json.NewEncoder(wrt).Encode(map[string]any{
		"data": map[string]any{"products": products},
	})
}

func matches(product models.Product, variables map[string]any) bool {
	filter, _ := variables["filter"].(map[string]any)

	if sku, ok := filter["sku"].(map[string]any); ok {
		if eq, ok := sku["eq"].(string); ok && eq != product.SKU {
			return false
		}
		if in, ok := sku["in"].([]any); ok && !lo.Contains(in, any(product.SKU)) {
			return false
		}
	}
	if urlKey, ok := filter["url_key"].(map[string]any); ok {
		if eq, ok := urlKey["eq"].(string); ok && eq != product.URLKey {
			return false
		}
	}

	return true
}

// WaitFor is blocking helper function, it polls cond until it's true or fails test after timeout.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			require.FailNow(t, "condition not met before timeout")
		case <-time.After(time.Millisecond * 250):
		}
	}
}

// DeleteRMQQueue deletes queue after test is finished.
func DeleteRMQQueue(t *testing.T, channel *amqp.Channel, queueName string) {
	t.Helper()

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}
