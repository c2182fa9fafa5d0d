package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MichalMitros/catalog-sync/internal/decoder"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
)

// Target is upstream GraphQL endpoint with store routing headers.
type Target struct {
	Endpoint      string
	APIKey        string
	EnvironmentID string
	WebsiteCode   string
	StoreViewCode string
	StoreCode     string
}

// Fetcher builds GraphQL requests and fetches products via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
	decoder   decoder.Decoder
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// FetchPage returns single page of paged query.
// Responses without page_info are malformed.
func (f *Fetcher) FetchPage(ctx context.Context, target Target, query Query, pageSize, page int) (*decoder.Page, error) {
	result, err := f.post(ctx, target, request{
		Query:     query.Text,
		Variables: query.page(pageSize, page),
	})
	if err != nil {
		return nil, upstreamError(page, err)
	}
	if !result.Paged {
		return nil, upstreamError(page, fmt.Errorf("%w: missing page_info", ErrMalformedEnvelope))
	}
	return result, nil
}

// FetchOne returns first product matching single item query.
// It returns nil product when nothing matches.
func (f *Fetcher) FetchOne(ctx context.Context, target Target, query Query) (*models.Product, error) {
	result, err := f.post(ctx, target, request{
		Query:     query.Text,
		Variables: query.Variables,
	})
	if err != nil {
		return nil, upstreamError(1, err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return &result.Items[0], nil
}

func (f *Fetcher) post(ctx context.Context, target Target, body request) (*decoder.Page, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("can't encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("User-Agent", f.userAgent)
	req.Header.Add("x-api-key", target.APIKey)
	req.Header.Add("Magento-Environment-Id", target.EnvironmentID)
	req.Header.Add("Magento-Website-Code", target.WebsiteCode)
	req.Header.Add("Magento-Store-View-Code", target.StoreViewCode)
	req.Header.Add("Magento-Store-Code", target.StoreCode)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &statusError{code: resp.StatusCode}
	}

	return f.decoder.Decode(resp.Body)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return ErrStatusNotOK.Error()
}

func (e *statusError) Unwrap() error {
	return ErrStatusNotOK
}

func upstreamError(page int, err error) error {
	upErr := &UpstreamError{Page: page, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		upErr.StatusCode = se.code
	}
	return upErr
}
