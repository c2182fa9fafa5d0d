// Package tenant resolves upstream targets from per-tenant configuration documents.
package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
)

// ErrConfigNotFound is returned when tenant has no configuration.
var ErrConfigNotFound = errors.New("config not found")

// Config is upstream configuration of tenant or its store.
type Config struct {
	CoreEndpoint         string `json:"coreEndpoint"`
	APIKey               string `json:"apiKey"`
	MagentoEnvironmentID string `json:"magentoEnvironmentId"`
	MagentoWebsiteCode   string `json:"magentoWebsiteCode"`
	MagentoStoreViewCode string `json:"magentoStoreViewCode"`
	MagentoStoreCode     string `json:"magentoStoreCode"`
}

// Document is tenant configuration document.
// Non-empty fields of store configs override base config.
type Document struct {
	Base   Config            `json:"base"`
	Stores map[string]Config `json:"stores,omitempty"`
}

// Source returns raw tenant configuration documents.
type Source interface {
	// Document returns tenant document or ErrConfigNotFound.
	Document(ctx context.Context, tenant string) ([]byte, error)
}

// Resolver resolves upstream targets of scopes.
type Resolver struct {
	source Source
}

// NewResolver returns new Resolver.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source: source,
	}
}

// Resolve returns upstream target of scope.
func (r *Resolver) Resolve(ctx context.Context, scope models.Scope) (fetcher.Target, error) {
	raw, err := r.source.Document(ctx, scope.Tenant)
	if err != nil {
		return fetcher.Target{}, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fetcher.Target{}, fmt.Errorf("invalid config of tenant %q: %w", scope.Tenant, err)
	}

	return doc.Config(scope.Store).Target(), nil
}

// Config returns base config merged with store overrides.
func (d Document) Config(store string) Config {
	merged := d.Base
	override, ok := d.Stores[store]
	if !ok {
		return merged
	}

	mergeField(&merged.CoreEndpoint, override.CoreEndpoint)
	mergeField(&merged.APIKey, override.APIKey)
	mergeField(&merged.MagentoEnvironmentID, override.MagentoEnvironmentID)
	mergeField(&merged.MagentoWebsiteCode, override.MagentoWebsiteCode)
	mergeField(&merged.MagentoStoreViewCode, override.MagentoStoreViewCode)
	mergeField(&merged.MagentoStoreCode, override.MagentoStoreCode)

	return merged
}

// Target returns upstream target described by config.
func (c Config) Target() fetcher.Target {
	return fetcher.Target{
		Endpoint:      c.CoreEndpoint,
		APIKey:        c.APIKey,
		EnvironmentID: c.MagentoEnvironmentID,
		WebsiteCode:   c.MagentoWebsiteCode,
		StoreViewCode: c.MagentoStoreViewCode,
		StoreCode:     c.MagentoStoreCode,
	}
}

func mergeField(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}
