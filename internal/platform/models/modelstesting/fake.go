package modelstesting

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// FakeProduct returns models.Product with fake data.
// Raw is generated from the final fields unless an option sets it, so UpdatedAt
// set by options should have second precision.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		SKU:       "SKU-" + strings.ToUpper(uuid.NewString()[:8]),
		URLKey:    strings.ToLower(faker.Word() + "-" + faker.Word() + "-" + uuid.NewString()[:4]),
		Name:      faker.Sentence(),
		UpdatedAt: time.Unix(rand.Int63n(1_700_000_000)+100_000_000, 0).UTC(),
	}

	for _, op := range ops {
		op(&product)
	}

	if product.Raw == nil {
		product.Raw = fakeRaw(product)
	}

	return product
}

// FakeProducts returns n fake products updated after since.
func FakeProducts(n int, since time.Time, ops ...func(p *models.Product)) []models.Product {
	products := make([]models.Product, 0, n)
	for ix := range n {
		updatedAt := since.Add(time.Duration(ix+1) * time.Second).Truncate(time.Second).UTC()
		products = append(products, FakeProduct(append(
			[]func(p *models.Product){func(p *models.Product) { p.UpdatedAt = updatedAt }},
			ops...,
		)...))
	}
	return products
}

// WithSKU sets product SKU.
func WithSKU(sku string) func(p *models.Product) {
	return func(p *models.Product) { p.SKU = sku }
}

// WithURLKey sets product url key.
func WithURLKey(urlKey string) func(p *models.Product) {
	return func(p *models.Product) { p.URLKey = urlKey }
}

// WithUpdatedAt sets product update time.
func WithUpdatedAt(t time.Time) func(p *models.Product) {
	return func(p *models.Product) { p.UpdatedAt = t.Truncate(time.Second).UTC() }
}

func fakeRaw(product models.Product) json.RawMessage {
	record := map[string]any{
		"sku":          product.SKU,
		"name":         product.Name,
		"meta_title":   faker.Word(),
		"stock_status": "IN_STOCK",
		"description": map[string]string{
			"html": "<p>" + faker.Paragraph() + "</p>",
		},
		"price_range": map[string]any{
			"minimum_price": map[string]any{
				"regular_price": map[string]any{
					"value":    rand.Intn(100_000) + 1,
					"currency": "USD",
				},
			},
		},
		"image": map[string]string{
			"url":   "https://" + faker.DomainName() + "/" + faker.Word() + ".jpg",
			"label": faker.Word(),
		},
	}
	if product.URLKey != "" {
		record["url_key"] = product.URLKey
	}
	if !product.UpdatedAt.IsZero() {
		record["updated_at"] = product.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
	}

	raw, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	return raw
}
