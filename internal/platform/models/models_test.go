package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitParseUpdatedAt(t *testing.T) {
	tests := map[string]struct {
		value string
		want  time.Time
	}{
		"upstream format": {
			value: "2024-05-01 12:30:45",
			want:  time.Date(2024, time.May, 1, 12, 30, 45, 0, time.UTC),
		},
		"rfc3339 with offset": {
			value: "2024-05-01T14:30:45+02:00",
			want:  time.Date(2024, time.May, 1, 12, 30, 45, 0, time.UTC),
		},
		"iso with millis": {
			value: "2024-05-01T12:30:45.123Z",
			want:  time.Date(2024, time.May, 1, 12, 30, 45, 123_000_000, time.UTC),
		},
		"empty": {},
		"garbage": {
			value: "yesterday",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(models.ParseUpdatedAt(tt.value)), "should parse updated_at")
		})
	}
}

func TestUnitProductKeepsUpstreamRecord(t *testing.T) {
	raw := []byte(`{"sku":"ABC123","url_key":"blue-widget","name":"Blue Widget",` +
		`"updated_at":"2024-05-01 12:30:45","price_range":{"minimum_price":{"regular_price":{"value":10}}}}`)

	product, err := models.NewProduct(raw)
	require.NoError(t, err, "shouldn't return any error")

	assert.Equal(t, "ABC123", product.SKU, "should decode sku")
	assert.Equal(t, "blue-widget", product.URLKey, "should decode url key")
	assert.Equal(t, "Blue Widget", product.Name, "should decode name")
	assert.True(t, product.UpdatedAfter(time.Date(2024, time.May, 1, 12, 30, 44, 0, time.UTC)))
	assert.False(t, product.UpdatedAfter(time.Date(2024, time.May, 1, 12, 30, 45, 0, time.UTC)),
		"update time equal to watermark shouldn't count as update")

	encoded, err := json.Marshal([]models.Product{product})
	require.NoError(t, err, "shouldn't return any error")
	assert.JSONEq(t, "["+string(raw)+"]", string(encoded), "should encode whole upstream record")
}

func TestUnitProductWithoutRecord(t *testing.T) {
	product := models.Product{
		SKU:       "X",
		Name:      "x",
		UpdatedAt: time.Date(2024, time.May, 1, 12, 30, 45, 0, time.UTC),
	}

	encoded, err := json.Marshal(product)

	require.NoError(t, err, "shouldn't return any error")
	assert.JSONEq(t, `{"sku":"X","name":"x","updated_at":"2024-05-01T12:30:45Z"}`, string(encoded))
}

func TestUnitProductInvalidJSON(t *testing.T) {
	_, err := models.NewProduct([]byte(`{"sku":`))

	require.ErrorContains(t, err, "can't decode product", "should return decoding error")
}
