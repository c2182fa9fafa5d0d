package testdata

import (
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
)

// Products are identity fields of products in page.json.
var Products = []models.Product{
	{
		SKU:       "ABC123",
		URLKey:    "blue-widget",
		Name:      "Blue Widget",
		UpdatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	},
	{
		SKU:       "DEF456",
		URLKey:    "red-widget",
		Name:      "Red Widget",
		UpdatedAt: time.Date(2024, 5, 3, 8, 15, 0, 0, time.UTC),
	},
}
