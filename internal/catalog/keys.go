package catalog

import (
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
)

const (
	urlKeysDir    = "urlkeys"
	watermarkPath = ".helix/last-sync.json"
)

// ProductKey returns key of product record.
func ProductKey(scope models.Scope, sku string) string {
	return prefix(scope) + sku + ".json"
}

// URLKeyIndexKey returns key of url key index entry.
func URLKeyIndexKey(scope models.Scope, urlKey string) string {
	return prefix(scope) + urlKeysDir + "/" + urlKey
}

// WatermarkKey returns key of scope watermark.
func WatermarkKey(scope models.Scope) string {
	return prefix(scope) + watermarkPath
}

func prefix(scope models.Scope) string {
	return scope.Tenant + "/" + scope.Store + "/"
}
