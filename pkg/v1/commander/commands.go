package commander

import "encoding/json"

// Message types.
const (
	TypeSync    = "catalog-sync"
	TypeRefresh = "catalog-refresh"
)

// Scope is tenant and store the command applies to.
type Scope struct {
	Tenant string `json:"tenant"`
	Store  string `json:"store"`
}

// SyncChunk carries upstream product records to store.
type SyncChunk struct {
	Type   string            `json:"type"`
	Config Scope             `json:"config"`
	Data   []json.RawMessage `json:"data"`
}

// RefreshCommand asks for refetching and storing products with provided SKUs.
type RefreshCommand struct {
	Type   string   `json:"type"`
	Config Scope    `json:"config"`
	Data   []SKURef `json:"data"`
}

// SKURef references product by SKU.
type SKURef struct {
	SKU string `json:"sku"`
}
