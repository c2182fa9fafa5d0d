package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// updatedAtLayouts are layouts accepted for upstream updated_at values.
// Values without zone are UTC.
var updatedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Scope is tenant and store pair under which products and watermarks are partitioned.
type Scope struct {
	Tenant string `json:"tenant"`
	Store  string `json:"store"`
}

// String returns scope in tenant/store form.
func (s Scope) String() string {
	return s.Tenant + "/" + s.Store
}

// Product is catalog product.
// Only identity fields are decoded, the whole upstream record is kept in Raw.
type Product struct {
	SKU       string
	URLKey    string
	Name      string
	UpdatedAt time.Time
	Raw       json.RawMessage
}

type productFields struct {
	SKU       string `json:"sku"`
	URLKey    string `json:"url_key,omitempty"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// NewProduct decodes product from its upstream JSON representation.
func NewProduct(raw []byte) (Product, error) {
	var product Product
	if err := product.UnmarshalJSON(raw); err != nil {
		return Product{}, err
	}
	return product, nil
}

// UnmarshalJSON decodes identity fields and keeps copy of the whole record.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields productFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("can't decode product: %w", err)
	}

	p.SKU = fields.SKU
	p.URLKey = fields.URLKey
	p.Name = fields.Name
	p.UpdatedAt = ParseUpdatedAt(fields.UpdatedAt)
	p.Raw = append(json.RawMessage(nil), data...)

	return nil
}

// MarshalJSON returns the upstream record.
// Products built without one are encoded from their identity fields.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}

	fields := productFields{
		SKU:    p.SKU,
		URLKey: p.URLKey,
		Name:   p.Name,
	}
	if !p.UpdatedAt.IsZero() {
		fields.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return json.Marshal(fields)
}

// UpdatedAfter reports whether product was updated strictly after t.
func (p Product) UpdatedAfter(t time.Time) bool {
	return p.UpdatedAt.After(t)
}

// ParseUpdatedAt parses upstream updated_at value.
// It returns zero time when value can't be parsed.
func ParseUpdatedAt(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range updatedAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Watermark is the last successful synchronization time of a scope.
type Watermark struct {
	LastSyncDate time.Time `json:"lastSyncDate"`
}

// Message is queue message envelope. Data is decoded according to Type.
type Message struct {
	Type   string          `json:"type"`
	Config Scope           `json:"config"`
	Data   json.RawMessage `json:"data"`
}

// SKURef references product by SKU.
type SKURef struct {
	SKU string `json:"sku"`
}

// Run is sync pass run model.
type Run struct {
	ID                 int
	Scope              Scope
	Force              bool
	CreatedAt          time.Time
	FinishedAt         *time.Time
	IsSuccess          *bool
	StatusMessage      *string
	FetchedProducts    *int32
	PropagatedProducts *int32
	Chunks             *int32
}
