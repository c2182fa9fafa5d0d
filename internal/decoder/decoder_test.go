package decoder_test

import (
	"encoding/json"
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/MichalMitros/catalog-sync/internal/decoder"
	"github.com/MichalMitros/catalog-sync/internal/decoder/testdata"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageFileName = "page.json"

func TestUnitDecode(t *testing.T) {
	page, err := decoder.Decoder{}.Decode(PageFileAsReader(t))

	require.NoError(t, err, "should not return any error")
	assert.Equal(t, 3, page.TotalCount, "should decode total count")
	assert.Equal(t, 2, page.TotalPages, "should decode total pages")
	assert.Equal(t, 1, page.CurrentPage, "should decode current page")
	assert.True(t, page.Paged, "should report page info")
	assert.Equal(t, testdata.Products, identities(page.Items), "should decode all products")
}

func TestUnitDecodeKeepsWholeRecord(t *testing.T) {
	page, err := decoder.Decoder{}.Decode(PageFileAsReader(t))
	require.NoError(t, err, "should not return any error")

	var record map[string]any
	require.NoError(t, json.Unmarshal(page.Items[0].Raw, &record))

	assert.Equal(t, "IN_STOCK", record["stock_status"], "should keep fields unknown to the model")
	assert.Contains(t, record, "price_range", "should keep nested fields")
}

func TestUnitDecodeSingleItemEnvelope(t *testing.T) {
	body := `{"data":{"products":{"items":[{"sku":"ABC123","name":"Blue Widget","url_key":"blue-widget"}]}}}`

	page, err := decoder.Decoder{}.Decode(strings.NewReader(body))

	require.NoError(t, err, "should not return any error")
	assert.Equal(t, 1, page.TotalPages, "should treat response as single page")
	assert.False(t, page.Paged, "should report missing page info")
	assert.Equal(t, 1, page.TotalCount, "should count items")
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ABC123", page.Items[0].SKU)
}

func TestUnitDecodeEmptyItems(t *testing.T) {
	body := `{"data":{"products":{"total_count":0,"page_info":{"total_pages":0,"current_page":1},"items":[]}}}`

	page, err := decoder.Decoder{}.Decode(strings.NewReader(body))

	require.NoError(t, err, "should not return any error")
	assert.Empty(t, page.Items, "should return no products")
}

func TestUnitDecodeMalformed(t *testing.T) {
	tests := map[string]struct {
		body    string
		wantMsg string
	}{
		"not json": {
			body:    "<html>bad gateway</html>",
			wantMsg: "malformed graphql envelope: invalid character '<' looking for beginning of value",
		},
		"graphql errors": {
			body:    `{"errors":[{"message":"api key invalid"},{"message":"try again"}]}`,
			wantMsg: "malformed graphql envelope: api key invalid; try again",
		},
		"missing products": {
			body:    `{"data":{}}`,
			wantMsg: "malformed graphql envelope: missing data.products",
		},
		"null data": {
			body:    `{"data":null}`,
			wantMsg: "malformed graphql envelope: missing data.products",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			page, err := decoder.Decoder{}.Decode(strings.NewReader(tt.body))

			require.ErrorIs(t, err, decoder.ErrMalformedEnvelope, "should return malformed envelope error")
			require.EqualError(t, err, tt.wantMsg, "should return correct error message")
			assert.Nil(t, page, "shouldn't return page")
		})
	}
}

// identities strips upstream records from products.
func identities(products []models.Product) []models.Product {
	return lo.Map(products, func(p models.Product, _ int) models.Product {
		p.Raw = nil
		return p
	})
}

// PageFileAsReader returns io.Reader with page file.
func PageFileAsReader(t *testing.T) io.Reader {
	t.Helper()

	f, err := os.Open(path.Join("testdata", pageFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}
