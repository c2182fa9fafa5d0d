package fetcher

import (
	"maps"
	"time"
)

// updatedSinceLayout is upstream updated_at format.
const updatedSinceLayout = "2006-01-02 15:04:05"

const productFields = `
      name
      sku
      meta_title
      meta_keyword
      meta_description
      url_key
      stock_status
      updated_at
      short_description { html }
      description { html }
      ... on ConfigurableProduct {
        variants {
          attributes { code label uid value_index }
        }
      }
      price_range {
        minimum_price {
          regular_price { value currency }
        }
      }
      image { url label }
      small_image { url label }
      media_gallery { url label }`

const pagedProductsQuery = `query products($filter: ProductAttributeFilterInput, $pageSize: Int, $currentPage: Int) {
  products(filter: $filter, pageSize: $pageSize, currentPage: $currentPage) {
    total_count
    page_info { total_pages current_page }
    items {` + productFields + `
    }
  }
}`

const singleProductQuery = `query products($filter: ProductAttributeFilterInput) {
  products(filter: $filter) {
    items {` + productFields + `
    }
  }
}`

// Query is GraphQL products query with its variables.
type Query struct {
	Text      string
	Variables map[string]any
}

// AllProducts returns query listing the whole catalog.
func AllProducts() Query {
	return Query{
		Text: pagedProductsQuery,
		Variables: map[string]any{
			"filter": map[string]any{
				"price": priceRange(),
			},
		},
	}
}

// UpdatedProducts returns query listing products updated since provided time.
// Upstream filtering is best effort, results must be filtered again by the caller.
func UpdatedProducts(since time.Time) Query {
	return Query{
		Text: pagedProductsQuery,
		Variables: map[string]any{
			"filter": map[string]any{
				"price":      priceRange(),
				"updated_at": map[string]any{"from": since.UTC().Format(updatedSinceLayout)},
			},
		},
	}
}

// ProductsBySKU returns query listing products with provided SKUs.
func ProductsBySKU(skus []string) Query {
	return Query{
		Text: pagedProductsQuery,
		Variables: map[string]any{
			"filter": map[string]any{
				"sku": map[string]any{"in": skus},
			},
		},
	}
}

// SingleProduct returns query for one product.
// Products are matched by urlKey when it's not empty, by sku otherwise.
func SingleProduct(sku, urlKey string) Query {
	filter := map[string]any{"sku": map[string]any{"eq": sku}}
	if urlKey != "" {
		filter = map[string]any{"url_key": map[string]any{"eq": urlKey}}
	}
	return Query{
		Text:      singleProductQuery,
		Variables: map[string]any{"filter": filter},
	}
}

// page returns query variables for provided page.
func (q Query) page(pageSize, currentPage int) map[string]any {
	variables := maps.Clone(q.Variables)
	if variables == nil {
		variables = make(map[string]any, 2)
	}
	variables["pageSize"] = pageSize
	variables["currentPage"] = currentPage
	return variables
}

func priceRange() map[string]any {
	return map[string]any{"from": 0, "to": 10000000}
}
