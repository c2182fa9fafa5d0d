package decoder

import "github.com/MichalMitros/catalog-sync/internal/platform/models"

// Page is single page of products query result.
type Page struct {
	TotalCount  int
	TotalPages  int
	CurrentPage int
	Items       []models.Product
	// Paged reports whether response carried page_info.
	Paged bool
}

type envelope struct {
	Data   *data          `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type data struct {
	Products *products `json:"products"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type products struct {
	TotalCount int              `json:"total_count"`
	PageInfo   *pageInfo        `json:"page_info"`
	Items      []models.Product `json:"items"`
}

type pageInfo struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

func toPage(p *products) *Page {
	page := &Page{
		TotalCount:  p.TotalCount,
		TotalPages:  1,
		CurrentPage: 1,
		Items:       p.Items,
	}
	if p.PageInfo != nil {
		page.Paged = true
		page.TotalPages = p.PageInfo.TotalPages
		page.CurrentPage = p.PageInfo.CurrentPage
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(p.Items)
	}
	return page
}
