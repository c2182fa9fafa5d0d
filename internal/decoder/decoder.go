package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/samber/lo"
)

// ErrMalformedEnvelope is returned when response doesn't contain data.products.
var ErrMalformedEnvelope = errors.New("malformed graphql envelope")

// Decoder decodes GraphQL product responses.
type Decoder struct{}

// Decode decodes products page from GraphQL response body.
// Responses without page_info are decoded as single page.
func (d Decoder) Decode(body io.Reader) (*Page, error) {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	if env.Data == nil || env.Data.Products == nil {
		if len(env.Errors) > 0 {
			messages := lo.Map(env.Errors, func(e graphQLError, _ int) string {
				return e.Message
			})
			return nil, fmt.Errorf("%w: %s", ErrMalformedEnvelope, strings.Join(messages, "; "))
		}
		return nil, fmt.Errorf("%w: missing data.products", ErrMalformedEnvelope)
	}

	return toPage(env.Data.Products), nil
}
