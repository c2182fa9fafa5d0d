package fetcher

import (
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-sync/internal/decoder"
)

var (
	// ErrStatusNotOK is returned when http response had status other than 2xx.
	ErrStatusNotOK = errors.New("response status is not 2xx")
	// ErrMalformedEnvelope is returned when response isn't valid products envelope.
	ErrMalformedEnvelope = decoder.ErrMalformedEnvelope
)

// UpstreamError is returned when upstream request for a page failed.
type UpstreamError struct {
	Page       int
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream request for page %d failed with status %d: %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream request for page %d failed: %v", e.Page, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
