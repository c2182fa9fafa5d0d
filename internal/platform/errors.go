package platform

import (
	"errors"
)

var (
	// ErrAlreadyRunning is an error returned when sync pass can't be started because previous pass is not finished yet.
	ErrAlreadyRunning = errors.New("sync already running for this scope")
	// ErrNotFound is returned when product can't be resolved neither from storage nor from upstream.
	ErrNotFound = errors.New("product not found")
	// ErrBadRequest is returned when lookup request has neither SKU nor url key.
	ErrBadRequest = errors.New("either sku or urlKey must be provided")
	// ErrUnsupportedRoute is returned for route and method pairs without operation.
	ErrUnsupportedRoute = errors.New("unsupported route")
)
