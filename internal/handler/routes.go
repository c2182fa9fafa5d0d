package handler

import (
	"net/http"

	"github.com/MichalMitros/catalog-sync/internal/platform"
)

// Operation is operation served by catalog routes.
type Operation int

// Supported operations.
const (
	OperationSync Operation = iota + 1
	OperationProductGet
	OperationProductPost
)

const (
	routeSync    = "sync"
	routeProduct = "product"
)

// String returns operation name.
func (o Operation) String() string {
	switch o {
	case OperationSync:
		return "sync"
	case OperationProductGet:
		return "product-get"
	case OperationProductPost:
		return "product-post"
	default:
		return "unknown"
	}
}

// ResolveOperation returns operation for route and method or platform.ErrUnsupportedRoute.
func ResolveOperation(route, method string) (Operation, error) {
	switch {
	case route == routeSync && (method == http.MethodGet || method == http.MethodPost):
		return OperationSync, nil
	case route == routeProduct && method == http.MethodGet:
		return OperationProductGet, nil
	case route == routeProduct && method == http.MethodPost:
		return OperationProductPost, nil
	default:
		return 0, platform.ErrUnsupportedRoute
	}
}
