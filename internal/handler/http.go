package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/lookup"
	"github.com/MichalMitros/catalog-sync/internal/platform"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/internal/syncer"
	"github.com/MichalMitros/catalog-sync/internal/tenant"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name Products --filename products.go

// Syncer runs sync passes.
type Syncer interface {
	Sync(ctx context.Context, scope models.Scope, target fetcher.Target, force bool) (*syncer.Result, error)
}

// Products resolves single products.
type Products interface {
	Resolve(ctx context.Context, scope models.Scope, target fetcher.Target, req lookup.Request) (*lookup.Result, error)
}

// operationHandler serves single operation for resolved scope and target.
type operationHandler func(c *gin.Context, scope models.Scope, target fetcher.Target)

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler serves catalog HTTP routes.
type HTTPHandler struct {
	targets  Targets
	syncer   Syncer
	products Products
	logger   *zerolog.Logger
}

// NewHTTPHandler returns new HTTPHandler.
func NewHTTPHandler(targets Targets, syn Syncer, products Products, logger *zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		targets:  targets,
		syncer:   syn,
		products: products,
		logger:   logger,
	}
}

// Router returns gin engine with all routes.
func (h *HTTPHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), LoggingMiddleware(h.logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Any("/:tenant/:catalog/:store/:route", h.dispatch)
	router.NoRoute(func(c *gin.Context) {
		if !allowedMethod(c.Request.Method) {
			abort(c, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		abort(c, http.StatusNotFound, "missing tenant, store or route")
	})

	return router
}

func allowedMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodPost
}

func (h *HTTPHandler) dispatch(c *gin.Context) {
	method := c.Request.Method
	if !allowedMethod(method) {
		abort(c, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	op, err := ResolveOperation(c.Param("route"), method)
	if err != nil {
		abort(c, http.StatusNotFound, err.Error())
		return
	}

	scope := models.Scope{
		Tenant: c.Param("tenant"),
		Store:  c.Param("store"),
	}

	target, err := h.targets.Resolve(c.Request.Context(), scope)
	if err != nil {
		if errors.Is(err, tenant.ErrConfigNotFound) {
			abort(c, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(c, op, scope, err)
		return
	}

	h.handlerFor(op)(c, scope, target)
}

func (h *HTTPHandler) handlerFor(op Operation) operationHandler {
	switch op {
	case OperationSync:
		return h.sync
	case OperationProductGet:
		return h.getProduct
	default:
		return h.postProduct
	}
}

// sync responds with out of sync products, or with all fetched products when forced.
// Forced sync which stored the catalog only partially still responds with 200,
// the failed run is visible in the journal.
func (h *HTTPHandler) sync(c *gin.Context, scope models.Scope, target fetcher.Target) {
	force := c.Query("force") == "true"

	result, err := h.syncer.Sync(c.Request.Context(), scope, target, force)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			abort(c, http.StatusConflict, err.Error())
			return
		}
		h.internalError(c, OperationSync, scope, err)
		return
	}

	products := result.Products
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *HTTPHandler) getProduct(c *gin.Context, scope models.Scope, target fetcher.Target) {
	req := lookup.Request{
		SKU:    c.Query("sku"),
		URLKey: c.Query("urlKey"),
	}

	result, err := h.products.Resolve(c.Request.Context(), scope, target, req)
	switch {
	case errors.Is(err, platform.ErrBadRequest):
		abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, platform.ErrNotFound):
		abort(c, http.StatusNotFound, err.Error())
	case err != nil:
		h.internalError(c, OperationProductGet, scope, err)
	default:
		c.JSON(http.StatusOK, result.Product)
	}
}

func (h *HTTPHandler) postProduct(c *gin.Context, _ models.Scope, _ fetcher.Target) {
	abort(c, http.StatusNotImplemented, "not implemented")
}

func (h *HTTPHandler) internalError(c *gin.Context, op Operation, scope models.Scope, err error) {
	h.logger.Error().
		Err(err).
		Str("operation", op.String()).
		Str("scope", scope.String()).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("request failed")
	abort(c, http.StatusInternalServerError, "internal server error")
}

func abort(c *gin.Context, status int, message string) {
	c.Header("x-error", message)
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}
