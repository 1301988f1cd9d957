// Package http exposes the product catalog over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/http/mapper"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/application"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
	sharederrors "github.com/Apurer/go-pos-api-server/internal/shared/errors"
)

// Handler serves the product endpoints.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewHandler wires the catalog HTTP surface.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(sharederrors.DefaultResponder, mapCatalogError),
	}
}

// Register mounts the product routes on the given router group.
func (h *Handler) Register(router gin.IRouter) {
	products := router.Group("/products")
	products.POST("", h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.GET("/barcode/:barcode", h.getProductByBarcode)
}

func (h *Handler) createProduct(c *gin.Context) {
	var request mapper.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	product, err := mapper.ToDomainProduct(request)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	created, err := h.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainProduct(created))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProducts(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

func (h *Handler) getProductByBarcode(c *gin.Context) {
	product, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

func mapCatalogError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
