// Package http exposes inventory reads and restocks over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/application"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
	sharederrors "github.com/Apurer/go-pos-api-server/internal/shared/errors"
)

// Record is the transport-layer stock level.
type Record struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// RestockRequest sets an absolute quantity for a product.
type RestockRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

// Handler serves the inventory endpoints.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewHandler wires the inventory HTTP surface.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(sharederrors.DefaultResponder, mapInventoryError),
	}
}

// Register mounts the inventory routes on the given router group.
func (h *Handler) Register(router gin.IRouter) {
	inventory := router.Group("/inventory")
	inventory.GET("/:productId", h.getRecord)
	inventory.PUT("/:productId", h.restock)
}

func (h *Handler) getRecord(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainRecord(record))
}

func (h *Handler) restock(c *gin.Context) {
	var request RestockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	record, err := h.service.SetQuantity(c.Request.Context(), c.Param("productId"), *request.Quantity)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainRecord(record))
}

func fromDomainRecord(record *domain.Record) Record {
	if record == nil {
		return Record{}
	}
	return Record{ProductID: record.ProductID, Quantity: record.Quantity}
}

func mapInventoryError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, domain.ErrCapacityExceeded):
		return sharederrors.ErrCapacity.WithDetail(err.Error()), true
	case errors.Is(err, domain.ErrInsufficientStock):
		return sharederrors.ErrInsufficientStock.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
