// Package http exposes invoice generation over gin.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/application"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
	ordersapp "github.com/Apurer/go-pos-api-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-pos-api-server/internal/shared/errors"
)

// Invoice is the transport-layer invoice shape.
type Invoice struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	OrderNumber   string    `json:"orderNumber"`
	TotalAmount   float64   `json:"totalAmount"`
	InvoiceDate   time.Time `json:"invoiceDate"`
	DocumentPath  string    `json:"documentPath,omitempty"`
}

// Handler serves the invoice endpoints.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewHandler wires the billing HTTP surface.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(sharederrors.DefaultResponder, mapBillingError),
	}
}

// Register mounts the invoice routes on the given router group.
func (h *Handler) Register(router gin.IRouter) {
	router.POST("/orders/:number/invoice", h.generateInvoice)
	router.GET("/orders/:number/invoice", h.getInvoice)
}

func (h *Handler) generateInvoice(c *gin.Context) {
	invoice, err := h.service.GenerateInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainInvoice(invoice))
}

func (h *Handler) getInvoice(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainInvoice(invoice))
}

func fromDomainInvoice(invoice *domain.Invoice) Invoice {
	if invoice == nil {
		return Invoice{}
	}
	return Invoice{
		InvoiceNumber: invoice.Number,
		OrderNumber:   invoice.OrderNumber,
		TotalAmount:   invoice.TotalAmount,
		InvoiceDate:   invoice.InvoiceDate,
		DocumentPath:  invoice.DocumentPath,
	}
}

func mapBillingError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ordersports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrConflict), errors.Is(err, ordersapp.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
