// Package http exposes the order fulfillment engine over gin.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/application"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-pos-api-server/internal/shared/errors"
)

// Handler serves the order endpoints.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewHandler wires the order HTTP surface.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(sharederrors.DefaultResponder, mapOrderError),
	}
}

// Register mounts the order routes on the given router group.
func (h *Handler) Register(router gin.IRouter) {
	orders := router.Group("/orders")
	orders.POST("", h.createOrder)
	orders.GET("", h.listOrders)
	orders.GET("/:number", h.getOrder)
	orders.GET("/:number/lines", h.getOrderLines)
	orders.PUT("/:number", h.updateOrder)
	orders.POST("/:number/cancel", h.cancelOrder)
	orders.POST("/:number/retry", h.retryOrder)
}

func (h *Handler) createOrder(c *gin.Context) {
	var request mapper.OrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.CreateOrder(c.Request.Context(), mapper.ToLineInputs(request.Lines))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromCreationResult(result))
}

func (h *Handler) listOrders(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	orders, err := h.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrders(orders))
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) getOrderLines(c *gin.Context) {
	lines, err := h.service.GetOrderLines(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainLines(lines))
}

func (h *Handler) updateOrder(c *gin.Context) {
	var request mapper.OrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	order, err := h.service.UpdateOrder(c.Request.Context(), c.Param("number"), mapper.ToLineInputs(request.Lines))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.service.CancelOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) retryOrder(c *gin.Context) {
	// The body is optional: retry without lines re-checks the stored ones.
	var request mapper.OrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			h.responder.BadRequest(c, err.Error())
			return
		}
	}
	result, err := h.service.RetryOrder(c.Request.Context(), c.Param("number"), mapper.ToLineInputs(request.Lines))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCreationResult(result))
}

func parseFilter(c *gin.Context) (ports.Filter, error) {
	filter := ports.Filter{Number: c.Query("number")}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return ports.Filter{}, err
		}
		filter.Status = status
	}
	if raw := c.Query("from"); raw != "" {
		from, err := parseTime(raw)
		if err != nil {
			return ports.Filter{}, err
		}
		filter.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseTime(raw)
		if err != nil {
			return ports.Filter{}, err
		}
		filter.To = to
	}
	return filter, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrProductNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrCapacityExceeded):
		return sharederrors.ErrCapacity.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrInsufficientStock):
		return sharederrors.ErrInsufficientStock.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
