// Package http exposes the daily sales report over gin.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
	sharederrors "github.com/Apurer/go-pos-api-server/internal/shared/errors"
)

// DailySales is the transport-layer aggregated row.
type DailySales struct {
	Date                string   `json:"date"`
	ClientID            string   `json:"clientId"`
	InvoicedOrdersCount int64    `json:"invoicedOrdersCount"`
	InvoicedItemsCount  int64    `json:"invoicedItemsCount"`
	TotalRevenue        float64  `json:"totalRevenue"`
	OrderNumbers        []string `json:"orderNumbers,omitempty"`
}

// Handler serves the reporting endpoints.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler wires the reporting HTTP surface.
func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service, responder: sharederrors.DefaultResponder}
}

// Register mounts the reporting routes on the given router group.
func (h *Handler) Register(router gin.IRouter) {
	reports := router.Group("/reports/daily-sales")
	reports.GET("", h.queryRange)
	reports.POST("/aggregate", h.aggregate)
}

func (h *Handler) queryRange(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		h.responder.BadRequest(c, "from must be a YYYY-MM-DD date")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		h.responder.BadRequest(c, "to must be a YYYY-MM-DD date")
		return
	}
	rows, err := h.service.QueryRange(c.Request.Context(), from, to)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainRows(rows))
}

func (h *Handler) aggregate(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil || date.IsZero() {
		h.responder.BadRequest(c, "date must be a YYYY-MM-DD date")
		return
	}
	rows, err := h.service.AggregateForDate(c.Request.Context(), date)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainRows(rows))
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func fromDomainRows(rows []*domain.DailySales) []DailySales {
	list := make([]DailySales, 0, len(rows))
	for _, row := range rows {
		list = append(list, DailySales{
			Date:                row.Date.Format("2006-01-02"),
			ClientID:            row.ClientID,
			InvoicedOrdersCount: row.InvoicedOrdersCount,
			InvoicedItemsCount:  row.InvoicedItemsCount,
			TotalRevenue:        row.TotalRevenue,
			OrderNumbers:        row.OrderNumbers,
		})
	}
	return list
}
