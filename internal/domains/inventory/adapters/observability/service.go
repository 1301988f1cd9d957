package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	inventorydomain "github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
)

const tracerName = "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   inventoryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Get(ctx context.Context, productID string) (*inventorydomain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Get",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	result, err := s.inner.Get(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load inventory", slog.String("product.id", productID))
	}
	return result, nil
}

func (s *Service) ListByProducts(ctx context.Context, productIDs []string) ([]*inventorydomain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListByProducts",
		trace.WithAttributes(attribute.Int("product.count", len(productIDs))))
	defer span.End()

	result, err := s.inner.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list inventory")
	}
	return result, nil
}

func (s *Service) Seed(ctx context.Context, productID string) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Seed",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	s.logInfo(ctx, "seeding inventory", slog.String("product.id", productID))
	if err := s.inner.Seed(ctx, productID); err != nil {
		return s.handleError(ctx, span, err, "failed to seed inventory", slog.String("product.id", productID))
	}
	return nil
}

func (s *Service) Adjust(ctx context.Context, productID string, delta int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Adjust",
		trace.WithAttributes(attribute.String("product.id", productID), attribute.Int64("delta", delta)))
	defer span.End()

	quantity, err := s.inner.Adjust(ctx, productID, delta)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to adjust inventory",
			slog.String("product.id", productID), slog.Int64("delta", delta))
	}
	s.metrics.recordAdjusted(ctx, delta)
	s.logInfo(ctx, "inventory adjusted",
		slog.String("product.id", productID), slog.Int64("delta", delta), slog.Int64("quantity", quantity))
	return quantity, nil
}

func (s *Service) SetQuantity(ctx context.Context, productID string, quantity int64) (*inventorydomain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.SetQuantity",
		trace.WithAttributes(attribute.String("product.id", productID), attribute.Int64("quantity", quantity)))
	defer span.End()

	s.logInfo(ctx, "restocking inventory", slog.String("product.id", productID), slog.Int64("quantity", quantity))
	result, err := s.inner.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restock inventory", slog.String("product.id", productID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	unitsReserved metric.Int64Counter
	unitsCredited metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	unitsReserved, _ := m.Int64Counter("inventory.service.units_reserved", metric.WithDescription("Units debited from stock"))
	unitsCredited, _ := m.Int64Counter("inventory.service.units_credited", metric.WithDescription("Units credited back to stock"))
	return serviceMetrics{unitsReserved: unitsReserved, unitsCredited: unitsCredited}
}

func (m serviceMetrics) recordAdjusted(ctx context.Context, delta int64) {
	switch {
	case delta < 0 && m.unitsReserved != nil:
		m.unitsReserved.Add(ctx, -delta)
	case delta > 0 && m.unitsCredited != nil:
		m.unitsCredited.Add(ctx, delta)
	}
}

var _ inventoryports.Service = (*Service)(nil)
