package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/observability/service"

// Service decorates the fulfillment engine with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	status  ordersports.StatusWriter
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

// New wraps the core engine. The inner service must also satisfy StatusWriter
// so billing keeps going through the decorated surface.
func New(inner ordersports.Service, status ordersports.StatusWriter, opts ...Option) *Service {
	s := &Service{
		inner:   inner,
		status:  status,
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

func (s *Service) CreateOrder(ctx context.Context, lines []ordersports.LineInput) (*ordersports.CreationResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int("order.lines", len(lines))))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(
		attribute.String("order.number", result.OrderNumber),
		attribute.Bool("order.fulfillable", result.Fulfillable),
	)
	s.metrics.recordPlaced(ctx, result.Fulfillable)
	s.logInfo(ctx, "order created",
		slog.String("order.number", result.OrderNumber),
		slog.Bool("order.fulfillable", result.Fulfillable),
		slog.Int("order.unfulfillable_items", len(result.UnfulfillableItems)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, number string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, number)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.number", number))
	}
	return order, nil
}

func (s *Service) GetOrderLines(ctx context.Context, number string) ([]ordersdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderLines",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	lines, err := s.inner.GetOrderLines(ctx, number)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order lines", slog.String("order.number", number))
	}
	return lines, nil
}

func (s *Service) ListOrders(ctx context.Context, filter ordersports.Filter) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) CancelOrder(ctx context.Context, number string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := s.inner.CancelOrder(ctx, number)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.number", number))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.String("order.number", number))
	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, number string, lines []ordersports.LineInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder",
		trace.WithAttributes(attribute.String("order.number", number), attribute.Int("order.lines", len(lines))))
	defer span.End()

	order, err := s.inner.UpdateOrder(ctx, number, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.number", number))
	}
	s.logInfo(ctx, "order updated", slog.String("order.number", number))
	return order, nil
}

func (s *Service) RetryOrder(ctx context.Context, number string, lines []ordersports.LineInput) (*ordersports.CreationResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.RetryOrder",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	result, err := s.inner.RetryOrder(ctx, number, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to retry order", slog.String("order.number", number))
	}
	span.SetAttributes(attribute.Bool("order.fulfillable", result.Fulfillable))
	s.logInfo(ctx, "order retried",
		slog.String("order.number", number), slog.Bool("order.fulfillable", result.Fulfillable))
	return result, nil
}

func (s *Service) MarkInvoiced(ctx context.Context, number string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.MarkInvoiced",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := s.status.MarkInvoiced(ctx, number)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order invoiced", slog.String("order.number", number))
	}
	s.logInfo(ctx, "order invoiced", slog.String("order.number", number))
	return order, nil
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
	ordersPlaced        metric.Int64Counter
	ordersUnfulfillable metric.Int64Counter
	ordersCancelled     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Orders created with all lines reserved"))
	unfulfillable, _ := m.Int64Counter("orders.service.unfulfillable", metric.WithDescription("Orders created without stock"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Orders cancelled"))
	return serviceMetrics{ordersPlaced: placed, ordersUnfulfillable: unfulfillable, ordersCancelled: cancelled}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, fulfillable bool) {
	if fulfillable {
		if m.ordersPlaced != nil {
			m.ordersPlaced.Add(ctx, 1)
		}
		return
	}
	if m.ordersUnfulfillable != nil {
		m.ordersUnfulfillable.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

var (
	_ ordersports.Service      = (*Service)(nil)
	_ ordersports.StatusWriter = (*Service)(nil)
)
