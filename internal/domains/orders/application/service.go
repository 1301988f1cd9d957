package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

const orderSequenceKey = "order"

// Service is the order fulfillment engine. Every operation runs as an
// all-or-nothing unit: inventory debits that cannot be matched by persisted
// state are unwound before the call returns.
type Service struct {
	orders    ports.Repository
	lines     ports.LineRepository
	products  ports.ProductLookup
	stock     ports.StockKeeper
	sequences ports.SequenceCounter
}

// NewService wires the engine with its collaborators.
func NewService(
	orders ports.Repository,
	lines ports.LineRepository,
	products ports.ProductLookup,
	stock ports.StockKeeper,
	sequences ports.SequenceCounter,
) *Service {
	return &Service{
		orders:    orders,
		lines:     lines,
		products:  products,
		stock:     stock,
		sequences: sequences,
	}
}

// CreateOrder resolves the requested lines, checks availability, and either
// reserves stock for a PLACED order or records an UNFULFILLABLE order without
// touching inventory. Both outcomes persist the full requested line set.
func (s *Service) CreateOrder(ctx context.Context, inputs []ports.LineInput) (*ports.CreationResult, error) {
	lines, err := s.resolveLines(ctx, inputs)
	if err != nil {
		return nil, err
	}
	number, err := s.mintOrderNumber(ctx)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(uuid.NewString(), number, lines)
	if err != nil {
		return nil, mapError(err)
	}

	unfulfillable, err := s.checkAvailability(ctx, order.Lines)
	if err != nil {
		return nil, err
	}
	reserved := false
	if len(unfulfillable) == 0 {
		if err := s.reserveLines(ctx, order.Lines); err != nil {
			if !errors.Is(err, ports.ErrInsufficientStock) {
				return nil, err
			}
			// Lost the race to a concurrent reservation; record the order
			// as unfulfillable instead of failing the call.
			unfulfillable, err = s.checkAvailability(ctx, order.Lines)
			if err != nil {
				return nil, err
			}
			if len(unfulfillable) == 0 {
				unfulfillable = s.raceShortfall(ctx, order.Lines)
			}
		} else {
			reserved = true
		}
	}

	next := domain.StatusUnfulfillable
	if reserved {
		next = domain.StatusPlaced
	}
	if err := order.Transition(next); err != nil {
		return nil, s.abandon(ctx, order.Lines, reserved, mapError(err))
	}
	if _, err := s.lines.AddBatch(ctx, order.Lines); err != nil {
		return nil, s.abandon(ctx, order.Lines, reserved, err)
	}
	if _, err := s.orders.Create(ctx, order); err != nil {
		_ = s.lines.DeleteByOrder(ctx, order.Number)
		return nil, s.abandon(ctx, order.Lines, reserved, err)
	}

	return &ports.CreationResult{
		OrderNumber:        order.Number,
		Fulfillable:        reserved,
		UnfulfillableItems: unfulfillable,
	}, nil
}

// GetOrder returns the order header with its lines attached.
func (s *Service) GetOrder(ctx context.Context, number string) (*domain.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.ListByOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// GetOrderLines returns the current line set of an order.
func (s *Service) GetOrderLines(ctx context.Context, number string) ([]domain.Line, error) {
	if _, err := s.orders.GetByNumber(ctx, number); err != nil {
		return nil, err
	}
	return s.lines.ListByOrder(ctx, number)
}

// ListOrders returns order headers matching the filter.
func (s *Service) ListOrders(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// CancelOrder withdraws an order. Stock is credited back only for PLACED
// orders; UNFULFILLABLE orders never debited any. Cancelling a CANCELLED
// order is an idempotent no-op.
func (s *Service) CancelOrder(ctx context.Context, number string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case domain.StatusInvoiced:
		return nil, fmt.Errorf("%w: order %s is already invoiced and cannot be cancelled", ErrConflict, number)
	case domain.StatusCancelled:
		return order, nil
	}
	if order.Status == domain.StatusPlaced {
		if err := s.creditLines(ctx, order.Lines); err != nil {
			return nil, err
		}
	}
	if err := order.Transition(domain.StatusCancelled); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	updated.Lines = order.Lines
	return updated, nil
}

// UpdateOrder replaces the line set of a PLACED order. The whole new set is
// validated against stock (counting the units the old lines would return)
// before anything mutates; on failure the call leaves no trace.
func (s *Service) UpdateOrder(ctx context.Context, number string, inputs []ports.LineInput) (*domain.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPlaced {
		return nil, fmt.Errorf("%w: only PLACED orders can be edited, current status is %s", ErrConflict, order.Status)
	}
	newLines, err := s.resolveLines(ctx, inputs)
	if err != nil {
		return nil, err
	}
	existing, err := s.lines.ListByOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := s.checkReplacement(ctx, existing, newLines); err != nil {
		return nil, err
	}

	if err := s.creditLines(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.reserveLines(ctx, newLines); err != nil {
		// A concurrent reservation grabbed the returned units between the
		// credit and the debit. Put the old reservation back and fail.
		restoreErr := s.reserveLines(ctx, existing)
		return nil, errors.Join(err, restoreErr)
	}
	// restoreStock returns the new reservation and re-holds the old one so a
	// failed step past this point leaves inventory as the call found it.
	restoreStock := func(err error) error {
		if unwindErr := s.creditLines(ctx, newLines); unwindErr != nil {
			return errors.Join(err, unwindErr)
		}
		if unwindErr := s.reserveLines(ctx, existing); unwindErr != nil {
			return errors.Join(err, unwindErr)
		}
		return err
	}

	order.ReplaceLines(newLines)
	if err := s.lines.DeleteByOrder(ctx, number); err != nil {
		return nil, restoreStock(err)
	}
	if _, err := s.lines.AddBatch(ctx, order.Lines); err != nil {
		if _, addErr := s.lines.AddBatch(ctx, existing); addErr != nil {
			err = errors.Join(err, addErr)
		}
		return nil, restoreStock(err)
	}

	if err := order.Transition(domain.StatusPlaced); err != nil {
		return nil, restoreStock(s.restoreLines(ctx, number, existing, mapError(err)))
	}
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, restoreStock(s.restoreLines(ctx, number, existing, err))
	}
	updated.Lines = order.Lines
	return updated, nil
}

// RetryOrder re-runs the availability check for an UNFULFILLABLE order,
// optionally against a replacement line set. A satisfiable retry reserves
// stock and places the order; otherwise the order stays UNFULFILLABLE and the
// fresh shortfall details are returned.
func (s *Service) RetryOrder(ctx context.Context, number string, inputs []ports.LineInput) (*ports.CreationResult, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusUnfulfillable {
		return nil, fmt.Errorf("%w: only UNFULFILLABLE orders can be retried, current status is %s", ErrConflict, order.Status)
	}

	existing, err := s.lines.ListByOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	replacing := len(inputs) > 0
	candidate := existing
	if replacing {
		candidate, err = s.resolveLines(ctx, inputs)
		if err != nil {
			return nil, err
		}
	}

	unfulfillable, err := s.checkAvailability(ctx, candidate)
	if err != nil {
		return nil, err
	}
	reserved := false
	if len(unfulfillable) == 0 {
		if err := s.reserveLines(ctx, candidate); err != nil {
			if !errors.Is(err, ports.ErrInsufficientStock) {
				return nil, err
			}
			unfulfillable, err = s.checkAvailability(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if len(unfulfillable) == 0 {
				unfulfillable = s.raceShortfall(ctx, candidate)
			}
		} else {
			reserved = true
		}
	}

	if replacing {
		if err := s.lines.DeleteByOrder(ctx, number); err != nil {
			return nil, s.abandon(ctx, candidate, reserved, err)
		}
		for i := range candidate {
			candidate[i].OrderNumber = number
		}
		if _, err := s.lines.AddBatch(ctx, candidate); err != nil {
			if _, addErr := s.lines.AddBatch(ctx, existing); addErr != nil {
				err = errors.Join(err, addErr)
			}
			return nil, s.abandon(ctx, candidate, reserved, err)
		}
	}
	order.ReplaceLines(candidate)

	next := domain.StatusUnfulfillable
	if reserved {
		next = domain.StatusPlaced
	}
	if err := order.Transition(next); err != nil {
		err = mapError(err)
		if replacing {
			err = s.restoreLines(ctx, number, existing, err)
		}
		return nil, s.abandon(ctx, candidate, reserved, err)
	}
	if _, err := s.orders.Update(ctx, order); err != nil {
		if replacing {
			err = s.restoreLines(ctx, number, existing, err)
		}
		return nil, s.abandon(ctx, candidate, reserved, err)
	}

	return &ports.CreationResult{
		OrderNumber:        order.Number,
		Fulfillable:        reserved,
		UnfulfillableItems: unfulfillable,
	}, nil
}

// MarkInvoiced transitions a PLACED order to INVOICED on behalf of billing.
func (s *Service) MarkInvoiced(ctx context.Context, number string) (*domain.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := order.Transition(domain.StatusInvoiced); err != nil {
		return nil, mapError(err)
	}
	return s.orders.Update(ctx, order)
}

func (s *Service) mintOrderNumber(ctx context.Context) (string, error) {
	value, err := s.sequences.Next(ctx, orderSequenceKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%06d", value), nil
}

// resolveLines validates the inputs, resolves every product, and builds the
// line set with captured barcode/name and derived line totals.
func (s *Service) resolveLines(ctx context.Context, inputs []ports.LineInput) ([]domain.Line, error) {
	if len(inputs) == 0 {
		return nil, mapError(domain.ErrEmptyLines)
	}
	lines := make([]domain.Line, 0, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		line, err := domain.NewLine(input.ProductID, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, mapError(err)
		}
		line.ID = uuid.NewString()
		lines = append(lines, *line)
		ids = append(ids, input.ProductID)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		product, ok := products[lines[i].ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ports.ErrProductNotFound, lines[i].ProductID)
		}
		lines[i].Capture(product.Barcode, product.Name)
	}
	return lines, nil
}

// checkAvailability classifies each line against current stock. Lines for
// the same product consume from a shared remainder, so a set that passes
// here can be reserved without overdrawing.
func (s *Service) checkAvailability(ctx context.Context, lines []domain.Line) ([]domain.UnfulfillableItem, error) {
	remaining, err := s.stock.Quantities(ctx, productIDs(lines))
	if err != nil {
		return nil, err
	}
	var unfulfillable []domain.UnfulfillableItem
	for i := range lines {
		available := remaining[lines[i].ProductID]
		if lines[i].Quantity > available {
			reason := domain.ReasonInsufficientQuantity
			if available == 0 {
				reason = domain.ReasonOutOfStock
			}
			unfulfillable = append(unfulfillable, domain.UnfulfillableItem{
				Barcode:     lines[i].Barcode,
				ProductName: lines[i].ProductName,
				Requested:   lines[i].Quantity,
				Available:   available,
				Reason:      reason,
			})
			continue
		}
		remaining[lines[i].ProductID] = available - lines[i].Quantity
	}
	return unfulfillable, nil
}

// checkReplacement verifies the new line set fits within current stock plus
// the units the existing lines would return, without mutating anything.
func (s *Service) checkReplacement(ctx context.Context, existing, newLines []domain.Line) error {
	ids := productIDs(existing)
	ids = append(ids, productIDs(newLines)...)
	available, err := s.stock.Quantities(ctx, ids)
	if err != nil {
		return err
	}
	for i := range existing {
		available[existing[i].ProductID] += existing[i].Quantity
	}
	for i := range newLines {
		productID := newLines[i].ProductID
		if newLines[i].Quantity > available[productID] {
			return fmt.Errorf("%w: product %s has %d available, %d requested",
				ports.ErrInsufficientStock, productID, available[productID], newLines[i].Quantity)
		}
		available[productID] -= newLines[i].Quantity
	}
	return nil
}

// reserveLines debits stock per line via the conditional adjustment. On any
// failure the debits already made are credited back before returning.
func (s *Service) reserveLines(ctx context.Context, lines []domain.Line) error {
	for i := range lines {
		if _, err := s.stock.Adjust(ctx, lines[i].ProductID, -lines[i].Quantity); err != nil {
			unwindErr := s.creditLines(ctx, lines[:i])
			if unwindErr != nil {
				return errors.Join(err, unwindErr)
			}
			return err
		}
	}
	return nil
}

// creditLines returns stock per line. On any failure the credits already
// made are debited back so the call has no partial effect.
func (s *Service) creditLines(ctx context.Context, lines []domain.Line) error {
	for i := range lines {
		if _, err := s.stock.Adjust(ctx, lines[i].ProductID, lines[i].Quantity); err != nil {
			var unwindErr error
			for j := 0; j < i; j++ {
				if _, derr := s.stock.Adjust(ctx, lines[j].ProductID, -lines[j].Quantity); derr != nil {
					unwindErr = errors.Join(unwindErr, derr)
				}
			}
			return errors.Join(err, unwindErr)
		}
	}
	return nil
}

// restoreLines puts the previously persisted line set back after a failed
// replacement, so the stored lines keep matching the stored header.
func (s *Service) restoreLines(ctx context.Context, number string, original []domain.Line, err error) error {
	if delErr := s.lines.DeleteByOrder(ctx, number); delErr != nil {
		return errors.Join(err, delErr)
	}
	if _, addErr := s.lines.AddBatch(ctx, original); addErr != nil {
		return errors.Join(err, addErr)
	}
	return err
}

// raceShortfall reports the lines that lost a reservation race when the
// re-run availability check no longer shows a shortfall.
func (s *Service) raceShortfall(ctx context.Context, lines []domain.Line) []domain.UnfulfillableItem {
	quantities, err := s.stock.Quantities(ctx, productIDs(lines))
	if err != nil {
		quantities = map[string]int64{}
	}
	items := make([]domain.UnfulfillableItem, 0, len(lines))
	for i := range lines {
		available := quantities[lines[i].ProductID]
		reason := domain.ReasonInsufficientQuantity
		if available == 0 {
			reason = domain.ReasonOutOfStock
		}
		items = append(items, domain.UnfulfillableItem{
			Barcode:     lines[i].Barcode,
			ProductName: lines[i].ProductName,
			Requested:   lines[i].Quantity,
			Available:   available,
			Reason:      reason,
		})
	}
	return items
}

// abandon releases any reservation held for lines and wraps the original
// failure, so a failed persistence step leaves inventory untouched.
func (s *Service) abandon(ctx context.Context, lines []domain.Line, reserved bool, err error) error {
	if !reserved {
		return err
	}
	if unwindErr := s.creditLines(ctx, lines); unwindErr != nil {
		return errors.Join(err, unwindErr)
	}
	return err
}

func productIDs(lines []domain.Line) []string {
	ids := make([]string, 0, len(lines))
	for i := range lines {
		ids = append(ids, lines[i].ProductID)
	}
	return ids
}

var _ ports.Service = (*Service)(nil)
var _ ports.StatusWriter = (*Service)(nil)
