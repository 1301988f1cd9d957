package application

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
)

// Service orchestrates inventory use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stock record for a product.
func (s *Service) Get(ctx context.Context, productID string) (*domain.Record, error) {
	record, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

// ListByProducts returns stock records for the given products; products
// without a record are absent from the result.
func (s *Service) ListByProducts(ctx context.Context, productIDs []string) ([]*domain.Record, error) {
	return s.repo.ListByProducts(ctx, productIDs)
}

// Seed creates the zero-quantity record for a newly created product.
func (s *Service) Seed(ctx context.Context, productID string) error {
	_, err := s.repo.Create(ctx, productID)
	return mapError(err)
}

// Adjust applies a bounded delta atomically and returns the new quantity.
func (s *Service) Adjust(ctx context.Context, productID string, delta int64) (int64, error) {
	quantity, err := s.repo.Adjust(ctx, productID, delta)
	if err != nil {
		return 0, mapError(err)
	}
	return quantity, nil
}

// SetQuantity overwrites the stock level for a restock.
func (s *Service) SetQuantity(ctx context.Context, productID string, quantity int64) (*domain.Record, error) {
	if err := domain.CheckQuantity(quantity); err != nil {
		return nil, mapError(err)
	}
	record, err := s.repo.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

var _ ports.Service = (*Service)(nil)
