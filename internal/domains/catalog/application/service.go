package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo   ports.Repository
	seeder ports.InventorySeeder
}

// NewService wires the catalog service. The seeder may be nil in read-only setups.
func NewService(repo ports.Repository, seeder ports.InventorySeeder) *Service {
	return &Service{repo: repo, seeder: seeder}
}

// CreateProduct persists a new product and seeds its inventory record at zero.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if existing, err := s.repo.GetByBarcode(ctx, product.Barcode); err == nil && existing != nil {
		return nil, mapError(ports.ErrDuplicateBarcode)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	if s.seeder != nil {
		if err := s.seeder.Seed(ctx, saved.ID); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// GetByID loads a single product.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// GetByBarcode loads a product by its scanned barcode.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	product, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// ListByIDs resolves a batch of product ids; missing ids are simply absent.
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
var _ ports.Lookup = (*Service)(nil)
