package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrConflict signals the product clashes with existing catalog state.
	ErrConflict = errors.New("product conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyBarcode) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidMRP) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateBarcode) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
