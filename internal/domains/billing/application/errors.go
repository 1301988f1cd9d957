package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid invoice input")
	// ErrConflict signals the order cannot be invoiced in its current state.
	ErrConflict = errors.New("invoice conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrderNumber) || errors.Is(err, domain.ErrInvalidAmount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateInvoice) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
