package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
)

func TestRaceErrorClassifiesByDirection(t *testing.T) {
	require.ErrorIs(t, raceError(-3), domain.ErrInsufficientStock)
	require.ErrorIs(t, raceError(5), domain.ErrCapacityExceeded)
}
