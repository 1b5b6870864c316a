package repositories

import (
	"context"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// VaultRepositoryFacade persists the single branch vault and its low-bill
// alerts.
type VaultRepositoryFacade interface {
	// GetInventory loads the current bill counts.
	GetInventory(ctx context.Context) (domain.CashInventory, error)

	// SaveInventory overwrites the bill counts, all denominations in one
	// transaction.
	SaveInventory(ctx context.Context, inv domain.CashInventory) error

	// SaveAlert records a low-bill alert for the bank manager.
	SaveAlert(ctx context.Context, alert domain.LowBillAlert) error
}
