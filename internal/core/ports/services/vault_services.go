package services

import (
	"context"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// VaultSvcFacade manages the branch cash vault. Dispensing happens inside the
// withdrawal operation on the account service, so the whole withdrawal stays
// one atomic step; this facade covers the manager-facing vault operations.
type VaultSvcFacade interface {
	// GetInventory loads the current vault state.
	GetInventory(ctx context.Context) (*domain.CashInventory, error)

	// Restock sets one denomination's count outright.
	Restock(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error)

	// DepositBills adds bills of one denomination.
	DepositBills(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error)

	// RaiseLowBillAlert records and logs an alert for every denomination
	// currently low. Called after each dispense.
	RaiseLowBillAlert(ctx context.Context, inv *domain.CashInventory) error
}
