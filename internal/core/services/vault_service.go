package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// vaultService manages the branch cash vault and its low-bill alerts.
type vaultService struct {
	vaultRepo portsrepo.VaultRepositoryFacade
}

// NewVaultService creates a new vault service.
func NewVaultService(vaultRepo portsrepo.VaultRepositoryFacade) portssvc.VaultSvcFacade {
	return &vaultService{vaultRepo: vaultRepo}
}

var _ portssvc.VaultSvcFacade = (*vaultService)(nil)

// GetInventory loads the current vault state.
func (s *vaultService) GetInventory(ctx context.Context) (*domain.CashInventory, error) {
	inv, err := s.vaultRepo.GetInventory(ctx)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Restock sets one denomination's count outright, as the bank manager does
// when refilling the vault.
func (s *vaultService) Restock(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.vaultRepo.GetInventory(ctx)
	if err != nil {
		return nil, err
	}
	if err := inv.Restock(denomination, count); err != nil {
		return nil, err
	}
	if err := s.vaultRepo.SaveInventory(ctx, inv); err != nil {
		return nil, err
	}

	logger.Info("Vault restocked",
		slog.Int64("denomination", int64(denomination)),
		slog.Int64("count", count),
	)
	return &inv, nil
}

// DepositBills adds bills of one denomination, as a cash deposit does.
func (s *vaultService) DepositBills(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error) {
	inv, err := s.vaultRepo.GetInventory(ctx)
	if err != nil {
		return nil, err
	}
	if err := inv.AddBills(denomination, count); err != nil {
		return nil, err
	}
	if err := s.vaultRepo.SaveInventory(ctx, inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RaiseLowBillAlert records an alert for every denomination currently low.
// No-op when nothing is low.
func (s *vaultService) RaiseLowBillAlert(ctx context.Context, inv *domain.CashInventory) error {
	low := inv.LowDenominations()
	if len(low) == 0 {
		return nil
	}

	lowInts := make([]int64, len(low))
	for i, d := range low {
		lowInts[i] = int64(d)
	}
	middleware.GetLoggerFromCtx(ctx).Warn("Bill stock low", slog.Any("denominations", lowInts))

	alert := domain.LowBillAlert{
		AlertID:       uuid.NewString(),
		Denominations: low,
		CreatedAt:     time.Now().UTC(),
	}
	return s.vaultRepo.SaveAlert(ctx, alert)
}
