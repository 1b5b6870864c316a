package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// undoService reverses the most recent ledger entry of an account. Only the
// tip of a ledger can ever be undone; there is no redo.
type undoService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewUndoService creates a new undo service.
func NewUndoService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.UndoSvcFacade {
	return &undoService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.UndoSvcFacade = (*undoService)(nil)

// Undo reverses the last entry on the account's ledger. Reversal applies the
// inverse of the recorded delta without re-validating category floors: the
// delta was validated when first applied, and intervening operations are the
// caller's accepted trade-off. Cash dispensed by a withdrawal is not returned
// to the vault; the bills already left the drawer.
func (s *undoService) Undo(ctx context.Context, userID string, accountNumber int64) (*domain.Transaction, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, nil, err
	}
	if !account.OwnedBy(userID) {
		return nil, nil, fmt.Errorf("%w: user %s does not own account %d", apperrors.ErrForbidden, userID, accountNumber)
	}

	last, err := s.ledgerRepo.FindLastTransaction(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNothingToUndo
		}
		return nil, nil, err
	}

	newBalances := map[int64]decimal.Decimal{}
	switch last.Kind {
	case domain.KindWithdraw, domain.KindPayBill:
		account.ApplyCredit(last.Amount)
		newBalances[accountNumber] = account.Balance

	case domain.KindTransferIn, domain.KindTransferOut:
		counterparty, err := s.findCounterparty(ctx, userID, last)
		if err != nil {
			return nil, nil, err
		}
		if last.Kind == domain.KindTransferIn {
			account.ApplyDebit(last.Amount)
			counterparty.ApplyCredit(last.Amount)
		} else {
			account.ApplyCredit(last.Amount)
			counterparty.ApplyDebit(last.Amount)
		}
		newBalances[accountNumber] = account.Balance
		newBalances[counterparty.AccountNumber] = counterparty.Balance

	default:
		return nil, nil, fmt.Errorf("%w: cannot undo transaction of kind %q", apperrors.ErrValidation, last.Kind)
	}

	if err := s.ledgerRepo.RemoveTransaction(ctx, last.TransactionID, newBalances); err != nil {
		return nil, nil, err
	}

	logger.Info("Transaction undone",
		slog.Int64("account_number", accountNumber),
		slog.String("kind", string(last.Kind)),
		slog.String("amount", last.Amount.String()),
	)
	return last, account, nil
}

// findCounterparty locates the other leg of a transfer among the user's own
// accounts.
func (s *undoService) findCounterparty(ctx context.Context, userID string, txn *domain.Transaction) (*domain.Account, error) {
	if txn.CounterpartyAccountNumber == nil {
		return nil, apperrors.ErrCounterpartyNotFound
	}
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].AccountNumber == *txn.CounterpartyAccountNumber {
			return &accounts[i], nil
		}
	}
	return nil, apperrors.ErrCounterpartyNotFound
}
