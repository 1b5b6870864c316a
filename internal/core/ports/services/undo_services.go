package services

import (
	"context"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// UndoSvcFacade reverses the most recent ledger entry of an account.
type UndoSvcFacade interface {
	// Undo inspects the tip of the account's ledger and reverses it,
	// dispatching on the entry kind. Transfer reversals locate the
	// counterparty among the user's own accounts. The reversed entry is
	// returned along with the account's post-undo state.
	Undo(ctx context.Context, userID string, accountNumber int64) (*domain.Transaction, *domain.Account, error)
}
