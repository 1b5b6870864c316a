package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/dto"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// accountService provides core account and money-movement operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	vaultRepo   portsrepo.VaultRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	vaultSvc    portssvc.VaultSvcFacade
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	vaultRepo portsrepo.VaultRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	vaultSvc portssvc.VaultSvcFacade,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		vaultRepo:   vaultRepo,
		userRepo:    userRepo,
		vaultSvc:    vaultSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account for the user. Account numbers come from a
// monotonically increasing sequence; the user's first chequing account is
// marked as their primary deposit target.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	accountNumber, err := s.accountRepo.NextAccountNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve account number: %w", err)
	}

	account := domain.Account{
		AccountNumber: accountNumber,
		Category:      req.Category,
		Balance:       decimal.Zero,
		OwnerIDs:      []string{userID},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	if err := s.ensurePrimaryAccount(ctx, userID, &account); err != nil {
		return nil, err
	}

	logger.Info("Account created",
		slog.Int64("account_number", account.AccountNumber),
		slog.String("category", string(account.Category)),
		slog.String("user_id", userID),
	)
	return &account, nil
}

// ensurePrimaryAccount marks the user's first chequing account primary when
// none of their accounts is.
func (s *accountService) ensurePrimaryAccount(ctx context.Context, userID string, created *domain.Account) error {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].Primary {
			return nil
		}
	}
	for i := range accounts {
		if accounts[i].Category == domain.Chequing {
			if err := s.accountRepo.MarkPrimary(ctx, accounts[i].AccountNumber); err != nil {
				return err
			}
			if created.AccountNumber == accounts[i].AccountNumber {
				created.Primary = true
			}
			return nil
		}
	}
	return nil
}

// AddOwner attaches a second owner, making the account joint. At most two
// owners may share an account.
func (s *accountService) AddOwner(ctx context.Context, accountNumber int64, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.IsJoint || len(account.OwnerIDs) >= 2 {
		return nil, apperrors.ErrJointLimitExceeded
	}
	if account.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: user %s already owns account %d", apperrors.ErrDuplicate, userID, accountNumber)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.AddOwner(ctx, accountNumber, userID); err != nil {
		return nil, err
	}
	account.OwnerIDs = append(account.OwnerIDs, userID)
	account.IsJoint = true

	logger.Info("Account is now joint", slog.Int64("account_number", accountNumber), slog.String("added_user_id", userID))
	return account, nil
}

// GetAccount retrieves one account.
func (s *accountService) GetAccount(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// Deposit credits the account. No ledger entry is written: deposits cannot be
// undone.
func (s *accountService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err := account.AddMoney(amount); err != nil {
		return nil, err
	}
	if err := s.accountRepo.UpdateBalance(ctx, accountNumber, account.Balance); err != nil {
		return nil, err
	}
	return account, nil
}

// DepositToPrimary credits the user's primary chequing account.
func (s *accountService) DepositToPrimary(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Primary {
			return s.Deposit(ctx, accounts[i].AccountNumber, amount)
		}
	}
	return nil, fmt.Errorf("%w: user %s has no primary chequing account", apperrors.ErrNotFound, userID)
}

// Withdraw debits the account and dispenses bills from the vault. The request
// fails whole: either the balance, the ledger and the vault all move, or
// nothing does.
func (s *accountService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*domain.Account, domain.BillCounts, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) || !amount.Mod(decimal.NewFromInt(int64(domain.Five))).IsZero() {
		return nil, nil, fmt.Errorf("%w: withdrawal amount %s is not a positive multiple of 5", apperrors.ErrUnsatisfiableDenomination, amount)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, nil, err
	}
	inventory, err := s.vaultRepo.GetInventory(ctx)
	if err != nil {
		return nil, nil, err
	}

	if inventory.TotalValue().LessThan(amount) {
		return nil, nil, apperrors.ErrInsufficientCash
	}
	if !account.CheckFundsSufficient(amount) {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	bills, err := inventory.Dispense(amount)
	if err != nil {
		return nil, nil, err
	}
	if err := account.RemoveMoney(amount); err != nil {
		return nil, nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountNumber: accountNumber,
		Kind:          domain.KindWithdraw,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	newBalances := map[int64]decimal.Decimal{accountNumber: account.Balance}
	if err := s.ledgerRepo.SaveWithdrawal(ctx, txn, newBalances, inventory.Counts); err != nil {
		return nil, nil, err
	}

	logger.Info("Withdrawal dispensed",
		slog.Int64("account_number", accountNumber),
		slog.String("amount", amount.String()),
	)
	if err := s.vaultSvc.RaiseLowBillAlert(ctx, &inventory); err != nil {
		// The withdrawal itself committed; a failed alert must not undo it.
		logger.Error("Failed to raise low bill alert", slog.String("error", err.Error()))
	}
	return account, bills, nil
}

// TransferIn moves amount from the counterparty into this account and records
// a TransferIn entry on this account's ledger.
func (s *accountService) TransferIn(ctx context.Context, accountNumber, fromAccountNumber int64, amount decimal.Decimal) (*domain.Account, error) {
	return s.transfer(ctx, accountNumber, fromAccountNumber, amount, domain.KindTransferIn)
}

// TransferOut moves amount from this account into the counterparty and
// records a TransferOut entry on this account's ledger.
func (s *accountService) TransferOut(ctx context.Context, accountNumber, toAccountNumber int64, amount decimal.Decimal) (*domain.Account, error) {
	return s.transfer(ctx, accountNumber, toAccountNumber, amount, domain.KindTransferOut)
}

// transfer carries both directions: the ledger entry always lands on the
// account that initiated the operation, recording the other leg's number.
func (s *accountService) transfer(ctx context.Context, accountNumber, counterpartyNumber int64, amount decimal.Decimal, kind domain.TransactionKind) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountNumber == counterpartyNumber {
		return nil, fmt.Errorf("%w: cannot transfer between an account and itself", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, []int64{accountNumber, counterpartyNumber})
	if err != nil {
		return nil, err
	}
	account, ok := accounts[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountNumber)
	}
	counterparty, ok := accounts[counterpartyNumber]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, counterpartyNumber)
	}

	var source, dest *domain.Account
	if kind == domain.KindTransferIn {
		source, dest = &counterparty, &account
	} else {
		source, dest = &account, &counterparty
		if !source.CanTransferOut() {
			return nil, fmt.Errorf("%w: %s accounts cannot be a transfer source", apperrors.ErrUnsupportedOperation, source.Category)
		}
	}

	if !source.CheckFundsSufficient(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}
	if err := dest.AddMoney(amount); err != nil {
		return nil, err
	}
	if err := source.RemoveMoney(amount); err != nil {
		return nil, err
	}

	counterpartyRef := counterpartyNumber
	txn := domain.Transaction{
		TransactionID:             uuid.NewString(),
		AccountNumber:             accountNumber,
		Kind:                      kind,
		Amount:                    amount,
		CounterpartyAccountNumber: &counterpartyRef,
		CreatedAt:                 time.Now().UTC(),
	}
	newBalances := map[int64]decimal.Decimal{
		accountNumber:      account.Balance,
		counterpartyNumber: counterparty.Balance,
	}
	if err := s.ledgerRepo.SaveTransaction(ctx, txn, newBalances); err != nil {
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("kind", string(kind)),
		slog.Int64("account_number", accountNumber),
		slog.Int64("counterparty_account_number", counterpartyNumber),
		slog.String("amount", amount.String()),
	)
	return &account, nil
}

// PayBill debits the account in favour of an external payee.
func (s *accountService) PayBill(ctx context.Context, accountNumber int64, amount decimal.Decimal, payee string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if payee == "" {
		return nil, fmt.Errorf("%w: payee is required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if !account.CanPayBill() {
		return nil, fmt.Errorf("%w: %s accounts cannot pay bills", apperrors.ErrUnsupportedOperation, account.Category)
	}
	if !account.CheckFundsSufficient(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}
	if err := account.RemoveMoney(amount); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountNumber: accountNumber,
		Kind:          domain.KindPayBill,
		Amount:        amount,
		Payee:         payee,
		CreatedAt:     time.Now().UTC(),
	}
	newBalances := map[int64]decimal.Decimal{accountNumber: account.Balance}
	if err := s.ledgerRepo.SaveTransaction(ctx, txn, newBalances); err != nil {
		return nil, err
	}

	logger.Info("Bill paid",
		slog.Int64("account_number", accountNumber),
		slog.String("payee", payee),
		slog.String("amount", amount.String()),
	)
	return account, nil
}

// ApplyMonthlyInterest applies the monthly savings rate. Driven by the
// month-end scheduler, not by customers.
func (s *accountService) ApplyMonthlyInterest(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.Category != domain.Savings {
		return nil, fmt.Errorf("%w: only savings accounts accrue interest", apperrors.ErrUnsupportedOperation)
	}
	account.Balance = account.Balance.Mul(domain.MonthlySavingsInterestRate)
	if err := s.accountRepo.UpdateBalance(ctx, accountNumber, account.Balance); err != nil {
		return nil, err
	}
	return account, nil
}

// ListTransactions retrieves an account's ledger in commit order.
func (s *accountService) ListTransactions(ctx context.Context, accountNumber int64) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListTransactionsByAccount(ctx, accountNumber)
}

// GetLastTransaction retrieves the tip of an account's ledger.
func (s *accountService) GetLastTransaction(ctx context.Context, accountNumber int64) (*domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	txn, err := s.ledgerRepo.FindLastTransaction(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %d has no transactions", apperrors.ErrNotFound, accountNumber)
		}
		return nil, err
	}
	return txn, nil
}
