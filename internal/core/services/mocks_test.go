package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) NextAccountNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) AddOwner(ctx context.Context, accountNumber int64, userID string) error {
	args := m.Called(ctx, accountNumber, userID)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkPrimary(ctx context.Context, accountNumber int64) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, accountNumber int64, balance decimal.Decimal) error {
	args := m.Called(ctx, accountNumber, balance)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLastTransaction(ctx context.Context, accountNumber int64) (*domain.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountNumber int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal) error {
	args := m.Called(ctx, txn, newBalances)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveWithdrawal(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal, counts domain.BillCounts) error {
	args := m.Called(ctx, txn, newBalances, counts)
	return args.Error(0)
}

func (m *MockLedgerRepository) RemoveTransaction(ctx context.Context, transactionID string, newBalances map[int64]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, newBalances)
	return args.Error(0)
}

// --- Mock VaultRepository ---

type MockVaultRepository struct {
	mock.Mock
}

var _ portsrepo.VaultRepositoryFacade = (*MockVaultRepository)(nil)

func (m *MockVaultRepository) GetInventory(ctx context.Context) (domain.CashInventory, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CashInventory), args.Error(1)
}

func (m *MockVaultRepository) SaveInventory(ctx context.Context, inv domain.CashInventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockVaultRepository) SaveAlert(ctx context.Context, alert domain.LowBillAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock VaultService (as used by the account service) ---

type MockVaultService struct {
	mock.Mock
}

var _ portssvc.VaultSvcFacade = (*MockVaultService)(nil)

func (m *MockVaultService) GetInventory(ctx context.Context) (*domain.CashInventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashInventory), args.Error(1)
}

func (m *MockVaultService) Restock(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error) {
	args := m.Called(ctx, denomination, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashInventory), args.Error(1)
}

func (m *MockVaultService) DepositBills(ctx context.Context, denomination domain.Denomination, count int64) (*domain.CashInventory, error) {
	args := m.Called(ctx, denomination, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashInventory), args.Error(1)
}

func (m *MockVaultService) RaiseLowBillAlert(ctx context.Context, inv *domain.CashInventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
