package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/core/services"
	"github.com/mapleridge/teller_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockVaultRepo   *MockVaultRepository
	mockUserRepo    *MockUserRepository
	mockVaultSvc    *MockVaultService
	service         portssvc.AccountSvcFacade

	userID   string
	chequing domain.Account
	savings  domain.Account
	card     domain.Account
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockVaultRepo = new(MockVaultRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockVaultSvc = new(MockVaultService)
	s.service = services.NewAccountService(
		s.mockAccountRepo,
		s.mockLedgerRepo,
		s.mockVaultRepo,
		s.mockUserRepo,
		s.mockVaultSvc,
	)

	s.userID = "user-1"
	s.chequing = domain.Account{
		AccountNumber: 1000,
		Category:      domain.Chequing,
		Balance:       decimal.NewFromInt(500),
		Primary:       true,
		OwnerIDs:      []string{s.userID},
	}
	s.savings = domain.Account{
		AccountNumber: 1001,
		Category:      domain.Savings,
		Balance:       decimal.NewFromInt(100),
		OwnerIDs:      []string{s.userID},
	}
	s.card = domain.Account{
		AccountNumber: 1002,
		Category:      domain.CreditCard,
		Balance:       decimal.NewFromInt(500),
		OwnerIDs:      []string{s.userID},
	}
}

func balancesMatch(expected map[int64]decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got map[int64]decimal.Decimal) bool {
		if len(got) != len(expected) {
			return false
		}
		for number, want := range expected {
			if have, ok := got[number]; !ok || !have.Equal(want) {
				return false
			}
		}
		return true
	})
}

func (s *AccountServiceTestSuite) TestCreateAccountFirstChequingBecomesPrimary() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Category: domain.Chequing}

	s.mockUserRepo.On("FindUserByID", ctx, s.userID).Return(&domain.User{UserID: s.userID}, nil).Once()
	s.mockAccountRepo.On("NextAccountNumber", ctx).Return(int64(1000), nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	saved := domain.Account{AccountNumber: 1000, Category: domain.Chequing, OwnerIDs: []string{s.userID}}
	s.mockAccountRepo.On("ListAccountsByOwner", ctx, s.userID).Return([]domain.Account{saved}, nil).Once()
	s.mockAccountRepo.On("MarkPrimary", ctx, int64(1000)).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, s.userID, req)

	s.Require().NoError(err)
	s.Equal(int64(1000), account.AccountNumber)
	s.True(account.Primary)
	s.True(account.Balance.IsZero())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccountKeepsExistingPrimary() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Category: domain.Chequing}

	s.mockUserRepo.On("FindUserByID", ctx, s.userID).Return(&domain.User{UserID: s.userID}, nil).Once()
	s.mockAccountRepo.On("NextAccountNumber", ctx).Return(int64(1003), nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	created := domain.Account{AccountNumber: 1003, Category: domain.Chequing, OwnerIDs: []string{s.userID}}
	s.mockAccountRepo.On("ListAccountsByOwner", ctx, s.userID).Return([]domain.Account{s.chequing, created}, nil).Once()

	account, err := s.service.CreateAccount(ctx, s.userID, req)

	s.Require().NoError(err)
	s.False(account.Primary)
	s.mockAccountRepo.AssertNotCalled(s.T(), "MarkPrimary", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccountRejectsUnknownCategory() {
	ctx := context.Background()

	_, err := s.service.CreateAccount(ctx, s.userID, dto.CreateAccountRequest{Category: "MORTGAGE"})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "NextAccountNumber", mock.Anything)
}

func (s *AccountServiceTestSuite) TestAddOwnerMakesAccountJoint() {
	ctx := context.Background()
	other := "user-2"

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, other).Return(&domain.User{UserID: other}, nil).Once()
	s.mockAccountRepo.On("AddOwner", ctx, int64(1000), other).Return(nil).Once()

	account, err := s.service.AddOwner(ctx, 1000, other)

	s.Require().NoError(err)
	s.True(account.IsJoint)
	s.ElementsMatch([]string{s.userID, other}, account.OwnerIDs)
}

func (s *AccountServiceTestSuite) TestAddOwnerRejectsThirdOwner() {
	ctx := context.Background()
	joint := s.chequing
	joint.IsJoint = true
	joint.OwnerIDs = []string{s.userID, "user-2"}

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&joint, nil).Once()

	_, err := s.service.AddOwner(ctx, 1000, "user-3")

	s.ErrorIs(err, apperrors.ErrJointLimitExceeded)
	s.mockAccountRepo.AssertNotCalled(s.T(), "AddOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDepositCreditsWithoutLedgerEntry() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockAccountRepo.On("UpdateBalance", ctx, int64(1000), mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.NewFromInt(600))
	})).Return(nil).Once()

	account, err := s.service.Deposit(ctx, 1000, decimal.NewFromInt(100))

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(600)))
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDepositToPrimaryRoutesToFlaggedAccount() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAccountsByOwner", ctx, s.userID).Return([]domain.Account{s.savings, s.chequing}, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockAccountRepo.On("UpdateBalance", ctx, int64(1000), mock.Anything).Return(nil).Once()

	account, err := s.service.DepositToPrimary(ctx, s.userID, decimal.NewFromInt(40))

	s.Require().NoError(err)
	s.Equal(int64(1000), account.AccountNumber)
}

func (s *AccountServiceTestSuite) TestDepositToPrimaryFailsWithoutPrimary() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAccountsByOwner", ctx, s.userID).Return([]domain.Account{s.savings}, nil).Once()

	_, err := s.service.DepositToPrimary(ctx, s.userID, decimal.NewFromInt(40))

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestWithdrawDispensesAndCommitsAtomically() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(10, 10, 10, 10)

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()
	s.mockLedgerRepo.On("SaveWithdrawal", ctx,
		mock.AnythingOfType("domain.Transaction"),
		balancesMatch(map[int64]decimal.Decimal{1000: decimal.NewFromInt(350)}),
		mock.AnythingOfType("domain.BillCounts"),
	).Return(nil).Once()
	s.mockVaultSvc.On("RaiseLowBillAlert", ctx, mock.AnythingOfType("*domain.CashInventory")).Return(nil).Once()

	account, bills, err := s.service.Withdraw(ctx, 1000, decimal.NewFromInt(150))

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(350)))
	s.Equal(int64(3), bills[domain.Fifty])
	s.mockLedgerRepo.AssertExpectations(s.T())
	s.mockVaultSvc.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestWithdrawRejectsNonMultipleOfFive() {
	ctx := context.Background()

	_, _, err := s.service.Withdraw(ctx, 1000, decimal.NewFromInt(42))

	s.ErrorIs(err, apperrors.ErrUnsatisfiableDenomination)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestWithdrawFailsWhenVaultShort() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(1, 0, 0, 0)

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()

	_, _, err := s.service.Withdraw(ctx, 1000, decimal.NewFromInt(100))

	s.ErrorIs(err, apperrors.ErrInsufficientCash)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveWithdrawal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestWithdrawFailsOnInsufficientFunds() {
	ctx := context.Background()
	poor := s.chequing
	poor.Balance = decimal.NewFromInt(10)
	inventory := domain.NewCashInventory(100, 100, 100, 100)

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&poor, nil).Once()
	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()

	_, _, err := s.service.Withdraw(ctx, 1000, decimal.NewFromInt(200))

	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *AccountServiceTestSuite) TestTransferOutMovesBothBalances() {
	ctx := context.Background()
	amount := decimal.NewFromInt(285)

	s.mockAccountRepo.On("FindAccountsByNumbers", ctx, []int64{1000, 1001}).Return(map[int64]domain.Account{
		1000: s.chequing,
		1001: s.savings,
	}, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		balancesMatch(map[int64]decimal.Decimal{
			1000: decimal.NewFromInt(215),
			1001: decimal.NewFromInt(385),
		}),
	).Return(nil).Once()

	account, err := s.service.TransferOut(ctx, 1000, 1001, amount)

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(215)))
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestTransferInPaysDownCreditCard() {
	ctx := context.Background()
	amount := decimal.NewFromInt(285)

	s.mockAccountRepo.On("FindAccountsByNumbers", ctx, []int64{1002, 1000}).Return(map[int64]domain.Account{
		1002: s.card,
		1000: s.chequing,
	}, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		balancesMatch(map[int64]decimal.Decimal{
			1002: decimal.NewFromInt(215),
			1000: decimal.NewFromInt(215),
		}),
	).Return(nil).Once()

	account, err := s.service.TransferIn(ctx, 1002, 1000, amount)

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(215)))
}

func (s *AccountServiceTestSuite) TestTransferOutFromCreditCardRejected() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountsByNumbers", ctx, []int64{1002, 1000}).Return(map[int64]domain.Account{
		1002: s.card,
		1000: s.chequing,
	}, nil).Once()

	_, err := s.service.TransferOut(ctx, 1002, 1000, decimal.NewFromInt(50))

	s.ErrorIs(err, apperrors.ErrUnsupportedOperation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestTransferToSelfRejected() {
	ctx := context.Background()

	_, err := s.service.TransferOut(ctx, 1000, 1000, decimal.NewFromInt(50))

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestTransferSourceShortOnFunds() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountsByNumbers", ctx, []int64{1001, 1000}).Return(map[int64]domain.Account{
		1001: s.savings,
		1000: s.chequing,
	}, nil).Once()

	_, err := s.service.TransferOut(ctx, 1001, 1000, decimal.NewFromInt(101))

	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *AccountServiceTestSuite) TestPayBillDebitsAndRecords() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Kind == domain.KindPayBill && txn.Payee == "Hydro One"
		}),
		balancesMatch(map[int64]decimal.Decimal{1000: decimal.NewFromInt(440)}),
	).Return(nil).Once()

	account, err := s.service.PayBill(ctx, 1000, decimal.NewFromInt(60), "Hydro One")

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(440)))
}

func (s *AccountServiceTestSuite) TestPayBillFromCreditCardRejected() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1002)).Return(&s.card, nil).Once()

	_, err := s.service.PayBill(ctx, 1002, decimal.NewFromInt(60), "Hydro One")

	s.ErrorIs(err, apperrors.ErrUnsupportedOperation)
}

func (s *AccountServiceTestSuite) TestPayBillRequiresPayee() {
	ctx := context.Background()

	_, err := s.service.PayBill(ctx, 1000, decimal.NewFromInt(60), "")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestApplyMonthlyInterestOnSavings() {
	ctx := context.Background()
	savings := s.savings
	savings.Balance = decimal.NewFromInt(1000)

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1001)).Return(&savings, nil).Once()
	s.mockAccountRepo.On("UpdateBalance", ctx, int64(1001), mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.NewFromInt(1001))
	})).Return(nil).Once()

	account, err := s.service.ApplyMonthlyInterest(ctx, 1001)

	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(1001)))
}

func (s *AccountServiceTestSuite) TestApplyMonthlyInterestRejectsNonSavings() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1000)).Return(&s.chequing, nil).Once()

	_, err := s.service.ApplyMonthlyInterest(ctx, 1000)

	s.ErrorIs(err, apperrors.ErrUnsupportedOperation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
