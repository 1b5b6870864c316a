package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/core/services"
)

type VaultServiceTestSuite struct {
	suite.Suite
	mockVaultRepo *MockVaultRepository
	service       portssvc.VaultSvcFacade
}

func (s *VaultServiceTestSuite) SetupTest() {
	s.mockVaultRepo = new(MockVaultRepository)
	s.service = services.NewVaultService(s.mockVaultRepo)
}

func (s *VaultServiceTestSuite) TestRestockSetsCountOutright() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(2, 2, 2, 2)

	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()
	s.mockVaultRepo.On("SaveInventory", ctx, mock.MatchedBy(func(inv domain.CashInventory) bool {
		return inv.Counts[domain.Twenty] == 100
	})).Return(nil).Once()

	inv, err := s.service.Restock(ctx, domain.Twenty, 100)

	s.Require().NoError(err)
	s.Equal(int64(100), inv.Counts[domain.Twenty])
	s.mockVaultRepo.AssertExpectations(s.T())
}

func (s *VaultServiceTestSuite) TestRestockRejectsUnknownDenomination() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(2, 2, 2, 2)

	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()

	_, err := s.service.Restock(ctx, domain.Denomination(7), 10)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockVaultRepo.AssertNotCalled(s.T(), "SaveInventory", mock.Anything, mock.Anything)
}

func (s *VaultServiceTestSuite) TestDepositBillsAdds() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(10, 0, 0, 0)

	s.mockVaultRepo.On("GetInventory", ctx).Return(inventory, nil).Once()
	s.mockVaultRepo.On("SaveInventory", ctx, mock.MatchedBy(func(inv domain.CashInventory) bool {
		return inv.Counts[domain.Five] == 13
	})).Return(nil).Once()

	inv, err := s.service.DepositBills(ctx, domain.Five, 3)

	s.Require().NoError(err)
	s.Equal(int64(13), inv.Counts[domain.Five])
}

func (s *VaultServiceTestSuite) TestRaiseLowBillAlertPersistsLowDenominations() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(1, 1, 5, 5)

	s.mockVaultRepo.On("SaveAlert", ctx, mock.MatchedBy(func(alert domain.LowBillAlert) bool {
		return alert.AlertID != "" &&
			len(alert.Denominations) == 2 &&
			alert.Denominations[0] == domain.Five &&
			alert.Denominations[1] == domain.Ten
	})).Return(nil).Once()

	err := s.service.RaiseLowBillAlert(ctx, &inventory)

	s.Require().NoError(err)
	s.mockVaultRepo.AssertExpectations(s.T())
}

func (s *VaultServiceTestSuite) TestRaiseLowBillAlertNoOpWhenStocked() {
	ctx := context.Background()
	inventory := domain.NewCashInventory(100, 100, 100, 100)

	err := s.service.RaiseLowBillAlert(ctx, &inventory)

	s.Require().NoError(err)
	s.mockVaultRepo.AssertNotCalled(s.T(), "SaveAlert", mock.Anything, mock.Anything)
}

func TestVaultServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VaultServiceTestSuite))
}
