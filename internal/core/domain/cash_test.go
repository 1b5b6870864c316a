package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
)

func TestTotalValue(t *testing.T) {
	inv := domain.NewCashInventory(100, 100, 100, 100)
	assert.True(t, inv.TotalValue().Equal(decimal.NewFromInt(8500)))

	empty := domain.NewCashInventory(0, 0, 0, 0)
	assert.True(t, empty.TotalValue().IsZero())
}

func TestDispenseGreedyLargestFirst(t *testing.T) {
	inv := domain.NewCashInventory(10, 10, 10, 10)

	bills, err := inv.Dispense(decimal.NewFromInt(185))
	require.NoError(t, err)

	assert.Equal(t, int64(3), bills[domain.Fifty])
	assert.Equal(t, int64(1), bills[domain.Twenty])
	assert.Equal(t, int64(1), bills[domain.Ten])
	assert.Equal(t, int64(1), bills[domain.Five])

	assert.Equal(t, int64(7), inv.Counts[domain.Fifty])
	assert.Equal(t, int64(9), inv.Counts[domain.Twenty])
	assert.Equal(t, int64(9), inv.Counts[domain.Ten])
	assert.Equal(t, int64(9), inv.Counts[domain.Five])
}

func TestDispenseFullDrain(t *testing.T) {
	inv := domain.NewCashInventory(100, 100, 100, 100)

	bills, err := inv.Dispense(decimal.NewFromInt(8500))
	require.NoError(t, err)

	for _, d := range domain.Denominations {
		assert.Equal(t, int64(100), bills[d])
		assert.Equal(t, int64(0), inv.Counts[d])
	}
	assert.True(t, inv.TotalValue().IsZero())
}

func TestDispenseFallsBackToSmallerBills(t *testing.T) {
	inv := domain.NewCashInventory(20, 0, 0, 1)

	// 80 = one fifty plus six fives; no twenties or tens on hand.
	bills, err := inv.Dispense(decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.Equal(t, int64(1), bills[domain.Fifty])
	assert.Equal(t, int64(6), bills[domain.Five])
}

func TestDispenseRejectsNonMultipleOfFive(t *testing.T) {
	inv := domain.NewCashInventory(10, 10, 10, 10)

	_, err := inv.Dispense(decimal.NewFromInt(42))
	assert.ErrorIs(t, err, apperrors.ErrUnsatisfiableDenomination)

	_, err = inv.Dispense(decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrUnsatisfiableDenomination)

	_, err = inv.Dispense(decimal.NewFromInt(-20))
	assert.ErrorIs(t, err, apperrors.ErrUnsatisfiableDenomination)
}

func TestDispenseInsufficientCash(t *testing.T) {
	inv := domain.NewCashInventory(1, 0, 0, 0)

	_, err := inv.Dispense(decimal.NewFromInt(10))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCash)
	assert.Equal(t, int64(1), inv.Counts[domain.Five])
}

func TestDispenseUnrepresentableAmountLeavesVaultUntouched(t *testing.T) {
	// Plenty of value, but 15 cannot be made out of fifties alone.
	inv := domain.NewCashInventory(0, 0, 0, 10)

	_, err := inv.Dispense(decimal.NewFromInt(15))
	assert.ErrorIs(t, err, apperrors.ErrUnsatisfiableDenomination)
	assert.Equal(t, int64(10), inv.Counts[domain.Fifty])
}

func TestGreedyOrderCanMissFeasibleSplit(t *testing.T) {
	// 60 is representable as three twenties, but the greedy pass takes the
	// fifty first and then cannot finish. The legacy dispenser behaves the
	// same way.
	inv := domain.NewCashInventory(0, 0, 3, 1)

	_, err := inv.Dispense(decimal.NewFromInt(60))
	assert.ErrorIs(t, err, apperrors.ErrUnsatisfiableDenomination)
	assert.Equal(t, int64(3), inv.Counts[domain.Twenty])
	assert.Equal(t, int64(1), inv.Counts[domain.Fifty])
}

func TestRestockAndAddBills(t *testing.T) {
	inv := domain.NewCashInventory(0, 0, 0, 0)

	require.NoError(t, inv.Restock(domain.Twenty, 50))
	assert.Equal(t, int64(50), inv.Counts[domain.Twenty])

	require.NoError(t, inv.AddBills(domain.Twenty, 5))
	assert.Equal(t, int64(55), inv.Counts[domain.Twenty])

	assert.ErrorIs(t, inv.Restock(domain.Denomination(7), 1), apperrors.ErrValidation)
	assert.ErrorIs(t, inv.Restock(domain.Twenty, -1), apperrors.ErrValidation)
	assert.ErrorIs(t, inv.AddBills(domain.Twenty, 0), apperrors.ErrValidation)
}

func TestLowDenominations(t *testing.T) {
	// Low means remaining value under 20: three fives (15) is low, four
	// fives (20) is not, one twenty is not.
	inv := domain.NewCashInventory(3, 1, 1, 0)

	low := inv.LowDenominations()
	assert.Equal(t, []domain.Denomination{domain.Five, domain.Ten, domain.Fifty}, low)

	stocked := domain.NewCashInventory(4, 2, 1, 1)
	assert.Empty(t, stocked.LowDenominations())
}

func TestBillCountsClone(t *testing.T) {
	original := domain.BillCounts{domain.Five: 2, domain.Fifty: 1}
	clone := original.Clone()
	clone[domain.Five] = 99
	assert.Equal(t, int64(2), original[domain.Five])
}
