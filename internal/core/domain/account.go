package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
)

// AccountCategory identifies the product behind an account. The set is closed:
// money-movement rules are a function of the category, not of subtyping.
type AccountCategory string

const (
	Chequing     AccountCategory = "CHEQUING"
	Savings      AccountCategory = "SAVINGS"
	StockHolding AccountCategory = "STOCK_HOLDING"
	CreditCard   AccountCategory = "CREDIT_CARD"
	LineOfCredit AccountCategory = "LINE_OF_CREDIT"
)

// AccountGroup splits the categories by what the balance means.
type AccountGroup string

const (
	// GroupAsset balances represent money the holder owns.
	GroupAsset AccountGroup = "ASSET"
	// GroupDebt balances represent money the holder owes.
	GroupDebt AccountGroup = "DEBT"
)

var (
	// OverdraftFloor is the fixed overdraft ceiling on chequing accounts.
	OverdraftFloor = decimal.NewFromInt(-100)
	// CreditLimit is the fixed maximum a debt account may owe.
	CreditLimit = decimal.NewFromInt(50000)
	// MonthlySavingsInterestRate multiplies a savings balance at month end.
	MonthlySavingsInterestRate = decimal.NewFromFloat(1.001)
)

// ValidCategory reports whether c is one of the known account categories.
func ValidCategory(c AccountCategory) bool {
	switch c {
	case Chequing, Savings, StockHolding, CreditCard, LineOfCredit:
		return true
	}
	return false
}

// Group returns the balance semantics group for the category.
func (c AccountCategory) Group() AccountGroup {
	switch c {
	case CreditCard, LineOfCredit:
		return GroupDebt
	default:
		return GroupAsset
	}
}

// Account is a customer account at the branch. Balance semantics depend on
// Category: asset balances grow on credit, debt balances grow when the holder
// draws on the line.
type Account struct {
	AccountNumber int64           `json:"accountNumber"`
	Category      AccountCategory `json:"category"`
	Balance       decimal.Decimal `json:"balance"`
	IsJoint       bool            `json:"isJoint"`
	Primary       bool            `json:"primary"` // chequing only: default deposit target
	OwnerIDs      []string        `json:"ownerIDs"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CheckFundsSufficient reports whether amount can be debited from (asset) or
// advanced against (debt) the account. Chequing counts its overdraft floor as
// available; debt accounts check against the credit limit.
func (a *Account) CheckFundsSufficient(amount decimal.Decimal) bool {
	switch a.Category {
	case Chequing:
		return a.Balance.Sub(amount).GreaterThanOrEqual(OverdraftFloor)
	case Savings, StockHolding:
		return a.Balance.GreaterThanOrEqual(amount)
	default: // CreditCard, LineOfCredit
		return a.Balance.Add(amount).LessThanOrEqual(CreditLimit)
	}
}

// AddMoney credits the account: asset balances increase, debt balances
// decrease (a payment against what is owed). Always succeeds for a positive
// amount.
func (a *Account) AddMoney(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	a.Balance = a.Balance.Add(a.signedCredit(amount))
	return nil
}

// RemoveMoney debits the account (asset) or advances against it (debt),
// enforcing the category floor or credit limit. A stock holding account keeps
// the legacy behaviour of silently ignoring an insufficient removal; every
// other category reports ErrInsufficientFunds.
func (a *Account) RemoveMoney(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !a.CheckFundsSufficient(amount) {
		if a.Category == StockHolding {
			// Silent no-op, preserved from the legacy branch software.
			return nil
		}
		return apperrors.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(a.signedCredit(amount))
	return nil
}

// ApplyCredit moves the balance in the AddMoney direction without validation.
// Used by the undo engine, which reverses deltas that were validated when
// first applied.
func (a *Account) ApplyCredit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(a.signedCredit(amount))
}

// ApplyDebit moves the balance in the RemoveMoney direction without
// validation.
func (a *Account) ApplyDebit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(a.signedCredit(amount))
}

// signedCredit maps a positive operation amount onto the balance axis for the
// account's group: +amount for assets, -amount for debts.
func (a *Account) signedCredit(amount decimal.Decimal) decimal.Decimal {
	if a.Category.Group() == GroupDebt {
		return amount.Neg()
	}
	return amount
}

// CanTransferOut reports whether the category may be a transfer source.
// Credit cards cannot.
func (a *Account) CanTransferOut() bool {
	return a.Category != CreditCard
}

// CanPayBill reports whether the category may pay bills. Credit cards and
// stock holdings cannot.
func (a *Account) CanPayBill() bool {
	return a.Category != CreditCard && a.Category != StockHolding
}

// OwnedBy reports whether userID is one of the account's owners.
func (a *Account) OwnedBy(userID string) bool {
	for _, id := range a.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// NetContribution is the account's contribution to its owner's net worth:
// positive for assets, negative for debts.
func (a *Account) NetContribution() decimal.Decimal {
	if a.Category.Group() == GroupDebt {
		return a.Balance.Neg()
	}
	return a.Balance
}
