package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
)

// Denomination is a bill face value held by the branch vault.
type Denomination int64

const (
	Five   Denomination = 5
	Ten    Denomination = 10
	Twenty Denomination = 20
	Fifty  Denomination = 50
)

// Denominations lists every bill the vault tracks, smallest first.
var Denominations = []Denomination{Five, Ten, Twenty, Fifty}

// DispenseOrder is the fixed greedy order the dispenser walks. Largest-first
// is not guaranteed to find a feasible split even when one exists; the order
// is preserved verbatim from the legacy dispenser.
var DispenseOrder = []Denomination{Fifty, Twenty, Ten, Five}

// lowStockValue: a denomination is low once its remaining value drops under
// this.
var lowStockValue = decimal.NewFromInt(20)

// ValidDenomination reports whether d is a tracked bill value.
func ValidDenomination(d Denomination) bool {
	switch d {
	case Five, Ten, Twenty, Fifty:
		return true
	}
	return false
}

// BillCounts maps denomination to number of bills.
type BillCounts map[Denomination]int64

// Clone returns an independent copy of the counts.
func (bc BillCounts) Clone() BillCounts {
	out := make(BillCounts, len(bc))
	for d, n := range bc {
		out[d] = n
	}
	return out
}

// CashInventory holds the branch vault's bills. Counts never go negative.
type CashInventory struct {
	Counts BillCounts
}

// NewCashInventory builds a vault stocked with the given bill counts.
func NewCashInventory(five, ten, twenty, fifty int64) CashInventory {
	return CashInventory{Counts: BillCounts{
		Five:   five,
		Ten:    ten,
		Twenty: twenty,
		Fifty:  fifty,
	}}
}

// TotalValue is the dollar value of every bill in the vault.
func (ci *CashInventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, d := range Denominations {
		total = total.Add(decimal.NewFromInt(int64(d)).Mul(decimal.NewFromInt(ci.Counts[d])))
	}
	return total
}

// Dispense allocates bills for amount, greedily from the largest denomination
// down, and commits the allocation only if the request is met exactly.
// It fails with ErrInsufficientCash when the vault holds less than amount in
// total, and with ErrUnsatisfiableDenomination when amount is not a positive
// multiple of five or the greedy pass cannot represent it with the bills on
// hand (e.g. 15 requested while only fifties remain).
func (ci *CashInventory) Dispense(amount decimal.Decimal) (BillCounts, error) {
	five := decimal.NewFromInt(int64(Five))
	if amount.LessThanOrEqual(decimal.Zero) || !amount.Mod(five).IsZero() {
		return nil, fmt.Errorf("%w: amount %s is not a positive multiple of 5", apperrors.ErrUnsatisfiableDenomination, amount)
	}
	if ci.TotalValue().LessThan(amount) {
		return nil, apperrors.ErrInsufficientCash
	}

	remaining := amount.IntPart()
	scratch := ci.Counts.Clone()
	dispensed := make(BillCounts, len(DispenseOrder))
	for _, d := range DispenseOrder {
		want := remaining / int64(d)
		if want > scratch[d] {
			want = scratch[d]
		}
		dispensed[d] = want
		scratch[d] -= want
		remaining -= want * int64(d)
	}
	if remaining != 0 {
		return nil, fmt.Errorf("%w: cannot represent %s with bills on hand", apperrors.ErrUnsatisfiableDenomination, amount)
	}

	ci.Counts = scratch
	return dispensed, nil
}

// Restock sets a denomination's count outright, as the bank manager does when
// refilling the vault.
func (ci *CashInventory) Restock(d Denomination, count int64) error {
	if !ValidDenomination(d) {
		return fmt.Errorf("%w: unknown denomination %d", apperrors.ErrValidation, d)
	}
	if count < 0 {
		return fmt.Errorf("%w: bill count cannot be negative", apperrors.ErrValidation)
	}
	ci.Counts[d] = count
	return nil
}

// AddBills adds n bills of one denomination, as a cash deposit does.
func (ci *CashInventory) AddBills(d Denomination, n int64) error {
	if !ValidDenomination(d) {
		return fmt.Errorf("%w: unknown denomination %d", apperrors.ErrValidation, d)
	}
	if n <= 0 {
		return fmt.Errorf("%w: bill count must be positive", apperrors.ErrValidation)
	}
	ci.Counts[d] += n
	return nil
}

// LowDenominations lists every denomination whose remaining value has dropped
// below the restock threshold, smallest first.
func (ci *CashInventory) LowDenominations() []Denomination {
	var low []Denomination
	for _, d := range Denominations {
		value := decimal.NewFromInt(int64(d)).Mul(decimal.NewFromInt(ci.Counts[d]))
		if value.LessThan(lowStockValue) {
			low = append(low, d)
		}
	}
	return low
}

// LowBillAlert is the signal raised for the bank manager after a dispense
// leaves one or more denominations low.
type LowBillAlert struct {
	AlertID       string         `json:"alertID"`
	Denominations []Denomination `json:"denominations"`
	CreatedAt     time.Time      `json:"createdAt"`
}
