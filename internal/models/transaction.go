package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row: one reversible ledger entry.
// CounterpartyAccountNumber and Payee are nullable; at most one is set,
// depending on kind.
type Transaction struct {
	TransactionID             string          `db:"transaction_id"`
	AccountNumber             int64           `db:"account_number"`
	Kind                      string          `db:"kind"`
	Amount                    decimal.Decimal `db:"amount"`
	CounterpartyAccountNumber *int64          `db:"counterparty_account_number"`
	Payee                     *string         `db:"payee"`
	CreatedAt                 time.Time       `db:"created_at"`
}
