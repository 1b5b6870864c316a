package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the reversible operation a ledger entry records.
// Deposits are deliberately absent: they cannot be undone and are never
// written to the ledger.
type TransactionKind string

const (
	KindWithdraw    TransactionKind = "WITHDRAW"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	KindPayBill     TransactionKind = "PAY_BILL"
)

// Transaction is one entry in an account's ledger. Entries are appended in
// commit order; only the last entry may ever be removed, and only by the undo
// engine.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountNumber int64           `json:"accountNumber"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	// CounterpartyAccountNumber identifies the other leg of a transfer.
	// Nil for withdrawals and bill payments.
	CounterpartyAccountNumber *int64 `json:"counterpartyAccountNumber,omitempty"`
	// Payee is the external recipient of a bill payment. Empty otherwise.
	Payee     string    `json:"payee,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Transaction) String() string {
	switch t.Kind {
	case KindTransferIn:
		return fmt.Sprintf("transferred in %s from account %d", t.Amount, derefOrZero(t.CounterpartyAccountNumber))
	case KindTransferOut:
		return fmt.Sprintf("transferred out %s to account %d", t.Amount, derefOrZero(t.CounterpartyAccountNumber))
	case KindWithdraw:
		return fmt.Sprintf("withdrew %s", t.Amount)
	default:
		return fmt.Sprintf("paid %s to %s", t.Amount, t.Payee)
	}
}

func derefOrZero(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
