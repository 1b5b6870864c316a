package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// TransactionResponse defines the data returned for one ledger entry.
type TransactionResponse struct {
	TransactionID             string                 `json:"transactionID"`
	AccountNumber             int64                  `json:"accountNumber"`
	Kind                      domain.TransactionKind `json:"kind"`
	Amount                    decimal.Decimal        `json:"amount"`
	CounterpartyAccountNumber *int64                 `json:"counterpartyAccountNumber,omitempty"`
	Payee                     string                 `json:"payee,omitempty"`
	CreatedAt                 time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:             txn.TransactionID,
		AccountNumber:             txn.AccountNumber,
		Kind:                      txn.Kind,
		Amount:                    txn.Amount,
		CounterpartyAccountNumber: txn.CounterpartyAccountNumber,
		Payee:                     txn.Payee,
		CreatedAt:                 txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a ledger to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// UndoRequest identifies the owner requesting the reversal.
type UndoRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// UndoResponse reports which entry was reversed and the account it came off.
type UndoResponse struct {
	UndoneTransaction TransactionResponse `json:"undoneTransaction"`
	Account           AccountResponse     `json:"account"`
}
