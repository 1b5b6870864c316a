package mapping

import (
	"github.com/mapleridge/teller_app/internal/core/domain"
	"github.com/mapleridge/teller_app/internal/models"
)

// TransactionToDomain converts a db row to the domain type.
func TransactionToDomain(row models.Transaction) domain.Transaction {
	txn := domain.Transaction{
		TransactionID:             row.TransactionID,
		AccountNumber:             row.AccountNumber,
		Kind:                      domain.TransactionKind(row.Kind),
		Amount:                    row.Amount,
		CounterpartyAccountNumber: row.CounterpartyAccountNumber,
		CreatedAt:                 row.CreatedAt,
	}
	if row.Payee != nil {
		txn.Payee = *row.Payee
	}
	return txn
}

// TransactionToModel converts a domain transaction to its db row.
func TransactionToModel(txn domain.Transaction) models.Transaction {
	row := models.Transaction{
		TransactionID:             txn.TransactionID,
		AccountNumber:             txn.AccountNumber,
		Kind:                      string(txn.Kind),
		Amount:                    txn.Amount,
		CounterpartyAccountNumber: txn.CounterpartyAccountNumber,
		CreatedAt:                 txn.CreatedAt,
	}
	if txn.Payee != "" {
		payee := txn.Payee
		row.Payee = &payee
	}
	return row
}
