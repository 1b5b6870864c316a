package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the accounts table row. Owners live in account_owners.
type Account struct {
	AccountNumber int64           `db:"account_number"`
	Category      string          `db:"category"`
	Balance       decimal.Decimal `db:"balance"`
	IsJoint       bool            `db:"is_joint"`
	IsPrimary     bool            `db:"is_primary"`
	CreatedAt     time.Time       `db:"created_at"`
}

// AccountOwner is the account_owners join table row.
type AccountOwner struct {
	AccountNumber int64  `db:"account_number"`
	UserID        string `db:"user_id"`
}
