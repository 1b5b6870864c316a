package models

import "time"

// VaultBill is the vault_bills table row: one denomination's count.
type VaultBill struct {
	Denomination int64     `db:"denomination"`
	BillCount    int64     `db:"bill_count"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// VaultAlert is the vault_alerts table row: one low-bill alert listing the
// denominations that were low when it fired.
type VaultAlert struct {
	AlertID       string    `db:"alert_id"`
	Denominations []int64   `db:"denominations"`
	CreatedAt     time.Time `db:"created_at"`
}
