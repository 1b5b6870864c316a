package dto

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// RestockRequest sets one denomination's bill count outright.
type RestockRequest struct {
	Denomination int64 `json:"denomination" binding:"required,oneof=5 10 20 50"`
	Count        int64 `json:"count" binding:"min=0"`
}

// DepositBillsRequest adds bills of one denomination (cash deposit).
type DepositBillsRequest struct {
	Denomination int64 `json:"denomination" binding:"required,oneof=5 10 20 50"`
	Count        int64 `json:"count" binding:"required,gt=0"`
}

// VaultResponse defines the data returned for the branch vault.
type VaultResponse struct {
	Counts           map[string]int64 `json:"counts"`
	TotalValue       decimal.Decimal  `json:"totalValue"`
	LowDenominations []int64          `json:"lowDenominations"`
}

// ToVaultResponse converts the vault inventory to its response DTO.
func ToVaultResponse(inv *domain.CashInventory) VaultResponse {
	counts := make(map[string]int64, len(inv.Counts))
	for d, n := range inv.Counts {
		counts[strconv.FormatInt(int64(d), 10)] = n
	}
	low := inv.LowDenominations()
	lowInts := make([]int64, len(low))
	for i, d := range low {
		lowInts[i] = int64(d)
	}
	return VaultResponse{
		Counts:           counts,
		TotalValue:       inv.TotalValue(),
		LowDenominations: lowInts,
	}
}

// ToBillsMap converts dispensed bill counts for the withdrawal response.
func ToBillsMap(bills domain.BillCounts) map[string]int64 {
	out := make(map[string]int64, len(bills))
	for d, n := range bills {
		out[strconv.FormatInt(int64(d), 10)] = n
	}
	return out
}
