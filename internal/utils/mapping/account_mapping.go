package mapping

import (
	"github.com/mapleridge/teller_app/internal/core/domain"
	"github.com/mapleridge/teller_app/internal/models"
)

// AccountToDomain converts a db row plus its owner IDs to the domain type.
func AccountToDomain(row models.Account, ownerIDs []string) domain.Account {
	return domain.Account{
		AccountNumber: row.AccountNumber,
		Category:      domain.AccountCategory(row.Category),
		Balance:       row.Balance,
		IsJoint:       row.IsJoint,
		Primary:       row.IsPrimary,
		OwnerIDs:      ownerIDs,
		CreatedAt:     row.CreatedAt,
	}
}

// AccountToModel converts a domain account to its db row. Owners are written
// separately to account_owners.
func AccountToModel(acc domain.Account) models.Account {
	return models.Account{
		AccountNumber: acc.AccountNumber,
		Category:      string(acc.Category),
		Balance:       acc.Balance,
		IsJoint:       acc.IsJoint,
		IsPrimary:     acc.Primary,
		CreatedAt:     acc.CreatedAt,
	}
}
