package services

import (
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Vault first: the account service raises low-bill alerts through it
	// after withdrawals.
	container.Vault = NewVaultService(repos.VaultRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.LedgerRepo,
		repos.VaultRepo,
		repos.UserRepo,
		container.Vault,
	)
	container.Undo = NewUndoService(repos.AccountRepo, repos.LedgerRepo)
	container.User = NewUserService(repos.UserRepo, repos.AccountRepo)

	return container
}
