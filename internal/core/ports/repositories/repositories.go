package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
	VaultRepo   VaultRepositoryFacade
	UserRepo    UserRepositoryFacade
}
