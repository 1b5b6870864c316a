package services

// ServiceContainer holds instances of all the application services. It is the
// entry point for the handlers layer.
type ServiceContainer struct {
	Account AccountSvcFacade
	Vault   VaultSvcFacade
	Undo    UndoSvcFacade
	User    UserSvcFacade
}
