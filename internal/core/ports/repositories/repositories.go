package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionReader
	BillRepo        BillRepositoryFacade
	BillerRepo      BillerRepositoryFacade
	UnitOfWork      UnitOfWork
	// Close releases the underlying store, if it holds resources.
	Close func()
}
