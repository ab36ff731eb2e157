package services

// ServiceContainer holds instances of all the application services.
// Handlers only see the facades; the engine components are exposed for wiring and tests.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Payment  PaymentSvcFacade
	Bill     BillSvcFacade
	Ledger   AccountLedgerSvc
	Recorder TransactionRecorderSvc
	Engine   SettlementEngineSvc
	Transfer TransferValidatorSvc
}
