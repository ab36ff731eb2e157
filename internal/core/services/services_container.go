package services

import (
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
)

// NewServiceContainer wires the engine components and the facades handlers use.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger comes first; every balance change goes through it.
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.UnitOfWork)
	container.Recorder = NewTransactionRecorder(container.Ledger, repos.TransactionRepo, repos.UnitOfWork)
	container.Engine = NewSettlementEngine(container.Ledger, container.Recorder, repos.BillRepo, repos.UnitOfWork)
	container.Transfer = NewTransferValidator(container.Recorder)

	container.Payment = NewPaymentService(repos.AccountRepo, repos.BillerRepo, container.Ledger, container.Transfer, container.Engine)
	container.Account = NewAccountService(repos.AccountRepo, container.Ledger, container.Recorder)
	container.Bill = NewBillService(repos.BillRepo, repos.BillerRepo)

	return container
}
