package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/core/services"
	"github.com/SscSPs/bank_simulator/internal/repositories/memory"
	"github.com/SscSPs/bank_simulator/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type SettlementEngineTestSuite struct {
	suite.Suite
	store   *memory.Store
	spans   *tracetest.SpanRecorder
	metrics *sdkmetric.ManualReader
	ctx     context.Context
	biller  domain.Biller
}

func (s *SettlementEngineTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.spans = tracetest.NewSpanRecorder()
	s.metrics = sdkmetric.NewManualReader()
	s.ctx = context.Background()
	s.biller = domain.Biller{ID: "biller-1", BillerCode: "23796", Name: "Power Co"}

	seedAccount(s.T(), s.store, domain.Account{ID: "payer", Owner: "u1", OwnerUsername: "alice", AccountNumber: "000000001", Balance: dec("500")})
}

// newEngine builds an engine over the memory store, optionally routing units of
// work through uow so failures can be injected.
func (s *SettlementEngineTestSuite) newEngine(uow portsrepo.UnitOfWork) portssvc.SettlementEngineSvc {
	if uow == nil {
		uow = s.store
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.metrics))
	ledger := services.NewLedgerService(s.store, uow)
	recorder := services.NewTransactionRecorder(ledger, s.store, uow)
	return services.NewSettlementEngine(ledger, recorder, s.store, uow,
		services.WithEngineTracerProvider(tp),
		services.WithEngineMeterProvider(mp))
}

func (s *SettlementEngineTestSuite) request(amount string) domain.SettlementRequest {
	return domain.SettlementRequest{
		UserID:          "u1",
		FromAccountID:   "payer",
		Biller:          s.biller,
		ReferenceNumber: "4455",
		Amount:          dec(amount),
		Description:     "power",
	}
}

// assertConserved checks the payer balance against its replayed history.
func (s *SettlementEngineTestSuite) assertConserved() {
	payer, err := s.store.FindAccountByID(s.ctx, "payer")
	s.Require().NoError(err)
	s.NoError(accounting.VerifyBalance(*payer, historyOf(s.T(), s.store, "payer")))
}

func (s *SettlementEngineTestSuite) bill(id string) domain.Bill {
	b, err := s.store.FindBillByID(s.ctx, id)
	s.Require().NoError(err)
	return *b
}

func (s *SettlementEngineTestSuite) TestWaterfall_EarliestDueFirstWithPartialTail() {
	seedBill(s.T(), s.store, "mar", "u1", "Power Co", "40", testEpoch.AddDate(0, 2, 0))
	seedBill(s.T(), s.store, "jan", "u1", "Power Co", "50", testEpoch)
	seedBill(s.T(), s.store, "feb", "u1", "Power Co", "30", testEpoch.AddDate(0, 1, 0))
	seedBill(s.T(), s.store, "water", "u1", "Water Co", "10", testEpoch)

	result, err := s.newEngine(nil).Settle(s.ctx, s.request("100"))
	s.Require().NoError(err)

	s.Require().Len(result.Allocations, 3)
	s.Equal([]string{"jan", "feb", "mar"}, []string{result.Allocations[0].BillID, result.Allocations[1].BillID, result.Allocations[2].BillID})
	s.Equal(domain.BillPaid, result.Allocations[0].Status)
	s.Equal(domain.BillPaid, result.Allocations[1].Status)
	s.Equal(domain.BillPartial, result.Allocations[2].Status)
	s.Equal("20", result.Allocations[2].Paid.String())
	s.Equal("20", result.Allocations[2].Remaining.String())
	s.Equal("100", result.Consumed.String())
	s.True(result.Refunded.IsZero())

	s.Equal(domain.BillPaid, s.bill("jan").Status)
	s.Equal("50", s.bill("jan").Amount.String())
	mar := s.bill("mar")
	s.Equal(domain.BillPartial, mar.Status)
	s.Equal("20", mar.Amount.String())
	s.NotNil(mar.PaidOn)
	s.Equal(domain.BillUnpaid, s.bill("water").Status)

	s.Equal("400.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	history := historyOf(s.T(), s.store, "payer")
	s.Len(history, 3)
	for _, txn := range history {
		s.Equal(domain.BPAY, txn.TransactionType)
		s.Equal("23796", txn.ToBiller)
	}
	s.assertConserved()
}

func (s *SettlementEngineTestSuite) TestOverpayment_RefundsRemainderSilently() {
	seedBill(s.T(), s.store, "only", "u1", "Power Co", "30", testEpoch)

	result, err := s.newEngine(nil).Settle(s.ctx, s.request("100"))
	s.Require().NoError(err)

	s.Equal("30", result.Consumed.String())
	s.Equal("70", result.Refunded.String())
	s.Equal("470.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	s.Len(historyOf(s.T(), s.store, "payer"), 1)
	s.assertConserved()
}

func (s *SettlementEngineTestSuite) TestNoOpenBills_LeavesBalanceUntouched() {
	seedBill(s.T(), s.store, "other-user", "u2", "Power Co", "30", testEpoch)

	result, err := s.newEngine(nil).Settle(s.ctx, s.request("25"))
	s.Require().NoError(err)

	s.Empty(result.Allocations)
	s.True(result.Consumed.IsZero())
	s.Equal("25", result.Refunded.String())
	s.Equal("500.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	s.Empty(historyOf(s.T(), s.store, "payer"))
}

func (s *SettlementEngineTestSuite) TestInvalidAmount() {
	_, err := s.newEngine(nil).Settle(s.ctx, s.request("0"))
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *SettlementEngineTestSuite) TestNonPositiveBill_StopsWithInvalidState() {
	seedBill(s.T(), s.store, "good", "u1", "Power Co", "10", testEpoch)
	seedBill(s.T(), s.store, "broken", "u1", "Power Co", "0", testEpoch.AddDate(0, 0, 1))

	_, err := s.newEngine(nil).Settle(s.ctx, s.request("50"))
	s.ErrorIs(err, apperrors.ErrInvalidState)

	var settleErr *domain.BillSettlementError
	s.Require().True(errors.As(err, &settleErr))
	s.Equal("broken", settleErr.BillID)
	s.Len(settleErr.Completed, 1)

	// the first step stands, nothing else was debited
	s.Equal("490.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	s.Equal(domain.BillPaid, s.bill("good").Status)
	s.assertConserved()
}

func (s *SettlementEngineTestSuite) TestStepFailure_DebitsOnlyCompletedSteps() {
	seedBill(s.T(), s.store, "first", "u1", "Power Co", "20", testEpoch)
	seedBill(s.T(), s.store, "second", "u1", "Power Co", "30", testEpoch.AddDate(0, 0, 1))
	seedBill(s.T(), s.store, "third", "u1", "Power Co", "40", testEpoch.AddDate(0, 0, 2))

	// unit of work 1 is the first bill, 2 the second
	uow := &faultyUnitOfWork{inner: s.store, failOn: map[int]error{2: errInjected}}
	_, err := s.newEngine(uow).Settle(s.ctx, s.request("80"))
	s.Require().Error(err)
	s.ErrorIs(err, errInjected)

	var settleErr *domain.BillSettlementError
	s.Require().True(errors.As(err, &settleErr))
	s.Equal("second", settleErr.BillID)

	s.Equal("480.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	s.Equal(domain.BillPaid, s.bill("first").Status)
	s.Equal(domain.BillUnpaid, s.bill("second").Status)
	s.Equal(domain.BillUnpaid, s.bill("third").Status)
	s.Len(historyOf(s.T(), s.store, "payer"), 1)
	s.assertConserved()
}

func (s *SettlementEngineTestSuite) TestCancelledAfterFirstStep_KeepsLedgerConsistent() {
	seedBill(s.T(), s.store, "first", "u1", "Power Co", "40", testEpoch)
	seedBill(s.T(), s.store, "second", "u1", "Power Co", "40", testEpoch.AddDate(0, 0, 1))

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	uow := &cancellingUnitOfWork{inner: s.store, after: 1, cancel: cancel}

	_, err := s.newEngine(uow).Settle(ctx, s.request("100"))
	s.Require().Error(err)
	s.ErrorIs(err, context.Canceled)

	var settleErr *domain.BillSettlementError
	s.Require().True(errors.As(err, &settleErr))
	s.Equal("second", settleErr.BillID)
	s.Len(settleErr.Completed, 1)

	s.Equal("460.00", balanceOf(s.T(), s.store, "payer").StringFixed(2))
	s.Len(historyOf(s.T(), s.store, "payer"), 1)
	s.Equal(domain.BillPaid, s.bill("first").Status)
	s.Equal(domain.BillUnpaid, s.bill("second").Status)
	s.assertConserved()
}

func (s *SettlementEngineTestSuite) TestTracesAndCounters() {
	seedBill(s.T(), s.store, "a", "u1", "Power Co", "15", testEpoch)
	seedBill(s.T(), s.store, "b", "u1", "Power Co", "15", testEpoch.AddDate(0, 0, 1))

	_, err := s.newEngine(nil).Settle(s.ctx, s.request("40"))
	s.Require().NoError(err)

	names := map[string]int{}
	for _, span := range s.spans.Ended() {
		names[span.Name()]++
	}
	s.Equal(1, names["settlement.settle"])
	s.Equal(2, names["settlement.bill_step"])

	var rm metricdata.ResourceMetrics
	s.Require().NoError(s.metrics.Collect(s.ctx, &rm))
	totals := map[string]float64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[float64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	s.InDelta(30.0, totals["banksim.settlement.settled"], 0.001)
	s.InDelta(10.0, totals["banksim.settlement.refunded"], 0.001)
}

func (s *SettlementEngineTestSuite) TestPartialBillIsSettledOnNextPayment() {
	seedBill(s.T(), s.store, "bill", "u1", "Power Co", "100", testEpoch)
	engine := s.newEngine(nil)

	_, err := engine.Settle(s.ctx, s.request("60"))
	s.Require().NoError(err)
	s.Equal("40", s.bill("bill").Amount.String())

	result, err := engine.Settle(s.ctx, s.request("45"))
	s.Require().NoError(err)
	s.Equal("40", result.Consumed.String())
	s.Equal("5", result.Refunded.String())
	s.Equal(domain.BillPaid, s.bill("bill").Status)
	s.True(balanceOf(s.T(), s.store, "payer").Equal(decimal.NewFromInt(400)))
	s.assertConserved()
}

func TestSettlementEngineTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementEngineTestSuite))
}
