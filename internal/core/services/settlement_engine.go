package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/pkg/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// settlementEngine allocates one payment across a payer's open bills, earliest due first.
//
// Each bill step debits the payer, writes the BPAY record and updates the bill in
// one unit of work. Whatever the bills do not consume is never debited, so the
// payer's balance change always equals the sum of the BPAY records written.
type settlementEngine struct {
	BaseService
	ledger   portssvc.AccountLedgerSvc
	recorder portssvc.TransactionWriterSvc
	billRepo portsrepo.BillReader
	uow      portsrepo.UnitOfWork

	tracer        trace.Tracer
	meter         metric.Meter
	settledTotal  metric.Float64Counter
	refundedTotal metric.Float64Counter
}

// EngineOption configures the settlement engine.
type EngineOption func(*settlementEngine)

// WithEngineTracerProvider sets the tracer provider used for settlement spans.
func WithEngineTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *settlementEngine) {
		e.tracer = tp.Tracer(instrumentationName)
	}
}

// WithEngineMeterProvider sets the meter provider used for the settlement counters.
func WithEngineMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(e *settlementEngine) {
		e.meter = mp.Meter(instrumentationName)
	}
}

// NewSettlementEngine creates the bill allocation engine.
func NewSettlementEngine(ledger portssvc.AccountLedgerSvc, recorder portssvc.TransactionWriterSvc, billRepo portsrepo.BillReader, uow portsrepo.UnitOfWork, options ...EngineOption) portssvc.SettlementEngineSvc {
	e := &settlementEngine{
		ledger:   ledger,
		recorder: recorder,
		billRepo: billRepo,
		uow:      uow,
		tracer:   otel.Tracer(instrumentationName),
		meter:    otel.Meter(instrumentationName),
	}
	for _, option := range options {
		option(e)
	}

	var err error
	if e.settledTotal, err = e.meter.Float64Counter("banksim.settlement.settled",
		metric.WithDescription("Amount applied to bills"), metric.WithUnit("{currency}")); err != nil {
		e.settledTotal = noop.Float64Counter{}
	}
	if e.refundedTotal, err = e.meter.Float64Counter("banksim.settlement.refunded",
		metric.WithDescription("Amount returned to payers after all bills were covered"), metric.WithUnit("{currency}")); err != nil {
		e.refundedTotal = noop.Float64Counter{}
	}
	return e
}

var _ portssvc.SettlementEngineSvc = (*settlementEngine)(nil)

func (e *settlementEngine) Settle(ctx context.Context, req domain.SettlementRequest) (*domain.SettlementResult, error) {
	ctx, span := e.tracer.Start(ctx, "settlement.settle", trace.WithAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("from_account_id", req.FromAccountID),
		attribute.String("biller_code", req.Biller.BillerCode),
		attribute.String("amount", req.Amount.String()),
	))
	defer span.End()

	if err := domain.ValidateAmount(req.Amount); err != nil {
		telemetry.HandleSpanBusinessErrorEvent(span, "invalid_amount", err)
		return nil, err
	}

	bills, err := e.billRepo.FindOpenBillsForUserAndBiller(ctx, req.UserID, req.Biller.Name)
	if err != nil {
		telemetry.HandleSpanError(span, "failed to load open bills", err)
		return nil, fmt.Errorf("failed to load open bills: %w", err)
	}
	span.SetAttributes(attribute.Int("open_bills", len(bills)))

	result := &domain.SettlementResult{
		Allocations: []domain.BillAllocation{},
		Consumed:    decimal.Zero,
		Refunded:    decimal.Zero,
	}
	metricAttrs := metric.WithAttributes(attribute.String("biller_code", req.Biller.BillerCode))

	if len(bills) == 0 {
		// Nothing to pay; the payer's account is not touched.
		result.Refunded = req.Amount
		e.refundedTotal.Add(ctx, req.Amount.InexactFloat64(), metricAttrs)
		e.LogInfo(ctx, "No open bills to settle",
			slog.String("user_id", req.UserID),
			slog.String("biller", req.Biller.Name))
		return result, nil
	}

	remaining := req.Amount
	for _, bill := range bills {
		if !remaining.IsPositive() {
			break
		}

		alloc, err := e.settleBill(ctx, req, bill, remaining)
		if err != nil {
			telemetry.HandleSpanError(span, "settlement stopped at bill "+bill.ID, err)
			e.LogError(ctx, err, "Settlement stopped",
				slog.String("bill_id", bill.ID),
				slog.String("settled", result.Consumed.String()),
				slog.String("unspent", remaining.String()))
			e.settledTotal.Add(ctx, result.Consumed.InexactFloat64(), metricAttrs)
			return nil, &domain.BillSettlementError{BillID: bill.ID, Completed: result.Allocations, Err: err}
		}

		result.Allocations = append(result.Allocations, alloc)
		result.Consumed = result.Consumed.Add(alloc.Paid)
		remaining = remaining.Sub(alloc.Paid)
	}
	e.settledTotal.Add(ctx, result.Consumed.InexactFloat64(), metricAttrs)

	if remaining.IsPositive() {
		result.Refunded = remaining
		e.refundedTotal.Add(ctx, remaining.InexactFloat64(), metricAttrs)
	}

	span.SetAttributes(
		attribute.String("consumed", result.Consumed.String()),
		attribute.String("refunded", result.Refunded.String()),
	)
	e.LogInfo(ctx, "Bills settled",
		slog.String("user_id", req.UserID),
		slog.Int("bills_paid", len(result.Allocations)),
		slog.String("consumed", result.Consumed.String()),
		slog.String("refunded", result.Refunded.String()))
	return result, nil
}

// settleBill pays min(remaining, bill.Amount) towards one bill. The debit, the
// BPAY record and the bill update commit together or not at all.
func (e *settlementEngine) settleBill(ctx context.Context, req domain.SettlementRequest, bill domain.Bill, remaining decimal.Decimal) (domain.BillAllocation, error) {
	ctx, span := e.tracer.Start(ctx, "settlement.bill_step", trace.WithAttributes(
		attribute.String("bill_id", bill.ID),
		attribute.String("bill_amount", bill.Amount.String()),
	))
	defer span.End()

	if !bill.Amount.IsPositive() {
		err := fmt.Errorf("%w: bill %s is open with amount %s", apperrors.ErrInvalidState, bill.ID, bill.Amount.String())
		telemetry.HandleSpanError(span, "invalid bill", err)
		return domain.BillAllocation{}, err
	}

	paid := decimal.Min(remaining, bill.Amount)
	updated := bill
	updated.ApplyPayment(paid, e.now())

	var txn *domain.Transaction
	err := e.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		from, err := e.ledger.ApplyDeltaInTx(ctx, repos, req.FromAccountID, paid.Neg())
		if err != nil {
			return err
		}
		txn, err = e.recorder.RecordBillerPaymentInTx(ctx, repos, *from, req.Biller, req.ReferenceNumber, paid, req.Description)
		if err != nil {
			return err
		}
		return repos.Bills.UpdateBillSettlement(ctx, updated)
	})
	if err != nil {
		telemetry.HandleSpanError(span, "bill step failed", err)
		return domain.BillAllocation{}, err
	}

	span.SetAttributes(attribute.String("paid", paid.String()), attribute.String("status", string(updated.Status)))
	return domain.BillAllocation{
		BillID:        bill.ID,
		Paid:          paid,
		Status:        updated.Status,
		Remaining:     updated.Outstanding(),
		TransactionID: txn.ID,
	}, nil
}
