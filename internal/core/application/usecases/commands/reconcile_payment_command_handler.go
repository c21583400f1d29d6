package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/payment"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/metrics"
)

const defaultReconcileLockTTL = 30 * time.Second

var (
	// ErrReconciliationInProgress is returned when another instance holds the lock for
	// the same transaction. The caller may retry.
	ErrReconciliationInProgress = errs.NewConflictErrorWithCause(
		"transactionId", "locked", errors.New("reconciliation is in progress"))

	errTransactionRecorded = errors.New("transaction is already recorded")
)

type ReconciliationOutcome string

const (
	// OutcomeApplied means this call recorded the payment and marked the parcel paid.
	OutcomeApplied ReconciliationOutcome = "applied"
	// OutcomeAlreadyProcessed means the transaction had been recorded before.
	OutcomeAlreadyProcessed ReconciliationOutcome = "already-processed"
	// OutcomePending means the gateway has not confirmed the payment yet.
	OutcomePending ReconciliationOutcome = "pending"
	// OutcomeDuplicateCharge means the payment was recorded, but another transaction
	// had paid for the parcel first. The parcel is left as it was.
	OutcomeDuplicateCharge ReconciliationOutcome = "duplicate-charge"
)

// ReconciliationResult describes what a reconcile call did. Payment is set for
// every outcome except pending, Parcel only for applied ones.
type ReconciliationResult struct {
	Outcome ReconciliationOutcome
	Session ports.CheckoutSession
	Payment *payment.Payment
	Parcel  *parcel.Parcel
}

func (r ReconciliationResult) AlreadyProcessed() bool {
	return r.Outcome == OutcomeAlreadyProcessed
}

// ReconcilePaymentCommandHandler applies gateway confirmations exactly once per
// transaction ID.
//
// The payment store's unique key on transaction ID is the source of truth: when two
// deliveries race past the lookup, the loser's insert fails with errs.ErrConflict and
// the handler reports the winner's payment as already processed. The optional Locker
// only keeps the racing work off the database, so an unreachable Redis does not
// stop reconciliation.
//
// Every paid transaction is recorded, even one for a parcel that another checkout
// session already paid for. That charge is reported as OutcomeDuplicateCharge so it
// can be refunded.
//
// Example:
//
//	cmd, _ := NewReconcilePaymentCommand(sessionID)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrUpstreamUnavailable):
//	    // gateway timeout, retry later
//	case err != nil:
//	    return err
//	case result.Outcome == OutcomePending:
//	    // not paid yet
//	}
type ReconcilePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	locker     ports.Locker
	machine    ParcelStateMachine
	clock      Clock
	lockTTL    time.Duration
}

// NewReconcilePaymentCommandHandler builds the handler. locker may be nil.
func NewReconcilePaymentCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	locker ports.Locker,
	machine ParcelStateMachine,
	clock Clock,
) ReconcilePaymentCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		locker:     locker,
		machine:    machine,
		clock:      clock,
		lockTTL:    defaultReconcileLockTTL,
	}
}

func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) (ReconciliationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconciliationResult{}, err
	}

	session, err := h.gateway.RetrieveSession(ctx, cmd.SessionRef())
	if err != nil {
		return ReconciliationResult{}, err
	}

	// Without a transaction ID there is nothing to deduplicate on, and nothing paid.
	if session.TransactionID == "" {
		return h.observe(ReconciliationResult{Outcome: OutcomePending, Session: session}), nil
	}

	if h.locker != nil {
		unlock, lockErr := h.locker.Lock(ctx, "reconcile:"+session.TransactionID, h.lockTTL)
		switch {
		case errors.Is(lockErr, errs.ErrConflict):
			return ReconciliationResult{}, ErrReconciliationInProgress
		case errors.Is(lockErr, errs.ErrUpstreamUnavailable):
			// The unique key still deduplicates; go on without the lease.
		case lockErr != nil:
			return ReconciliationResult{}, lockErr
		default:
			defer func() {
				_ = unlock(context.WithoutCancel(ctx))
			}()
		}
	}

	result, err := h.apply(ctx, session)
	if errors.Is(err, errTransactionRecorded) {
		stored, lookupErr := h.storedPayment(ctx, session.TransactionID)
		if lookupErr == nil {
			return h.observe(ReconciliationResult{Outcome: OutcomeAlreadyProcessed, Session: session, Payment: stored}), nil
		}
		if !errors.Is(lookupErr, errs.ErrObjectNotFound) {
			return ReconciliationResult{}, errors.Join(err, lookupErr)
		}
	}
	if err != nil {
		return ReconciliationResult{}, err
	}

	return h.observe(result), nil
}

func (h ReconcilePaymentCommandHandler) apply(ctx context.Context, session ports.CheckoutSession) (ReconciliationResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconciliationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payments := uow.PaymentRepository()

	stored, err := payments.GetByTransactionID(ctx, session.TransactionID)
	if err == nil {
		return ReconciliationResult{Outcome: OutcomeAlreadyProcessed, Session: session, Payment: stored}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ReconciliationResult{}, err
	}

	if !session.IsPaid() {
		return ReconciliationResult{Outcome: OutcomePending, Session: session}, nil
	}

	receipt, err := receiptOf(session)
	if err != nil {
		return ReconciliationResult{}, err
	}

	p, err := payment.NewPayment(kernel.NewUUID(), receipt, h.clock())
	if err != nil {
		return ReconciliationResult{}, err
	}

	if err = payments.Add(ctx, p); errors.Is(err, errs.ErrConflict) {
		return ReconciliationResult{}, fmt.Errorf("%w: %w", errTransactionRecorded, err)
	}
	if err != nil {
		return ReconciliationResult{}, err
	}

	result := ReconciliationResult{Outcome: OutcomeApplied, Session: session, Payment: p}

	paid, err := h.machine.MarkPaid(ctx, uow, receipt.ParcelID, receipt.TrackingID)
	switch {
	case errors.Is(err, parcel.ErrParcelAlreadyPaid):
		result.Outcome = OutcomeDuplicateCharge
	case err != nil:
		return ReconciliationResult{}, err
	default:
		result.Parcel = paid
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconciliationResult{}, err
	}

	return result, nil
}

// storedPayment reads the payment in a fresh transaction; the one that hit the
// unique violation is already aborted.
func (h ReconcilePaymentCommandHandler) storedPayment(ctx context.Context, transactionID string) (*payment.Payment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.PaymentRepository().GetByTransactionID(ctx, transactionID)
}

func (h ReconcilePaymentCommandHandler) observe(result ReconciliationResult) ReconciliationResult {
	metrics.ReconciliationsTotal.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

// receiptOf validates the metadata the checkout was opened with.
func receiptOf(session ports.CheckoutSession) (payment.Receipt, error) {
	parcelID, parcelErr := kernel.UUIDFromString(session.ParcelID)
	trackingID, trackingErr := tracking.ParseID(session.TrackingID)
	email, emailErr := kernel.NewEmail(session.CustomerEmail)
	amount, amountErr := kernel.NewMoneyFromMinorUnits(session.AmountMinor, session.Currency)

	if err := errors.Join(parcelErr, trackingErr, emailErr, amountErr); err != nil {
		return payment.Receipt{}, err
	}

	return payment.Receipt{
		TransactionID: session.TransactionID,
		ParcelID:      parcelID,
		TrackingID:    trackingID,
		ParcelName:    session.ParcelName,
		CustomerEmail: email,
		Amount:        amount,
	}, nil
}
