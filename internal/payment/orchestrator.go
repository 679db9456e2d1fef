package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
)

// State is the position of a registration attempt in the payment flow.
type State int

const (
	StateIdle State = iota
	StateInitiating
	StateAwaitingCallback
	StateVerifying
	StateConfirmed
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitiating:
		return "initiating"
	case StateAwaitingCallback:
		return "awaiting_callback"
	case StateVerifying:
		return "verifying"
	case StateConfirmed:
		return "confirmed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// ErrLedgerWrite means payment was verified but the row could not be
// written.  This is the worst failure class: money has moved and no record
// exists.  It must reach operators, never be retried silently.
var ErrLedgerWrite = errors.New("ledger write failed after verified payment")

// ErrCheckoutTimeout means the widget never called back within the
// configured window and the attempt was abandoned.
var ErrCheckoutTimeout = errors.New("checkout timed out awaiting callback")

// Channel is the payment channel the attendee picked.  It is recorded on
// the attempt but not enforced; the widget presents whatever the provider
// supports for the channel.
type Channel string

const (
	ChannelUPI Channel = "upi"
	ChannelQR  Channel = "qr"
)

// CheckoutResult is the tagged outcome of a checkout widget session:
// exactly one of CheckoutSuccess or CheckoutDismissed.
type CheckoutResult interface{ checkoutResult() }

// CheckoutSuccess carries the provider's callback payload.
type CheckoutSuccess struct {
	PaymentID string
	OrderID   string
	Signature string
}

// CheckoutDismissed means the attendee closed the widget without paying.
// It is not an error: the attempt returns to idle and may be restarted.
type CheckoutDismissed struct{}

func (CheckoutSuccess) checkoutResult()   {}
func (CheckoutDismissed) checkoutResult() {}

// Prefill is the contact data handed to the widget so the attendee does
// not retype it.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// CheckoutGateway opens the external checkout widget and blocks until it
// reports a result.  The widget is a black box: the only things that come
// back are a success callback, a dismissal, or a transport error.
type CheckoutGateway interface {
	Open(ctx context.Context, order model.Order, prefill Prefill, channel Channel) (CheckoutResult, error)
}

// Ledger is the slice of the registration store the orchestrator needs.
type Ledger interface {
	Append(ctx context.Context, reg model.ConfirmedRegistration) (string, error)
}

// Orchestrator walks one registration attempt through the payment state
// machine.  Each attempt is independent; the only shared state between
// attempts is the ledger, and the ledger is only ever touched on the
// verifying→confirmed transition.  Nothing here retries: every failure is
// terminal for the attempt and the attendee restarts from idle.
type Orchestrator struct {
	Orders   OrderCreator
	Gateway  CheckoutGateway
	Verifier Verifier
	Store    Ledger
	Catalog  *catalog.Catalog

	// CheckoutTimeout bounds the wait for the widget callback.  Zero
	// means wait indefinitely, matching the provider's own behavior.
	CheckoutTimeout time.Duration
}

// Attempt is the transcript of one run through the state machine.
type Attempt struct {
	State          State
	Pending        *model.Registration
	Order          model.Order
	RegistrationID string
	Err            error
}

// Run drives a pending registration through order creation, checkout and
// verification, appending to the ledger only after the signature checks
// out.  The returned attempt always reflects the final state:
// StateConfirmed with a registration ID, StateIdle after a dismissal
// (not an error), or StateAborted with Err set.
func (o *Orchestrator) Run(ctx context.Context, pending *model.Registration, channel Channel) *Attempt {
	a := &Attempt{State: StateIdle, Pending: pending}

	event, err := o.Catalog.Lookup(pending.EventID)
	if err != nil {
		return a.abort(err)
	}

	a.State = StateInitiating
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := o.Orders.CreateOrder(ctx, pending.TotalAmount, receipt)
	if err != nil {
		if !errors.Is(err, ErrOrderCreation) {
			err = fmt.Errorf("%w: %v", ErrOrderCreation, err)
		}
		return a.abort(err)
	}
	a.Order = order

	a.State = StateAwaitingCallback
	waitCtx := ctx
	if o.CheckoutTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, o.CheckoutTimeout)
		defer cancel()
	}
	prefill := Prefill{Name: pending.ParticipantName, Email: pending.Email, Contact: pending.Phone}
	result, err := o.Gateway.Open(waitCtx, order, prefill, channel)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrCheckoutTimeout
		}
		return a.abort(err)
	}

	switch r := result.(type) {
	case CheckoutDismissed:
		// Clean cancellation: back to idle, ledger untouched.
		a.State = StateIdle
		return a
	case CheckoutSuccess:
		a.State = StateVerifying
		if err := o.Verifier.Verify(r.OrderID, r.PaymentID, r.Signature); err != nil {
			// The provider may have captured the payment even though
			// we cannot verify it; flag for manual reconciliation.
			log.Printf("payment: verification failed for order=%s payment=%s: %v (payment may be captured, reconcile manually)", r.OrderID, r.PaymentID, err)
			return a.abort(err)
		}

		confirmed := model.ConfirmedRegistration{
			Registration:  *pending,
			EventName:     event.Name,
			PaymentID:     r.PaymentID,
			PaymentMethod: string(channel),
		}
		id, err := o.Store.Append(ctx, confirmed)
		if err != nil {
			log.Printf("payment: ALERT ledger write failed for payment=%s order=%s: %v", r.PaymentID, r.OrderID, err)
			return a.abort(fmt.Errorf("%w: %v", ErrLedgerWrite, err))
		}
		a.RegistrationID = id
		a.State = StateConfirmed
		return a
	default:
		return a.abort(fmt.Errorf("unexpected checkout result %T", r))
	}
}

func (a *Attempt) abort(err error) *Attempt {
	a.State = StateAborted
	a.Err = err
	return a
}
