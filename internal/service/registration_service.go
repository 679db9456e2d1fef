// Package service implements the server-side verifying→confirmed leg of
// the registration pipeline: validate the submission, check the payment
// signature, append to the ledger, then fan out the confirmation event.
package service

import (
	"context"
	"log"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/payment"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/registration"
	"github.com/cache2k25/registration-backend/internal/repository"
)

// RegisterRequest is the POST /registrations payload: the raw submission
// plus the checkout callback fields proving payment.
type RegisterRequest struct {
	registration.Submission
	PaymentID     string `json:"paymentId"`
	OrderID       string `json:"orderId"`
	Signature     string `json:"signature"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// RegistrationService wires the builder, verifier and ledger together
// behind the HTTP surface.
type RegistrationService struct {
	Catalog  *catalog.Catalog
	Builder  *registration.Builder
	Verifier payment.Verifier
	Store    *repository.Ledger
	Events   queue.Publisher // nil disables messaging
}

// Register validates, verifies and persists one registration, returning
// the store-assigned registration ID.
//
// Persistence strictly follows verification: the ledger is only touched
// after the signature checks out.  A ledger failure after that point is
// the post-capture case, logged loudly here and surfaced to the
// handler as a distinct error so operators can reconcile.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	pending, err := s.Builder.Build(req.Submission)
	if err != nil {
		return "", err
	}

	if err := s.Verifier.Verify(req.OrderID, req.PaymentID, req.Signature); err != nil {
		log.Printf("service: rejected unverified payment order=%s payment=%s event=%s", req.OrderID, req.PaymentID, pending.EventID)
		return "", err
	}

	event, err := s.Catalog.Lookup(pending.EventID)
	if err != nil {
		return "", err
	}

	confirmed := model.ConfirmedRegistration{
		Registration:  *pending,
		EventName:     event.Name,
		PaymentID:     req.PaymentID,
		PaymentMethod: req.PaymentMethod,
	}
	id, err := s.Store.Append(ctx, confirmed)
	if err != nil {
		log.Printf("service: ALERT ledger write failed after verified payment payment=%s order=%s: %v", req.PaymentID, req.OrderID, err)
		return "", err
	}

	if s.Events != nil {
		evt := queue.RegistrationConfirmedEvent{
			RegistrationID:  id,
			EventID:         event.ID,
			EventName:       event.Name,
			ParticipantName: pending.ParticipantName,
			Email:           pending.Email,
			TotalAmount:     pending.TotalAmount,
			PaymentID:       req.PaymentID,
		}
		// Messaging is best effort; a broker outage must not fail a
		// paid registration.
		if err := s.Events.PublishRegistrationConfirmed(ctx, evt); err != nil {
			log.Printf("service: publish confirmation for %s failed: %v", id, err)
		}
	}
	return id, nil
}

// ListAll returns every confirmed registration.
func (s *RegistrationService) ListAll(ctx context.Context) ([]model.ConfirmedRegistration, error) {
	return s.Store.ListAll(ctx)
}

// ListByEvent returns the registrations for one event.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]model.ConfirmedRegistration, error) {
	return s.Store.ListByEvent(ctx, eventID)
}
