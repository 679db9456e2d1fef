// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

import "context"

// QueueName is the durable queue confirmation events are published to.
const QueueName = "registration.confirmed"

// RegistrationConfirmedEvent is published after a registration row has
// been written to the ledger.  It carries enough for downstream consumers
// to log or notify without re-reading the ledger file.
type RegistrationConfirmedEvent struct {
	RegistrationID  string `json:"registration_id"`
	EventID         string `json:"event_id"`
	EventName       string `json:"event_name"`
	ParticipantName string `json:"participant_name"`
	Email           string `json:"email"`
	TotalAmount     int    `json:"total_amount"`
	PaymentID       string `json:"payment_id"`
}

// Publisher sends confirmation events to the broker.  Implementations
// must be safe to call from concurrent request handlers.
type Publisher interface {
	PublishRegistrationConfirmed(ctx context.Context, evt RegistrationConfirmedEvent) error
}
