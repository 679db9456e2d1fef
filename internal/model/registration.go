package model

// Registration is a validated but not-yet-paid registration.  It exists
// only in request scope: the builder produces it, the payment flow either
// promotes it to a ConfirmedRegistration or discards it.  TotalAmount is
// always computed from the catalog price, never taken from client input.
type Registration struct {
	EventID         string       `json:"eventId"`
	ParticipantName string       `json:"participantName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	College         string       `json:"college,omitempty"`
	TeamMembers     []TeamMember `json:"teamMembers,omitempty"`
	GameIDs         []GameID     `json:"gameIds,omitempty"`
	TotalAmount     int          `json:"totalAmount"`
}

// ConfirmedRegistration is the durable form of a registration: payment has
// been verified and a row exists (or is about to exist) in the ledger.
// RegistrationID and RegistrationDate are assigned by the store at write
// time and must be empty on input to Append.
//
// PaymentStatus is always "completed"; rows for pending or failed payments
// are never written.
type ConfirmedRegistration struct {
	Registration
	RegistrationID   string `json:"registrationId"`
	EventName        string `json:"eventName"`
	PaymentID        string `json:"paymentId"`
	PaymentMethod    string `json:"paymentMethod,omitempty"` // "upi" or "qr", a recorded preference
	PaymentStatus    string `json:"paymentStatus"`
	RegistrationDate string `json:"registrationDate"`
}

// PaymentStatusCompleted is the only payment status ever persisted.
const PaymentStatusCompleted = "completed"
