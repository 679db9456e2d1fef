package model

// Order is the payment-order descriptor handed to the checkout widget.
// Amount is in paise (minor units); the ledger and catalog work in whole
// rupees and the conversion happens exactly once, at order creation.
type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
