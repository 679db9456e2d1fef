// Package repository implements the durable registration ledger.  These
// sentinel values allow higher layers such as handlers to distinguish
// between different failure scenarios: a missing ledger file maps to an
// empty listing or a 404, while an exhausted ID space is a hard write
// failure that must never be silently swallowed.
package repository

import "errors"

// ErrLedgerNotFound is returned by Export when the ledger file has never
// been initialized.  Read paths that can degrade (ListAll, ListByEvent)
// return an empty result instead.
var ErrLedgerNotFound = errors.New("ledger file not found")

// ErrIDExhausted is returned when Append cannot draw an unused
// registration ID.  With an 8-character random token this only happens if
// the token source is broken; it is surfaced rather than retried forever.
var ErrIDExhausted = errors.New("could not generate a unique registration id")
