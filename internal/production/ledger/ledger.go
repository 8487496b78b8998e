// Package ledger maintains the per-lot map of variant id to bound QR code
// and enforces the one-code-per-variant rule. It is pure in-memory state;
// the scan workflow owns persistence.
package ledger

import "errors"

// Binding conflicts. Both are operator-recoverable: the caller reports them
// and changes nothing.
var (
	ErrAlreadyBound  = errors.New("variant is already bound to a different code")
	ErrDuplicateCode = errors.New("code is already bound to another variant")
)

// Entry is the value stored per variant: the bound QR text and the quantity
// the operator declared when the binding was created.
type Entry struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// Ledger maps variant id to its binding entry.
type Ledger map[string]Entry

// IsBound reports whether the variant has a binding entry.
func (l Ledger) IsBound(variantID string) bool {
	_, ok := l[variantID]
	return ok
}

// Owner returns the variant id currently holding code, if any.
func (l Ledger) Owner(code string) (string, bool) {
	for id, e := range l {
		if e.Code == code {
			return id, true
		}
	}
	return "", false
}

// Bind records code for the variant. Rebinding the same code is idempotent
// and returns the existing entry unchanged. A different code on an already
// bound variant fails with ErrAlreadyBound; a code held by another variant
// fails with ErrDuplicateCode.
func (l Ledger) Bind(variantID, code string, quantity int) (Entry, error) {
	if existing, ok := l[variantID]; ok {
		if existing.Code == code {
			return existing, nil
		}
		return Entry{}, ErrAlreadyBound
	}
	if owner, ok := l.Owner(code); ok && owner != variantID {
		return Entry{}, ErrDuplicateCode
	}
	e := Entry{Code: code, Quantity: quantity}
	l[variantID] = e
	return e, nil
}

// VerifyResult is the outcome of comparing a scanned code against a binding.
type VerifyResult int

const (
	Match VerifyResult = iota
	Mismatch
)

// Verify compares code against the variant's binding. An unbound variant
// always matches: there is nothing to compare against, and deciding whether
// that means "bind now" is the workflow's job.
func (l Ledger) Verify(variantID, code string) VerifyResult {
	e, ok := l[variantID]
	if !ok {
		return Match
	}
	if e.Code == code {
		return Match
	}
	return Mismatch
}

// GlobalResult is the outcome of the best-effort cross-lot uniqueness check.
// Unknown means the lookup could not be completed; the workflow proceeds on
// Unknown so a flaky lookup never blocks production.
type GlobalResult int

const (
	GlobalUnknown GlobalResult = iota
	GlobalMatch
	GlobalNoMatch
)
