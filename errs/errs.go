// Package errs defines the error taxonomy shared by every lindel package.
//
// Call sites wrap one of the three sentinels with fmt.Errorf("%w: ...", Err*)
// so that callers can test the category with errors.Is while still getting a
// message that names the offending value.
package errs

import "errors"

var (
	// ErrDomain reports that a descriptor is inadmissible: an unsupported
	// (W, N) combination, a non-constant bind argument, a float-decode
	// request for an ineligible (W, N), or an unknown codec kind.
	//
	// DomainError is raised at bind time. It is user-visible and is never
	// retried.
	ErrDomain = errors.New("domain error")

	// ErrInput reports that a runtime input violates the call's contract,
	// currently: a null lane inside an otherwise non-null tuple.
	//
	// InputError is raised at execute time and is fatal for the affected
	// row (see the batch package's null-row policy).
	ErrInput = errors.New("input error")

	// ErrInternal reports a broken codec invariant, e.g. a code-word
	// width outside {8,16,32,64,128}. It should never surface in
	// practice; its presence indicates a bug in this module.
	ErrInternal = errors.New("internal error")
)
