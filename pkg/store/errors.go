package store

import "errors"

var (
	// ErrStoreUnavailable reports that the backing database cannot be
	// reached or failed at the transport level. It is fatal to a run.
	ErrStoreUnavailable = errors.New("graph store unavailable")

	// ErrConstraintViolation reports a rejected write, such as an edge
	// endpoint that does not exist.
	ErrConstraintViolation = errors.New("graph store constraint violation")
)
