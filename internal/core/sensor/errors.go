package sensor

import "errors"

var (
	// ErrNotReady signals that the snapshot does not carry the device
	// identity yet. Setup should be retried later, not failed.
	ErrNotReady = errors.New("device id not available")

	// ErrKeyNotFound signals that a key declared at setup time has
	// since vanished from the snapshot. A read fails instead of
	// substituting a guessed value.
	ErrKeyNotFound = errors.New("status key not found")

	// ErrZeroTotal signals a filter percentage with a zero denominator.
	ErrZeroTotal = errors.New("filter total is zero")
)
