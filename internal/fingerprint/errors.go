package fingerprint

import "errors"

var (
	// ErrConstraintConflict reports caller-pinned values that cannot
	// coexist (e.g. iOS with Firefox). The conflict is surfaced, never
	// silently resolved in favour of one pin.
	ErrConstraintConflict = errors.New("constraint conflict")

	// ErrInvalidArgument reports a non-positive batch count or a pinned
	// key that is not present in the catalog.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEntropyUnavailable reports that the OS entropy source could not
	// seed a generator. Environment-level, not expected in normal runs.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)
