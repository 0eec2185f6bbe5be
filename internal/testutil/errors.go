package testutil

import "errors"

// ErrSimulated is a sentinel error for failing table sources in tests.
var ErrSimulated = errors.New("simulated error for testing")
