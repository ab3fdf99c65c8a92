package aag

import "errors"

// Sentinel errors for the fatal parse failures the pipeline cannot recover
// from. UnparseableRecord, OrderSizeMismatch, and CyclicSupport are handled
// downstream (circuit/support/feature/order packages) by skipping or
// falling back, not by returning an error here.
var (
	// ErrMalformedHeader is returned when the first non-empty line is
	// missing the "aag" prefix or has fewer than six fields.
	ErrMalformedHeader = errors.New("aag: malformed header")

	// ErrTruncatedBlock is returned when the file has fewer lines than
	// the header's I+L+O+A promises.
	ErrTruncatedBlock = errors.New("aag: truncated block")
)
