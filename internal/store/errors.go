package store

import "errors"

// Failure conditions surfaced by sources and the resolver. Callers match
// with errors.Is; the wrapping message carries the provider detail.
var (
	// ErrUnsupportedPlatform: the platform value is outside the two
	// recognized families. No source is attempted.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrMissingIdentifier: no usable store or package identifier could be
	// determined for the source.
	ErrMissingIdentifier = errors.New("no usable application identifier")

	// ErrNotFound: the provider responded but indicates the application
	// does not exist there (non-200, or 200 with an empty result set).
	ErrNotFound = errors.New("application not found on store")

	// ErrExtractionFailed: the provider responded 200 with content that
	// matched no known pattern. Distinct from ErrNotFound because the
	// request itself succeeded.
	ErrExtractionFailed = errors.New("no version found in store response")
)
