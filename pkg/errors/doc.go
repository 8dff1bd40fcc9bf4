// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The upstream failure taxonomy maps onto three codes: ErrCodeUnavailable for
// transport failures and non-2xx answers, ErrCodeMalformedResponse for payloads
// that do not decode, and ErrCodeMissingData for absent measurements.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "instrument list request failed",
//	    cause,
//	    map[string]any{
//	        "url":    url,
//	        "status": resp.StatusCode(),
//	    },
//	)
package errors
