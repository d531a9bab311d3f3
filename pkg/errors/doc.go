// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeUnsupportedFormat,
//	    "unsupported rendering format",
//	    map[string]any{
//	        "format":    id,
//	        "supported": snapshot.SupportedFormats(),
//	    },
//	)
//
// A StructuredError matches any other StructuredError with the same code
// under errors.Is, so callers can compare against package-level sentinels.
package errors
