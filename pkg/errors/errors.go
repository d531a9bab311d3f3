// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure for callers and for HTTP status mapping.
type ErrorCode string

// Codes shared by the CLI, the HTTP API and the plugin transport.
const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
	ErrCodeInternal          ErrorCode = "INTERNAL"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable is returned while a component is not started or
	// already torn down.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeUnsupportedFormat rejects a rendering identifier outside the
	// fixed format set.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// StructuredError carries a code, a message, an optional cause and
// optional key/value context for logs and API error details.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func newError(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *StructuredError {
	return newError(code, message, nil, nil)
}

// NewWithContext is New with context attached.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return newError(code, message, nil, context)
}

// Wrap returns an error with code and message whose cause is err.
func Wrap(code ErrorCode, message string, err error) *StructuredError {
	return newError(code, message, err, nil)
}

// WrapWithContext is Wrap with context attached.
func WrapWithContext(code ErrorCode, message string, err error, context map[string]any) *StructuredError {
	return newError(code, message, err, context)
}

func (e *StructuredError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Is matches any StructuredError with the same code, so sentinels such as
// snapshot.ErrUnsupportedFormat match errors carrying extra context.
func (e *StructuredError) Is(target error) bool {
	t, ok := target.(*StructuredError)
	return ok && t != nil && t.Code == e.Code
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
