/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Common service errors
var (
	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrProbeUnsupported indicates a dependency cannot be probed for its kind
	ErrProbeUnsupported = errors.New("probe unsupported")
)

// ValidationError represents a validation error for a specific field.
// It is fatal: the cluster is not reconciled until the spec changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors aggregates every field problem found in one pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// As lets errors.As find the first contained ValidationError.
func (e ValidationErrors) As(target interface{}) bool {
	if len(e) == 0 {
		return false
	}
	if t, ok := target.(**ValidationError); ok {
		*t = e[0]
		return true
	}
	return false
}

// ErrorOrNil returns nil when there are no errors, so callers never return a
// non-nil interface holding an empty list.
func (e ValidationErrors) ErrorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ReservedKeyError is returned when an override writes a key the operator
// manages itself.
type ReservedKeyError struct {
	File string
	Key  string
}

func (e *ReservedKeyError) Error() string {
	return fmt.Sprintf("reserved key %q in %s cannot be overridden", e.Key, e.File)
}

// Unwrap exposes the ReservedKeyError as a ValidationError.
func (e *ReservedKeyError) Unwrap() error {
	return &ValidationError{Field: e.File, Message: fmt.Sprintf("key %q is reserved", e.Key)}
}

// UnresolvedReferenceError is returned when a referenced object does not exist yet.
type UnresolvedReferenceError struct {
	Kind string
	Name string
	Key  string
	Err  error
}

func (e *UnresolvedReferenceError) Error() string {
	ref := fmt.Sprintf("%s/%s", e.Kind, e.Name)
	if e.Key != "" {
		ref = fmt.Sprintf("%s key %q", ref, e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("unresolved reference %s: %v", ref, e.Err)
	}
	return fmt.Sprintf("unresolved reference %s", ref)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return e.Err
}

// NewUnresolvedReferenceError creates a new UnresolvedReferenceError.
func NewUnresolvedReferenceError(kind, name, key string, err error) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{Kind: kind, Name: name, Key: key, Err: err}
}

// TransientPlatformError wraps an API error worth retrying.
type TransientPlatformError struct {
	Operation string
	Object    string
	Err       error
}

func (e *TransientPlatformError) Error() string {
	return fmt.Sprintf("platform error during %s on %s: %v", e.Operation, e.Object, e.Err)
}

func (e *TransientPlatformError) Unwrap() error {
	return e.Err
}

// NewTransientPlatformError creates a new TransientPlatformError.
func NewTransientPlatformError(operation, object string, err error) *TransientPlatformError {
	return &TransientPlatformError{Operation: operation, Object: object, Err: err}
}

// RetriesExhaustedError is returned once the in-place retry budget is spent.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// TimeoutError wraps timeout-related errors with operation context.
type TimeoutError struct {
	Operation string
	Resource  string
	Timeout   time.Duration
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %s on %s timed out after %s: %v", e.Operation, e.Resource, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation, resource string, timeout time.Duration, err error) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Resource:  resource,
		Timeout:   timeout,
		Err:       err,
	}
}

// UnsupportedConfigurationWarning describes a valid but risky combination.
// It never fails a reconcile.
type UnsupportedConfigurationWarning struct {
	Object  string
	Message string
}

func (w UnsupportedConfigurationWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Object, w.Message)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsReservedKey checks if an error is a reserved key error.
func IsReservedKey(err error) bool {
	var rkErr *ReservedKeyError
	return errors.As(err, &rkErr)
}

// IsUnresolvedReference checks if an error is an unresolved reference error.
func IsUnresolvedReference(err error) bool {
	var refErr *UnresolvedReferenceError
	return errors.As(err, &refErr)
}

// IsTransientPlatform checks if an error is a transient platform error.
func IsTransientPlatform(err error) bool {
	var tpErr *TransientPlatformError
	return errors.As(err, &tpErr)
}

// IsRetriesExhausted checks if an error is a retries exhausted error.
func IsRetriesExhausted(err error) bool {
	var reErr *RetriesExhaustedError
	return errors.As(err, &reErr)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.Is(err, ErrTimeout) || errors.As(err, &timeoutErr)
}
