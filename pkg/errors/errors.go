// Package errors provides the structured error taxonomy shared by the
// GLRM numeric core. Every error in this package is deterministic with
// respect to its inputs: nothing here is transient, so nothing is ever
// retried. Infinite penalties and imputations are sentinel values, not
// errors, and never pass through this package.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ConfigurationError indicates that an unknown loss, multi-loss or
// regularizer identifier reached a dispatch point. It marks a
// build-time contract violation and is never recovered.
type ConfigurationError struct {
	Component string // "loss", "multi_loss", "regularizer"
	Kind      string // the unrecognized identifier
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("glrm: unknown %s function %q", e.Component, e.Kind)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("component", e.Component).
		Str("kind", e.Kind).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(component, kind string) error {
	return errors.WithStack(&ConfigurationError{Component: component, Kind: kind})
}

// InvalidArgumentError indicates a caller bug: an argument outside the
// documented domain of a pure function, e.g. a categorical target index
// outside [0, levels-1].
type InvalidArgumentError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("glrm: %s: invalid argument %q: %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *InvalidArgumentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidArgumentError")
}

// NewInvalidArgumentError creates an InvalidArgumentError with a stack trace.
func NewInvalidArgumentError(op, param, reason string, value interface{}) error {
	return errors.WithStack(&InvalidArgumentError{Op: op, Param: param, Reason: reason, Value: value})
}

// ShapeMismatchError indicates a dimension mismatch between the X
// partitions, the Y archetypes and the declared column schema. It is
// checked once, before any partition work is dispatched.
type ShapeMismatchError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *ShapeMismatchError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("glrm: %s: shape mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError creates a ShapeMismatchError with a stack trace.
func NewShapeMismatchError(op string, expected, got, axis int) error {
	return errors.WithStack(&ShapeMismatchError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// NotFittedError indicates that Predict or Score was called on a model
// whose factor matrices have not been set.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("glrm: %s: this model is not fitted yet. Set the factors before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValueError indicates an argument whose value is unusable, e.g. a
// non-positive period for the periodic loss or a negative weight.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("glrm: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors passthroughs
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when an operation receives no rows or columns.
	ErrEmptyData = New("empty data")
)
