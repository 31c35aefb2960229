// Package errors provides standardized error handling for admindash.
// It defines the error kinds raised by the query engine, the navigator and the
// surrounding configuration and dataset layers, plus helpers for consistent
// creation, wrapping and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Query configuration kinds
	InvalidSortField
	InvalidFilterKey
	// Navigation kinds
	NotAFolder
	NotInCurrentLevel
	PathNotFound
	AlreadyAtRoot
	InvalidTree
	// Config kinds
	InvalidConfig
	ConfigNotFound
	// Dataset kinds
	DatasetLoadFailed
	InvalidInputData
)

var kindNames = map[ErrorKind]string{
	Unknown:           "unknown",
	InvalidSortField:  "invalid_sort_field",
	InvalidFilterKey:  "invalid_filter_key",
	NotAFolder:        "not_a_folder",
	NotInCurrentLevel: "not_in_current_level",
	PathNotFound:      "path_not_found",
	AlreadyAtRoot:     "already_at_root",
	InvalidTree:       "invalid_tree",
	InvalidConfig:     "invalid_config",
	ConfigNotFound:    "config_not_found",
	DatasetLoadFailed: "dataset_load_failed",
	InvalidInputData:  "invalid_input_data",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrAlreadyAtRoot = NewNavigationError("already at root", "/", AlreadyAtRoot)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrInvalidInput  = NewInvalidInputError("invalid input data", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// QueryError is raised when a query names a field or filter the engine does not know.
// These are caller configuration mistakes rather than data errors.
type QueryError struct {
	ApplicationError
	name string
}

// NewQueryError creates a new query configuration error
func NewQueryError(msg string, name string, kind ErrorKind) *QueryError {
	return &QueryError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		name: name,
	}
}

// Error returns the query error message
func (e *QueryError) Error() string {
	if e.name != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.name)
	}
	return e.ApplicationError.Error()
}

// Name returns the offending field or filter key
func (e *QueryError) Name() string {
	return e.name
}

// NavigationError reports a rejected navigator transition. State is unchanged
// whenever one of these is returned.
type NavigationError struct {
	ApplicationError
	target string
}

// NewNavigationError creates a new navigation error
func NewNavigationError(msg string, target string, kind ErrorKind) *NavigationError {
	return &NavigationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		target: target,
	}
}

// Error returns the navigation error message
func (e *NavigationError) Error() string {
	if e.target != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.target, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.target)
	}
	return e.ApplicationError.Error()
}

// Target returns the node id or path the transition was aimed at
func (e *NavigationError) Target() string {
	return e.target
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// DatasetError represents failures loading a seed file
type DatasetError struct {
	ApplicationError
	path string
}

// NewDatasetError creates a new dataset error
func NewDatasetError(msg string, path string, err error) *DatasetError {
	return &DatasetError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DatasetLoadFailed,
		},
		path: path,
	}
}

// Error returns the dataset error message
func (e *DatasetError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the seed file path associated with the error
func (e *DatasetError) Path() string {
	return e.path
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain, or
// Unknown when nothing in the chain carries a kind.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind reports whether any error in err's chain carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsInvalidSortField checks if the error is an unknown sort field error
func IsInvalidSortField(err error) bool { return IsKind(err, InvalidSortField) }

// IsInvalidFilterKey checks if the error is an unknown filter key error
func IsInvalidFilterKey(err error) bool { return IsKind(err, InvalidFilterKey) }

// IsNotAFolder checks if a transition targeted a file where a folder was needed
func IsNotAFolder(err error) bool { return IsKind(err, NotAFolder) }

// IsNotInCurrentLevel checks if a transition targeted a node outside the current level
func IsNotInCurrentLevel(err error) bool { return IsKind(err, NotInCurrentLevel) }

// IsPathNotFound checks if a jump targeted an unreachable path
func IsPathNotFound(err error) bool { return IsKind(err, PathNotFound) }

// IsAlreadyAtRoot checks if an ascend was attempted at the root
func IsAlreadyAtRoot(err error) bool { return IsKind(err, AlreadyAtRoot) }

// IsInvalidTree checks if a node tree violated its structural invariants
func IsInvalidTree(err error) bool { return IsKind(err, InvalidTree) }

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsQueryError checks if the error is a query configuration error
func IsQueryError(err error) bool {
	var queryErr *QueryError
	return errors.As(err, &queryErr)
}

// IsNavigationError checks if the error is a rejected navigator transition
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// IsDatasetError checks if the error is a dataset load error
func IsDatasetError(err error) bool {
	var dsErr *DatasetError
	return errors.As(err, &dsErr)
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
