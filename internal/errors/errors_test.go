package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	// Test unwrapping
	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestQueryError(t *testing.T) {
	sortErr := NewQueryError("unknown sort field", "colour", InvalidSortField)
	assert.Equal(t, `unknown sort field: "colour"`, sortErr.Error())
	assert.Equal(t, "colour", sortErr.Name())
	assert.Equal(t, InvalidSortField, sortErr.Kind())

	assert.True(t, IsInvalidSortField(sortErr))
	assert.False(t, IsInvalidFilterKey(sortErr))
	assert.True(t, IsQueryError(sortErr))

	filterErr := NewQueryError("no predicate registered for filter", "region", InvalidFilterKey)
	assert.True(t, IsInvalidFilterKey(filterErr))
	assert.False(t, IsNavigationError(filterErr))

	var qe *QueryError
	assert.True(t, As(fmt.Errorf("activity screen: %w", filterErr), &qe))
	assert.Equal(t, "region", qe.Name())
}

func TestNavigationError(t *testing.T) {
	tests := []struct {
		name  string
		kind  ErrorKind
		check func(error) bool
	}{
		{"not a folder", NotAFolder, IsNotAFolder},
		{"not in current level", NotInCurrentLevel, IsNotInCurrentLevel},
		{"path not found", PathNotFound, IsPathNotFound},
		{"already at root", AlreadyAtRoot, IsAlreadyAtRoot},
		{"invalid tree", InvalidTree, IsInvalidTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNavigationError(tt.name, "/Documents", tt.kind)
			assert.Equal(t, tt.name+": /Documents", err.Error())
			assert.Equal(t, "/Documents", err.Target())
			assert.True(t, tt.check(err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", err)))
			assert.True(t, IsNavigationError(err))
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}

	assert.Equal(t, "already at root: /", ErrAlreadyAtRoot.Error())
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "logging.level", InvalidConfig, nil)
	assert.Equal(t, "invalid value: logging.level", configErr.Error())
	assert.Equal(t, "logging.level", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "logging.level", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: logging.level: value out of range", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestDatasetError(t *testing.T) {
	base := errors.New("yaml: line 3: did not find expected key")
	dsErr := NewDatasetError("parse seed file", "/tmp/activity.yaml", base)
	assert.Equal(t, "parse seed file: /tmp/activity.yaml: yaml: line 3: did not find expected key", dsErr.Error())
	assert.Equal(t, "/tmp/activity.yaml", dsErr.Path())
	assert.Equal(t, DatasetLoadFailed, KindOf(dsErr))
	assert.True(t, IsDatasetError(dsErr))
	assert.True(t, Is(dsErr, base))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	dsErr := NewDatasetError("load seed", "/data/files.yaml", baseErr)
	configErr := NewConfigError("config error", "data.dir", InvalidConfig, dsErr)

	assert.Equal(t, "config error: data.dir: load seed: /data/files.yaml: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))

	// KindOf reports the outermost classified error; IsKind searches the chain.
	assert.Equal(t, InvalidConfig, KindOf(configErr))
	assert.True(t, IsKind(configErr, DatasetLoadFailed))
	assert.True(t, IsDatasetError(configErr))

	assert.Equal(t, Unknown, KindOf(baseErr))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("unknown role", nil).WithContext("role", "owner")
	assert.Equal(t, "unknown role", err.Error())
	assert.Equal(t, "owner", err.Context()["role"])
	assert.True(t, IsInvalidInputError(err))
	assert.Equal(t, InvalidInputData, ErrInvalidInput.Kind())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "invalid_sort_field", InvalidSortField.String())
	assert.Equal(t, "already_at_root", AlreadyAtRoot.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}
