// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code helpers

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "match not found",
			wantStr: "[NOT_FOUND] match not found",
		},
		{
			name:    "no_selection_error",
			code:    errors.ErrNoSelection,
			message: "no files selected",
			wantStr: "[NO_SELECTION] no files selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMacroNotFound, "macro %q does not exist", "m-1")
	assert.Equal(t, `[MACRO_NOT_FOUND] macro "m-1" does not exist`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrSourceRead, "read"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrSourceRead, "read %s", "x"))
	})

	t.Run("wrapped_error_is_reachable", func(t *testing.T) {
		base := stderrors.New("permission denied")
		err := errors.Wrapf(base, errors.ErrSourceRead, "cannot read %s", "a.txt")
		require.NotNil(t, err)
		assert.Equal(t, "[SOURCE_READ] cannot read a.txt: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrNothingToUndo, "history empty"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrNothingToUndo, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrNothingToRedo, "")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNothingToUndo))
	assert.Equal(t, errors.ErrNothingToUndo, errors.GetErrorCode(err))
}

func TestGetErrorCodeForPlainError(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRulesetKind, "kind mismatch").
		WithDetail("ruleset", "rs-1").
		WithDetail("rule", "r-2")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "rs-1", details["ruleset"])
	assert.Equal(t, "r-2", details["rule"])

	bare := &errors.DirxError{Code: errors.ErrInternal}
	bare.WithDetail("k", 1)
	assert.Equal(t, 1, bare.Details["k"])
}
