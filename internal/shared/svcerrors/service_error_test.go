package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantOk   bool
	}{
		{name: "nil input", err: nil},
		{name: "regular error", err: errors.New("x")},
		{
			name:     "direct",
			err:      NewInvalidArgumentError("RPT_1000", "validation failed", nil),
			wantCode: "RPT_1000",
			wantOk:   true,
		},
		{
			name:     "wrapped",
			err:      fmt.Errorf("wrap: %w", NewInternalError("AGG_9000", nil)),
			wantCode: "AGG_9000",
			wantOk:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := As(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.True(t, HasCode(tt.err, tt.wantCode))
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *ServiceError
		category Category
		status   int
		message  string
	}{
		{"invalid argument", NewInvalidArgumentError("ING_1000", "bad batch", cause), CategoryInvalidArgument, 400, "bad batch"},
		{"conflict", NewResourceConflictError("ING_1001", "events already processed", cause), CategoryResourceConflict, 409, "events already processed"},
		{"not found", NewNotFoundError("VIEW_1000", "view not found", cause), CategoryNotFound, 404, "view not found"},
		{"internal", NewInternalError("RPT_9000", cause), CategoryInternal, 500, "internal server error"},
		{"undefined", NewInternalErrorUndefined(cause), CategoryInternal, 500, "internal server error"},
		{"panic", NewInternalErrorPanic(cause), CategoryInternal, 500, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.status, tt.err.HttpStatusCode)
			assert.Equal(t, tt.message, tt.err.Message)
			assert.Equal(t, tt.err.Code+": "+tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
			assert.Equal(t, tt.category == CategoryInternal, tt.err.IsInternalError())
		})
	}
}

func TestHasCode_OtherCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrap: %w", NewNotFoundError("VIEW_1000", "view not found", nil))
	assert.False(t, HasCode(err, "VIEW_1001"))
	assert.False(t, HasCode(errors.New("plain"), "VIEW_1000"))
}

func TestCategory_StatusUnknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 500, Category("something_else").Status())
}
