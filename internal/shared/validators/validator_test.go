package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewRequest struct {
	Report   string `json:"report" validate:"required"`
	PageSize int    `json:"pageSize,omitempty" validate:"omitempty,min=1"`
	Internal string `json:"-" validate:"required"`
}

func TestNewJSON_UsesJSONNames(t *testing.T) {
	t.Parallel()

	err := NewJSON().Struct(viewRequest{PageSize: -1})
	require.Error(t, err)
	assert.Equal(t, "report (required), pageSize (min), Internal (required)", Describe(err))
}

func TestNew_UsesStructNames(t *testing.T) {
	t.Parallel()

	err := New().Struct(viewRequest{Internal: "x"})
	require.Error(t, err)
	assert.Equal(t, "Report (required)", Describe(err))
}

func TestDescribe_NotValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Describe(errors.New("boom")))
	assert.Empty(t, Describe(nil))
}
