package loggers

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", FormatJSON)
	require.NoError(t, err)

	logger.Debug().Msg("dropped")
	logger.Info().Str(FieldReport, "decode-time").Msg("seeded report history")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "decode-time", line[FieldReport])
	assert.Equal(t, "seeded report history", line["message"])
}

func TestNewWithWriter_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "debug", FormatConsole)
	require.NoError(t, err)

	logger.Info().Msg("view created")
	assert.Contains(t, buf.String(), "view created")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := NewWithWriter(&bytes.Buffer{}, "loud", FormatJSON)
	assert.Error(t, err)
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", FormatJSON)
	require.NoError(t, err)

	Ctx(logger.WithContext(context.Background())).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	// a context without a logger must not panic
	Ctx(context.Background()).Info().Msg("ignored")
}
