package vecdb

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_CapturesOperations(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	db, err := New(2, WithLogger(NewLogger(handler)))
	require.NoError(t, err)

	require.NoError(t, db.Insert("a", []float32{1, 2}))
	assert.Contains(t, buf.String(), "insert completed")
	assert.Contains(t, buf.String(), "id=a")

	buf.Reset()
	require.Error(t, db.Insert("b", []float32{1}))
	assert.Contains(t, buf.String(), "insert failed")
	assert.Contains(t, buf.String(), "dimension mismatch")

	buf.Reset()
	_, err = db.Search([]float32{1, 2}, 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "search completed")
	assert.Contains(t, buf.String(), "results=1")
}

func TestLogger_NilHandlerDefaults(t *testing.T) {
	logger := NewLogger(nil)
	require.NotNil(t, logger.Logger)
}

func TestNoopLogger_Discards(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
