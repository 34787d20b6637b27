package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_DevIsTextAndDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dev", &buf).With("component", "test")

	log.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "component=test")
	assert.NotContains(t, buf.String(), "request_id")
}
