package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITS-ERP/qms-risk-backend/internal/middleware"
)

// capture returns a Logger writing JSON records into buf.
func capture(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, nil))}
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestFieldHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := capture(&buf)

	logger.Info("gateway call settled",
		Service("risk"),
		Tenant(42),
		Queue("rpc_get_receives"),
		Domain("inventory"),
		RiskName("Penerimaan barang reject"),
		RiskUser("Industry"),
		Error(errors.New("broker gone")),
		Duration(125),
	)

	rec := lastRecord(t, &buf)
	assert.Equal(t, "risk", rec[FieldService])
	assert.Equal(t, float64(42), rec[FieldTenantID])
	assert.Equal(t, "rpc_get_receives", rec[FieldQueue])
	assert.Equal(t, "inventory", rec[FieldDomain])
	assert.Equal(t, "Penerimaan barang reject", rec[FieldRiskName])
	assert.Equal(t, "Industry", rec[FieldRiskUser])
	assert.Equal(t, "broker gone", rec[FieldError])
	assert.Equal(t, float64(125), rec[FieldDuration])
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := capture(&buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-abc-123")
	logger.WithContext(ctx).Info("risk report assembled", Tenant(7))

	rec := lastRecord(t, &buf)
	assert.Equal(t, "req-abc-123", rec["request_id"])
	assert.Equal(t, float64(7), rec[FieldTenantID])
}

func TestWithContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := capture(&buf)

	logger.WithContext(context.Background()).Info("no request in flight")

	rec := lastRecord(t, &buf)
	_, found := rec["request_id"]
	assert.False(t, found)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestWithPreservesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := capture(&buf).With(Service("risk"))

	logger.Info("started")

	rec := lastRecord(t, &buf)
	assert.Equal(t, "risk", rec[FieldService])
}
