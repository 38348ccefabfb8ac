package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLogger_AddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentLedger, Output: &buf})

	l.InfoContext(context.Background(), "Transaction created", FieldTransactionID, "tx_1")
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "transaction_id=tx_1") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered, got %q", out)
	}
}

func TestFields_WithTransaction(t *testing.T) {
	tx := core.Transaction{ID: "tx_9", Amount: decimal.RequireFromString("4.5"), CategoryID: "cat_2", Type: core.Income}
	f := NewFields().WithTransaction(tx).WithError(nil)

	if f[FieldAmount] != "4.50" || f[FieldType] != "INCOME" || f[FieldTransactionID] != "tx_9" {
		t.Fatalf("unexpected fields %v", f)
	}
	if _, ok := f[FieldError]; ok {
		t.Fatal("nil error should not be recorded")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatal("ToSlice should emit key/value pairs")
	}
}

func TestMiddleware_FromContext(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Component: ComponentHTTP, Output: &buf})

	var got *Logger
	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req-42" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
			got.InfoContext(r.Context(), "inside")
		})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.Component() != ComponentHTTP {
		t.Fatalf("expected http logger from context, got %+v", got)
	}
	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Fatalf("expected request id in output, got %q", buf.String())
	}
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatal("expected fallback logger outside requests")
	}
}

func TestStructuredLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf}))
	r := httptest.NewRequest(http.MethodPost, "/api/transactions", nil)

	sl.LogHTTPEnd(context.Background(), r, 422, 3, "10.0.0.1")
	sl.LogError(context.Background(), "save failed", errors.New("disk full"), ComponentStorage, OpCreate, nil)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status_code=422") {
		t.Fatalf("expected warn record for 4xx, got %q", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, `error="disk full"`) {
		t.Fatalf("expected error record, got %q", out)
	}
}
