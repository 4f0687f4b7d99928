package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := sonic.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_WritesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "smfc-manager", Version: "test", Output: &buf})

	logger.Debug("hidden")
	logger.Named("usecase.squad").Info("squad generated", "players", 14, "err", errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry above debug level, got %d", len(entries))
	}
	entry := entries[0]
	if entry["msg"] != "squad generated" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["service"] != "smfc-manager" || entry["version"] != "test" {
		t.Fatalf("missing base fields: %+v", entry)
	}
	if entry["component"] != "usecase.squad" {
		t.Fatalf("unexpected component: %v", entry["component"])
	}
	if entry["players"] != float64(14) {
		t.Fatalf("unexpected players field: %v", entry["players"])
	}
	if entry["err"] != "boom" {
		t.Fatalf("unexpected err field: %v", entry["err"])
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "roster source degraded")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id: %v", entries[0]["trace_id"])
	}
	if entries[0]["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id: %v", entries[0]["span_id"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestSetMirror_ReceivesEnabledEntries(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := New(Options{Level: LevelInfo, Output: &bytes.Buffer{}})
	logger.Debug("skipped")
	logger.Warn("sheet fetch slow")

	if len(got) != 1 || got[0] != "warn:sheet fetch slow" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}
}
