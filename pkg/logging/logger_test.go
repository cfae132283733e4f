package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("gaia-test", "1.0.0", WarnLevel)
	logger.SetOutput(&buf)

	ctx := context.Background()
	logger.Debug(ctx, "[TEST] debug", nil)
	logger.Info(ctx, "[TEST] info", nil)
	logger.Warn(ctx, "[TEST] warn", Fields{"domain": "soil"})
	logger.Error(ctx, "[TEST] error", nil, errors.New("boom"))

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "WARN" || entries[0].Fields["domain"] != "soil" {
		t.Errorf("unexpected warn entry: %+v", entries[0])
	}
	if entries[1].Error != "boom" {
		t.Errorf("Error = %q, want boom", entries[1].Error)
	}
	if !strings.HasSuffix(entries[1].File, "logger_test.go") {
		t.Errorf("File = %q, want caller in logger_test.go", entries[1].File)
	}
}

func TestStructuredLogger_RequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("gaia-test", "1.0.0", DebugLevel)
	logger.SetOutput(&buf)

	ctx := WithRequestID(context.Background(), "req-123")
	logger.WithFields(Fields{"domain": "ocean"}).Info(ctx, "[TEST] hello", Fields{"station": "46026"})

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", e.RequestID)
	}
	if e.Fields["domain"] != "ocean" || e.Fields["station"] != "46026" {
		t.Errorf("Fields = %v", e.Fields)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
