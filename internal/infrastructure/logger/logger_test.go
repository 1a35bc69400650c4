package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "info", Format: "json", Service: "stockledger"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("stock_card_id", "card-1").Msg("line item recorded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected debug line to be filtered, got %d lines: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["message"] != "line item recorded" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
	if entry["service"] != "stockledger" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["stock_card_id"] != "card-1" {
		t.Fatalf("expected stock_card_id field, got %v", entry["stock_card_id"])
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected timestamp field")
	}
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "debug", Format: "console"}, &buf)

	log.Debug().Msg("replaying card")

	if !strings.Contains(buf.String(), "replaying card") {
		t.Fatalf("expected console output to contain message, got %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected non-JSON console output, got %q", buf.String())
	}
}
