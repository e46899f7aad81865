package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithFieldScopesToContext(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "voltcli", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithCommand(context.Background(), "send")
	ctx = logg.WithField(ctx, "destination_kind", "bolt11")
	logg.Info(ctx, "dispatching payment")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if line["command"] != "send" || line["destination_kind"] != "bolt11" {
		t.Fatalf("missing scoped fields: %v", line)
	}
	if line["service"] != "voltcli" {
		t.Fatalf("missing service field: %v", line)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "voltcli", Level: zerolog.InfoLevel, Output: &buf})
	logg.Debug(context.Background(), "noise")

	if buf.Len() != 0 {
		t.Fatalf("debug line should be suppressed, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty should default to info")
	}
	if ParseLevel("DEBUG") != zerolog.DebugLevel {
		t.Fatal("case-insensitive parse failed")
	}
	if ParseLevel("bogus") != zerolog.InfoLevel {
		t.Fatal("unknown should default to info")
	}
}
