package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/samvad-hq/pkgnews/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := InitWriter(&config.Config{LogLevel: "info"}, &buf)
	if err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("entry published", "entry_meta", map[string]any{"id": "abc"})
	_ = Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["msg"] != "entry published" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if _, ok := rec["ts"]; !ok {
		t.Errorf("missing ts field: %v", rec)
	}
	meta, ok := rec["entry_meta"].(map[string]any)
	if !ok || meta["id"] != "abc" {
		t.Errorf("entry_meta = %v", rec["entry_meta"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHelpersNoopBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
