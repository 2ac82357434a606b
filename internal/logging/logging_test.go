package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "quizgen.log")
	logger, closeFn, err := New(Options{Level: "warn", File: file, Console: &console})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("bank saved")
	logger.Warn("bank load failed")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if strings.Contains(console.String(), "bank saved") {
		t.Fatalf("expected info to be filtered from console: %q", console.String())
	}
	if !strings.Contains(console.String(), "bank load failed") {
		t.Fatalf("expected warn on console: %q", console.String())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected info and warn in file, got %d lines", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if entry["msg"] != "bank load failed" || entry["level"] != "WARN" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected level error")
	}
}
