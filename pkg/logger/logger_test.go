package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	defer SetOutput(&buf)()
	defer Init("info")

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if strings.Contains(out, "info-msg") {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if !strings.Contains(out, "warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "error-msg") {
		t.Fatalf("error message missing: %q", out)
	}

	Init("info")
	buf.Reset()
	Infof("info-msg")
	if !strings.Contains(buf.String(), "info-msg") {
		t.Fatalf("info message expected at info level, got: %q", buf.String())
	}
}

func TestLinesAreStructured(t *testing.T) {
	var buf bytes.Buffer
	defer SetOutput(&buf)()
	Init("info")

	Infof("listening on %s", ":5000")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "listening on :5000" {
		t.Fatalf("message = %v", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected a time field: %v", entry)
	}
}

func TestFatalfUsesExitFunc(t *testing.T) {
	var buf bytes.Buffer
	defer SetOutput(&buf)()

	code := -1
	defer SetExitFunc(func(c int) { code = c })()

	Init("error")
	Fatalf("boom: %d", 42)

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "boom: 42") {
		t.Fatalf("fatal message missing: %q", buf.String())
	}
	Init("info")
}
