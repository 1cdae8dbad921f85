package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" Info ", InfoLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLoggerWritesEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("graph built", Stage("build"), Count(12))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, want INFO", entry.Level)
	}
	if entry.Message != "graph built" {
		t.Errorf("msg = %q", entry.Message)
	}
	if entry.Fields["stage"] != "build" {
		t.Errorf("stage field = %v", entry.Fields["stage"])
	}
	// JSON numbers decode as float64
	if entry.Fields["count"] != float64(12) {
		t.Errorf("count field = %v", entry.Fields["count"])
	}
	if _, err := time.Parse(time.RFC3339Nano, entry.Time); err != nil {
		t.Errorf("time %q is not RFC3339Nano: %v", entry.Time, err)
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below WARN, got %q", buf.String())
	}

	logger.Warn("shown")
	logger.Error("shown")
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}

	buf.Reset()
	logger.SetLevel(DebugLevel)
	logger.Debug("now visible")
	if buf.Len() == 0 {
		t.Error("SetLevel(DebugLevel) did not enable debug output")
	}
}

func TestWithSharesLevelAndPresetsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(RunID("abc"), Component("loader"))

	child.Info("loaded", Count(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Fields["run_id"] != "abc" || entry.Fields["component"] != "loader" {
		t.Errorf("preset fields missing: %v", entry.Fields)
	}

	buf.Reset()
	parent.SetLevel(ErrorLevel)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("child should follow parent level, got %q", buf.String())
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v, want ERROR", child.GetLevel())
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, DebugLevel)

	logger.Warn("skipped value", Column("Year"), Row(7), String("value", "n a"))

	out := buf.String()
	for _, want := range []string{"WARN ", "skipped value", "column=Year", "row=7", `value="n a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
	// keys are sorted
	if strings.Index(out, "column=") > strings.Index(out, "row=") {
		t.Errorf("fields not sorted: %q", out)
	}
}

func TestFieldConstructors(t *testing.T) {
	err := errors.New("boom")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("k", "v"), "k", "v"},
		{"Int", Int("n", 4), "n", 4},
		{"Float64", Float64("f", 0.5), "f", 0.5},
		{"Bool", Bool("b", true), "b", true},
		{"Duration", Duration("d", time.Second), "d", "1s"},
		{"Error", Error(err), "error", "boom"},
		{"NilError", Error(nil), "error", nil},
		{"Stage", Stage("render"), "stage", "render"},
		{"Author", Author("Smith J"), "author", "Smith J"},
		{"Path", Path("/tmp/x.csv"), "path", "/tmp/x.csv"},
		{"Latency", Latency(2 * time.Millisecond), "latency", "2ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s = %+v, want {%s %v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "stage finished", Stage("analyze"))
	elapsed := timer.End(Count(5))
	if elapsed < 0 {
		t.Errorf("negative elapsed %v", elapsed)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}
	if entry.Fields["stage"] != "analyze" {
		t.Errorf("stage = %v", entry.Fields["stage"])
	}

	buf.Reset()
	StartTimer(logger, "stage failed").EndError(errors.New("disk full"))
	if !strings.Contains(buf.String(), `"level":"ERROR"`) || !strings.Contains(buf.String(), "disk full") {
		t.Errorf("EndError output = %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nothing")
	if logger.With(Count(1)) == nil {
		t.Error("With returned nil")
	}
	if logger.GetLevel() != InfoLevel {
		t.Error("NopLogger level should report INFO")
	}
}

func TestSetDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	t.Cleanup(func() { SetDefaultLogger(NewNopLogger()) })

	DefaultLogger().Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("default logger not replaced: %q", buf.String())
	}
}
