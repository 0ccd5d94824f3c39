package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	old := Logger
	defer func() { Logger = old }()

	if err := Init(Config{Dir: dir, Level: "info"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	Info("hello", "k", "v")

	path := filepath.Join(dir, "logs", "compass.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message, got %q", data)
	}
}

func TestHelpers_NoopWithoutInit(t *testing.T) {
	old := Logger
	Logger = nil
	defer func() { Logger = old }()

	// Must not panic.
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" error ", log.ErrorLevel},
		{"warn", log.WarnLevel},
		{"", log.WarnLevel},
		{"nonsense", log.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel, false)

	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn message missing")
	}
	if !strings.Contains(out, "compass") {
		t.Error("prefix missing")
	}
}
