package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.now = fixedClock

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below level were written: %q", out)
	}
	if !strings.Contains(out, "[03:04:05] gofhir-codes [WARN] warn 3") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error 4") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestLoggerNone(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelNone)
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("LevelNone wrote %q", buf.String())
	}
	if l.Enabled(LevelError) {
		t.Error("Enabled(LevelError) = true with LevelNone")
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug).Named("terminology")
	l.Debug("loaded %s", "x")
	if !strings.Contains(buf.String(), "gofhir-codes/terminology [DEBUG] loaded x") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSetLevelAndOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := New(&first, LevelError)
	l.Info("dropped")
	l.SetLevel(LevelInfo)
	l.SetOutput(&second)
	l.Info("kept")
	if first.Len() != 0 {
		t.Errorf("first output got %q", first.String())
	}
	if !strings.Contains(second.String(), "kept") {
		t.Errorf("second output got %q", second.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelNone, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelNone.String() != "NONE" || Level(42).String() != "" {
		t.Error("unexpected Level.String() values")
	}
}
