package logging

import (
	"errors"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	logger := NewDefaultLoggerNoColor()

	msg := logger.formatMessage(InfoLevel, nil, "loaded", Fields{"path": "song.wav"})
	if !strings.Contains(msg, "[INFO]") || !strings.Contains(msg, "loaded") {
		t.Errorf("formatted message missing level or text: %q", msg)
	}
	if !strings.Contains(msg, "path") || !strings.Contains(msg, "song.wav") {
		t.Errorf("formatted message missing fields: %q", msg)
	}
}

func TestFormatMessageIncludesError(t *testing.T) {
	logger := NewDefaultLoggerNoColor()

	msg := logger.formatMessage(ErrorLevel, errors.New("boom"), "failed")
	if !strings.Contains(msg, "boom") {
		t.Errorf("formatted message missing error: %q", msg)
	}
}

func TestWithFieldsMerges(t *testing.T) {
	base := NewDefaultLoggerNoColor()
	derived, ok := base.WithFields(Fields{"component": "detector"}).(*DefaultLogger)
	if !ok {
		t.Fatal("WithFields did not return a DefaultLogger")
	}

	msg := derived.formatMessage(InfoLevel, nil, "hello", Fields{"row": 3})
	if !strings.Contains(msg, "component") || !strings.Contains(msg, "row") {
		t.Errorf("derived logger lost fields: %q", msg)
	}

	// The parent logger must not pick up the derived fields
	parentMsg := base.formatMessage(InfoLevel, nil, "hello")
	if strings.Contains(parentMsg, "component") {
		t.Errorf("parent logger gained derived fields: %q", parentMsg)
	}
}

func TestSetGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	noop := &NoOpLogger{}
	SetGlobalLogger(noop)
	if GetGlobalLogger() != noop {
		t.Error("global logger not replaced")
	}

	// A nil logger falls back to the no-op logger rather than panicking
	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Errorf("nil global logger gave %T, want NoOpLogger", GetGlobalLogger())
	}
	Debug("discarded")
	Info("discarded")
}
