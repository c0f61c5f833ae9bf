package config

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MRM_TEST_STR", "value")
	if got := GetEnv("MRM_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want %q", got, "value")
	}
	if got := GetEnv("MRM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q, want fallback", got)
	}
}

func TestGetEnvParsed(t *testing.T) {
	t.Setenv("MRM_TEST_INT", "42")
	t.Setenv("MRM_TEST_BAD_INT", "forty")
	t.Setenv("MRM_TEST_BOOL", "true")
	t.Setenv("MRM_TEST_DUR", "150ms")

	if got := GetEnvInt("MRM_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("MRM_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt invalid = %d, want fallback 7", got)
	}
	if got := GetEnvBool("MRM_TEST_BOOL", false); !got {
		t.Errorf("GetEnvBool = false, want true")
	}
	if got := GetEnvDuration("MRM_TEST_DUR", time.Second); got != 150*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 150ms", got)
	}
	if got := GetEnvDuration("MRM_TEST_MISSING", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration missing = %v, want 1s", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		if got := NewLogger(io.Discard, "test").GetLevel(); got != tt.want {
			t.Errorf("LOG_LEVEL=%q: level %v, want %v", tt.env, got, tt.want)
		}
	}
}
