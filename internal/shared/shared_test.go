package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("msg")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected log output to contain field, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered at error level, got %q", buf.String())
		}

		logger.Error("shown")
		if !strings.Contains(buf.String(), "shown") {
			t.Errorf("expected error output, got %q", buf.String())
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		cases := map[string]log.Level{
			"debug":   log.DebugLevel,
			"DEBUG":   log.DebugLevel,
			"info":    log.InfoLevel,
			"warn":    log.WarnLevel,
			"warning": log.WarnLevel,
			"error":   log.ErrorLevel,
			"":        log.InfoLevel,
			"bogus":   log.InfoLevel,
		}

		for name, want := range cases {
			if got := ParseLogLevel(name); got != want {
				t.Errorf("ParseLogLevel(%q): expected %v, got %v", name, want, got)
			}
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		a := GenerateID()
		b := GenerateID()

		if a == b {
			t.Error("expected unique IDs")
		}
		if len(a) != 36 {
			t.Errorf("expected UUID format, got %q", a)
		}
	})
}
