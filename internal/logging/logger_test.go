// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitAndLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("should not appear")
	Info().Msg("should not appear either")
	Warn().Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("output contains a suppressed message below the configured level: %q", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Errorf("output missing the at-level message: %q", out)
	}
}

func TestInitConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hello")
	if buf.Len() == 0 {
		t.Error("console format produced no output")
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)
	l.Info().Msg("ping")
	if !strings.Contains(buf.String(), "ping") {
		t.Errorf("NewTestLogger output missing message: %q", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	Info().Msg("via set logger")
	if !strings.Contains(buf.String(), "via set logger") {
		t.Errorf("SetLogger did not take effect: %q", buf.String())
	}
}
