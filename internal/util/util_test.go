package util

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestTruncateStringCountsRunes(t *testing.T) {
	if got := TruncateString("안녕하세요", 2); got != "안녕..." {
		t.Fatalf("expected rune-based truncation, got %q", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("  first\n\tsecond   third "); got != "first second third" {
		t.Fatalf("unexpected collapse result %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
