package main

import (
	"os"
	"strings"
	"testing"
)

func TestNormalizeFlagDashes(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"snip-ocr", "--run-once", "--backend=fast", "-run-once-std"}
	normalizeFlagDashes()

	want := []string{"snip-ocr", "-run-once", "-backend=fast", "-run-once-std"}
	for i, arg := range want {
		if os.Args[i] != arg {
			t.Errorf("os.Args[%d] = %q, want %q", i, os.Args[i], arg)
		}
	}
}

func TestSanitizeForLogging(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"newlines", "line1\nline2\r", "line1\\nline2\\n"},
		{"tab", "a\tb", "a\\tb"},
		{"control", "a\x00b\x7fc", "a?b?c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeForLogging(tt.input); got != tt.want {
				t.Errorf("sanitizeForLogging(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeForLoggingTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := sanitizeForLogging(long)
	if len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected 100 chars plus ellipsis, got %d chars", len(got))
	}
}
