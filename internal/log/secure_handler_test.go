package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const (
	groqKey   = "gsk_0123456789abcdefABCDEF0123456789"
	serperKey = "0123456789abcdef0123456789abcdef01234567"
)

// TestSecureHandler_SanitizesSensitiveKeys tests that sensitive keys are sanitized.
func TestSecureHandler_SanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{
			name:     "x-api-key header is sanitized",
			key:      "x-api-key",
			value:    "plain-looking-value",
			wantMask: true,
		},
		{
			name:     "X-API-KEY header (uppercase) is sanitized",
			key:      "X-API-KEY",
			value:    "plain-looking-value",
			wantMask: true,
		},
		{
			name:     "serper_api_key is sanitized",
			key:      "serper_api_key",
			value:    "abc",
			wantMask: true,
		},
		{
			name:     "llm_api_key is sanitized",
			key:      "llm_api_key",
			value:    "abc",
			wantMask: true,
		},
		{
			name:     "authorization key is sanitized",
			key:      "authorization",
			value:    "whatever",
			wantMask: true,
		},
		{
			name:     "cookie key is sanitized",
			key:      "cookie",
			value:    "consent=yes",
			wantMask: true,
		},
		{
			name:     "url key is NOT sanitized",
			key:      "url",
			value:    "https://www.upm.es/plan.pdf",
			wantMask: false,
		},
		{
			name:     "slug key is NOT sanitized",
			key:      "slug",
			value:    "universidad_politecnica_de_madrid",
			wantMask: false,
		},
		{
			name:     "cache_key key is NOT sanitized",
			key:      "cache_key",
			value:    "discovery_upm",
			wantMask: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()

			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be masked, but found in output: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value %q in output, but not found: %s", MaskValue, output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
			}
		})
	}
}

// TestSecureHandler_SanitizesSensitivePatterns tests that values matching sensitive patterns are sanitized.
func TestSecureHandler_SanitizesSensitivePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		secret   string
		wantMask bool
	}{
		{
			name:     "Groq key is sanitized regardless of key",
			key:      "value",
			value:    groqKey,
			secret:   groqKey,
			wantMask: true,
		},
		{
			name:     "Serper key is sanitized regardless of key",
			key:      "value",
			value:    serperKey,
			secret:   serperKey,
			wantMask: true,
		},
		{
			name:     "key inside a query string is masked inline",
			key:      "request",
			value:    "GET https://api.example.com/search?q=upm&key=hunter2hunter2",
			secret:   "hunter2hunter2",
			wantMask: true,
		},
		{
			name:     "Bearer token is sanitized regardless of key",
			key:      "header",
			value:    "Bearer abc123xyz",
			secret:   "abc123xyz",
			wantMask: true,
		},
		{
			name:     "normal URL is NOT sanitized",
			key:      "link",
			value:    "https://www.upm.es/Estudiantes/plan?curso=2024",
			wantMask: false,
		},
		{
			name:     "sha256 content key is NOT sanitized",
			key:      "content",
			value:    "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
			wantMask: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()

			if tt.wantMask {
				if strings.Contains(output, tt.secret) {
					t.Errorf("expected secret to be masked, but found in output: %s", output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value in output, but not found: %s", output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
			}
		})
	}
}

func TestSecureHandler_SanitizesErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	err := errors.New("completion failed: invalid key " + groqKey)
	logger.Warn("llm call failed", "err", err)

	output := buf.String()
	if strings.Contains(output, groqKey) {
		t.Errorf("expected key inside error to be masked: %s", output)
	}
	if !strings.Contains(output, "completion failed") {
		t.Errorf("expected the rest of the error to stay readable: %s", output)
	}
}

func TestSecureHandler_SanitizesMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, true)

	logger.Info("using key " + groqKey)

	if strings.Contains(buf.String(), groqKey) {
		t.Errorf("expected key in message to be masked: %s", buf.String())
	}
}

// TestSecureHandler_LogLevels tests that log levels are respected.
func TestSecureHandler_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		logLevel   slog.Level
		shouldShow bool
	}{
		{name: "debug message shown in verbose mode", verbose: true, logLevel: slog.LevelDebug, shouldShow: true},
		{name: "debug message hidden in non-verbose mode", verbose: false, logLevel: slog.LevelDebug, shouldShow: false},
		{name: "info message hidden in non-verbose mode", verbose: false, logLevel: slog.LevelInfo, shouldShow: false},
		{name: "warn message shown in non-verbose mode", verbose: false, logLevel: slog.LevelWarn, shouldShow: true},
		{name: "error message shown in non-verbose mode", verbose: false, logLevel: slog.LevelError, shouldShow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, tt.verbose)

			testMsg := "test_unique_message_12345"
			logger.Log(t.Context(), tt.logLevel, testMsg)

			hasMessage := strings.Contains(buf.String(), testMsg)
			if tt.shouldShow && !hasMessage {
				t.Errorf("expected message to be shown, but not found in output: %s", buf.String())
			}
			if !tt.shouldShow && hasMessage {
				t.Errorf("expected message to be hidden, but found in output: %s", buf.String())
			}
		})
	}
}

// TestSecureHandler_WithAttrs tests that WithAttrs sanitizes attributes.
func TestSecureHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	logger.With("serper_api_key", "secret123").Info("test message")

	output := buf.String()
	if strings.Contains(output, "secret123") {
		t.Errorf("expected key to be masked in WithAttrs, but found in output: %s", output)
	}
	if !strings.Contains(output, MaskValue) {
		t.Errorf("expected mask value in output, but not found: %s", output)
	}
}

// TestSecureHandler_WithGroup tests that WithGroup works correctly.
func TestSecureHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	logger.WithGroup("request").Info("test message", "url", "https://google.serper.dev/search", "x-api-key", "abc-def")

	output := buf.String()
	if !strings.Contains(output, "https://google.serper.dev/search") {
		t.Errorf("expected url to be visible, but not found in output: %s", output)
	}
	if strings.Contains(output, "abc-def") {
		t.Errorf("expected api key to be masked, but found in output: %s", output)
	}
}

// TestNewSecureJSONLogger tests JSON logger creation.
func TestNewSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, true)

	logger.Info("test message", "password", "secret")

	output := buf.String()
	if !strings.HasPrefix(output, "{") || !strings.Contains(output, `"msg":"test message"`) {
		t.Errorf("expected JSON format, but got: %s", output)
	}
	if strings.Contains(output, `"secret"`) {
		t.Errorf("expected password to be masked, but found in output: %s", output)
	}
}

func TestNewSecureLogger_NoColorOnBuffers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecureLogger(&buf, true).Info("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes when writing to a buffer: %q", buf.String())
	}
}

// TestContainsSensitiveKeyword tests the containsSensitiveKeyword helper.
func TestContainsSensitiveKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key      string
		expected bool
	}{
		{"user_password", true},
		{"refresh_token", true},
		{"client_secret", true},
		{"credential_file", true},
		{"groq_api_key", true},
		{"numbeo_apikey", true},

		{"url", false},
		{"slug", false},
		{"provider", false},
		{"cache_key", false},
		{"sort_key", false},
		{"seed", false},
		{"monkey", false},
		{"author", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			if got := containsSensitiveKeyword(tt.key); got != tt.expected {
				t.Errorf("containsSensitiveKeyword(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

// TestNewSecureHandler_NilHandler tests that nil handler is handled gracefully.
func TestNewSecureHandler_NilHandler(t *testing.T) {
	t.Parallel()

	handler := NewSecureHandler(nil)
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}
	slog.New(handler).Info("test message")
}

func TestMaskInline(t *testing.T) {
	t.Parallel()

	got := maskInline("retry with " + groqKey + " later")
	if got != "retry with "+MaskValue+" later" {
		t.Errorf("maskInline = %q", got)
	}
}
