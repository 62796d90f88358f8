package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestComplete(t *testing.T) {
	t.Parallel()

	t.Run("sends the conversation and returns the reply", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected authorization header %q", got)
			}
			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req.Model != "test-model" || len(req.Messages) != 2 || req.Messages[0].Role != "system" {
				t.Errorf("unexpected request %+v", req)
			}
			if req.Temperature != DefaultTemperature {
				t.Errorf("expected temperature %v, got %v", DefaultTemperature, req.Temperature)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"equivalent\": true}  "}}]}`))
		}))
		defer server.Close()

		c := New("test-key", WithBaseURL(server.URL), WithModel("test-model"))
		out, err := c.Complete(context.Background(), "system", "prompt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != `{"equivalent": true}` {
			t.Errorf("unexpected reply %q", out)
		}
	})

	t.Run("missing key is unavailable without a request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		c := New("", WithBaseURL(server.URL))
		if c.Available() {
			t.Error("expected client without key to be unavailable")
		}
		if _, err := c.Complete(context.Background(), "s", "p"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
		if hits.Load() != 0 {
			t.Errorf("expected no requests, got %d", hits.Load())
		}
	})

	t.Run("http errors are unavailable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
		}))
		defer server.Close()

		_, err := New("bad", WithBaseURL(server.URL)).Complete(context.Background(), "s", "p")
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := New("key", WithBaseURL(server.URL)).Complete(context.Background(), "s", "p")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("temperature copy leaves the original untouched", func(t *testing.T) {
		t.Parallel()

		c := New("key")
		warm := c.WithTemperature(0.25)
		if c.temperature != DefaultTemperature || warm.temperature != 0.25 {
			t.Errorf("unexpected temperatures %v and %v", c.temperature, warm.temperature)
		}
	})
}
