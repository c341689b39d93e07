package ai_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ai.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return ai.NewClientWithBaseURL("test-key", 5*time.Second, srv.URL), srv
}

func TestGenerateSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("X-Request-Id", "req_123")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"gen1","choices":[{"message":{"role":"assistant","content":"hi there"}}],"usage":{"prompt_tokens":10,"completion_tokens":2,"total_tokens":12}}`))
	})
	resp, err := c.Generate(context.Background(), ai.GenerateRequest{
		Model:    "openai/gpt-4o-mini",
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content() != "hi there" {
		t.Errorf("content = %q", resp.Content())
	}
	if resp.RequestID != "req_123" {
		t.Errorf("request id = %q", resp.RequestID)
	}
	if resp.Usage.TotalTokens != 12 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestGenerateSingleAttempt(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	})
	_, err := c.Generate(context.Background(), ai.GenerateRequest{
		Model:    "m",
		Messages: []ai.Message{{Role: "user", Content: "q"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("server saw %d calls, want exactly 1", n)
	}
	var se *ai.ServerError
	if !errors.As(err, &se) {
		t.Errorf("err = %T, want *ServerError", err)
	}
}

func TestGenerateErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		header map[string]string
		check  func(error) bool
	}{
		{"auth", http.StatusUnauthorized, nil, func(err error) bool {
			var e *ai.AuthError
			return errors.As(err, &e)
		}},
		{"rate limit", http.StatusTooManyRequests, map[string]string{"Retry-After": "7"}, func(err error) bool {
			var e *ai.RateLimitError
			return errors.As(err, &e) && e.RetryAfter == 7*time.Second
		}},
		{"model not found", http.StatusNotFound, nil, func(err error) bool {
			var e *ai.ModelNotFoundError
			return errors.As(err, &e)
		}},
		{"bad request", http.StatusBadRequest, nil, func(err error) bool {
			var e *ai.BadRequestError
			return errors.As(err, &e)
		}},
		{"server", http.StatusBadGateway, nil, func(err error) bool {
			var e *ai.ServerError
			return errors.As(err, &e)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, v := range c.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","code":"some_code"}}`))
			})
			_, err := client.Generate(context.Background(), ai.GenerateRequest{
				Model:    "m",
				Messages: []ai.Message{{Role: "user", Content: "q"}},
			})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !c.check(err) {
				t.Errorf("wrong error type: %T %v", err, err)
			}
		})
	}
}

func TestGenerateValidation(t *testing.T) {
	c := ai.NewClientWithBaseURL("", time.Second, "http://127.0.0.1:0")
	if _, err := c.Generate(context.Background(), ai.GenerateRequest{Model: "m"}); err == nil {
		t.Errorf("expected missing key error")
	}
	c = ai.NewClientWithBaseURL("k", time.Second, "http://127.0.0.1:0")
	if _, err := c.Generate(context.Background(), ai.GenerateRequest{}); err == nil {
		t.Errorf("expected empty model error")
	}
}
