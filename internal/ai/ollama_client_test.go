package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["stream"] != false {
			t.Errorf("stream should be false")
		}
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"local answer"},"done":true}`))
	}))
	defer srv.Close()

	c := ai.NewOllamaClient(srv.URL, 5*time.Second)
	resp, err := c.Generate(context.Background(), ai.GenerateRequest{
		Model:    "llama3.1:8b-instruct",
		Messages: []ai.Message{{Role: "user", Content: "q"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content() != "local answer" {
		t.Errorf("content = %q", resp.Content())
	}
}

func TestOllamaModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'nope' not found"}`))
	}))
	defer srv.Close()

	c := ai.NewOllamaClient(srv.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), ai.GenerateRequest{
		Model:    "nope",
		Messages: []ai.Message{{Role: "user", Content: "q"}},
	})
	var e *ai.ModelNotFoundError
	if !errors.As(err, &e) {
		t.Fatalf("err = %T %v, want *ModelNotFoundError", err, err)
	}
}

func TestOllamaUnreachable(t *testing.T) {
	c := ai.NewOllamaClient("http://127.0.0.1:1", time.Second)
	_, err := c.Generate(context.Background(), ai.GenerateRequest{
		Model:    "m",
		Messages: []ai.Message{{Role: "user", Content: "q"}},
	})
	var e *ai.UnreachableError
	if !errors.As(err, &e) {
		t.Fatalf("err = %T %v, want *UnreachableError", err, err)
	}
}

func TestRuntimeRegistry(t *testing.T) {
	for _, name := range []string{ai.ProviderOpenRouter, ai.ProviderOllama, ai.ProviderLocal} {
		if _, ok := ai.GetRuntime(name, ai.RuntimeConfig{APIKey: "k"}); !ok {
			t.Errorf("provider %q not registered", name)
		}
	}
	if _, ok := ai.GetRuntime("bogus", ai.RuntimeConfig{}); ok {
		t.Errorf("bogus provider should not resolve")
	}
}
