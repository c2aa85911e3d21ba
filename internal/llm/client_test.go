package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient("test-key", "test-model", srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	out, err := client.Complete(context.Background(), "be terse", "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("content = %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("model = %v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient("test-key", "test-model", srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	_, err = client.Complete(context.Background(), "", "hello")
	if err == nil || !strings.Contains(err.Error(), "http status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTPClientRequiresConfig(t *testing.T) {
	if _, err := NewHTTPClient("", "model", "", 0); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewHTTPClient("key", "", "", 0); err == nil {
		t.Fatal("expected error for missing model")
	}
}
