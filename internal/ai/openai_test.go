package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProvider(url string) *OpenAIProvider {
	return NewOpenAIProvider(url, "test-key", "gpt-3.5-turbo", 1000, 0.7, 5*time.Second)
}

func TestOpenAIChat_Success(t *testing.T) {
	var gotReq openAIChatReq
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	reply, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "gpt-3.5-turbo" || gotReq.MaxTokens != 1000 || gotReq.Temperature != 0.7 {
		t.Fatalf("generation params not sent: %+v", gotReq)
	}
	if gotReq.Stream {
		t.Fatalf("streaming must be off")
	}
}

func TestOpenAIChat_HTTPErrorBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hello"}})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestOpenAIChat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	reply, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	// empty content is the caller's signal to fall back
	if reply != "" {
		t.Fatalf("expected empty reply, got %q", reply)
	}
}

func TestOpenAIChat_MissingKey(t *testing.T) {
	p := NewOpenAIProvider("http://localhost:0", "", "gpt-3.5-turbo", 1000, 0.7, time.Second)
	if _, err := p.Chat(context.Background(), nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
