package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pgquill/pgquill/config"
)

func TestPostJSONRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	status, body, err := postJSON(context.Background(), srv.Client(), 3, srv.URL, http.Header{}, []byte(`{}`))
	if err != nil {
		t.Fatalf("postJSON() error = %v", err)
	}
	if status != http.StatusOK || string(body) != "ok" {
		t.Fatalf("status = %d body = %q", status, body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestPostJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer srv.Close()

	status, body, err := postJSON(context.Background(), srv.Client(), 3, srv.URL, http.Header{}, []byte(`{}`))
	if err != nil {
		t.Fatalf("postJSON() error = %v", err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(string(body), "bad key") {
		t.Fatalf("body = %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1 (4xx must not be retried)", got)
	}
}

func TestPostJSONExhaustedRetriesReturnsLastStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`down`))
	}))
	defer srv.Close()

	status, body, err := postJSON(context.Background(), srv.Client(), 1, srv.URL, http.Header{}, []byte(`{}`))
	if err != nil {
		t.Fatalf("postJSON() error = %v", err)
	}
	if status != http.StatusInternalServerError || string(body) != "down" {
		t.Fatalf("status = %d body = %q", status, body)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestOpenAIGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "SELECT 1"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL, 1000, 0)
	text, err := client.GenerateText(context.Background(), GenerateOptions{
		Model:  "gpt-4o",
		Prompt: "one",
	})
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != "SELECT 1" {
		t.Fatalf("text = %q", text)
	}
}

func TestOpenAIGenerateTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key"}}`))
	}))
	defer srv.Close()

	client := NewOpenAI("bad-key", srv.URL, 1000, 0)
	_, err := client.GenerateText(context.Background(), GenerateOptions{Model: "gpt-4o", Prompt: "one"})
	if err == nil {
		t.Fatal("GenerateText() should fail on 401")
	}
	if !strings.Contains(err.Error(), "openai API error (401)") {
		t.Fatalf("err = %v", err)
	}
}

func TestNewClientPerProvider(t *testing.T) {
	cfg := config.Configuration{RequestTimeoutMS: 1000, MaxRetries: 1}
	cases := []struct {
		provider config.Provider
		name     string
	}{
		{config.ProviderOpenAI, "openai"},
		{config.ProviderAnthropic, "anthropic"},
		{config.ProviderGemini, "gemini"},
	}
	for _, tc := range cases {
		client, err := NewClient(SelectionResult{Provider: tc.provider, APIKey: "k", Success: true}, cfg)
		if err != nil {
			t.Fatalf("NewClient(%v) error = %v", tc.provider, err)
		}
		if client.Name() != tc.name {
			t.Fatalf("Name() = %q, want %q", client.Name(), tc.name)
		}
	}
}

func TestNewClientRejectsFailedSelection(t *testing.T) {
	_, err := NewClient(SelectionResult{Success: false, ErrorMessage: "no key"}, config.Configuration{})
	if err == nil {
		t.Fatal("NewClient should reject a failed selection")
	}
}

func TestModelSettingsFallsBackToDefaults(t *testing.T) {
	model, maxTokens, temperature := ModelSettings(SelectionResult{Provider: config.ProviderAnthropic})
	if model != config.DefaultAnthropicModel || maxTokens != 8192 {
		t.Fatalf("model = %q maxTokens = %d", model, maxTokens)
	}
	if temperature != config.DefaultTemperature {
		t.Fatalf("temperature = %v", temperature)
	}

	pc := config.DefaultProviderConfig(config.ProviderOpenAI)
	pc.DefaultModel = "gpt-4o-mini"
	pc.DefaultMaxTokens = 512
	model, maxTokens, _ = ModelSettings(SelectionResult{Provider: config.ProviderOpenAI, Config: &pc})
	if model != "gpt-4o-mini" || maxTokens != 512 {
		t.Fatalf("model = %q maxTokens = %d", model, maxTokens)
	}
}
