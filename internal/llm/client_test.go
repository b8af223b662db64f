package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eleven-am/support-backend/internal/shared"
)

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate, got %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama3" {
			t.Errorf("expected model llama3, got %s", req.Model)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "hello", Done: true})
	}))
	defer server.Close()

	client := NewClient(Config{OllamaURL: server.URL, GenerateModel: "llama3", EmbedModel: "nomic"})

	out, err := client.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("expected 'hello', got %q", out)
	}
}

func TestClient_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{OllamaURL: server.URL, GenerateModel: "m"})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, shared.ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestClient_Generate_Unreachable(t *testing.T) {
	client := NewClient(Config{OllamaURL: "http://127.0.0.1:1", GenerateModel: "m"})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, shared.ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestClient_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("expected /api/embeddings, got %s", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "nomic" {
			t.Errorf("expected model nomic, got %s", req.Model)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := NewClient(Config{OllamaURL: server.URL, EmbedModel: "nomic"})

	vec, err := client.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dims, got %d", len(vec))
	}
}

func TestClient_Embed_EmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer server.Close()

	client := NewClient(Config{OllamaURL: server.URL, EmbedModel: "nomic"})

	_, err := client.Embed(context.Background(), "text")
	if !errors.Is(err, shared.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestClient_Embed_Unreachable(t *testing.T) {
	client := NewClient(Config{OllamaURL: "http://127.0.0.1:1", EmbedModel: "m"})

	_, err := client.Embed(context.Background(), "text")
	if !errors.Is(err, shared.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestClient_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{OllamaURL: server.URL})
	if !client.IsAvailable(context.Background()) {
		t.Error("expected available")
	}

	client = NewClient(Config{OllamaURL: "http://127.0.0.1:1"})
	if client.IsAvailable(context.Background()) {
		t.Error("expected unavailable")
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"quota", errors.New("monthly quota exceeded"), true},
		{"rate limit", errors.New("Rate Limit reached"), true},
		{"http 429", errors.New("ollama returned status 429"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaError(tt.err); got != tt.expected {
				t.Errorf("IsQuotaError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
