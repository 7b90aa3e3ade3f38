package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/paperkg/pkg/ai"
)

func TestGenerateCompletionWithFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"{\"edges\":[{\"relation\":\"USES\"}]}"},"done":true,"prompt_eval_count":30,"eval_count":10,"total_duration":2000000000}`))
	}))
	defer srv.Close()

	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{
		ExtractionModel: "llama3",
		BaseURL:         srv.URL,
	})
	if err != nil {
		t.Fatalf("NewGraphOllamaClient() error = %v", err)
	}

	var out struct {
		Edges []struct {
			Relation string `json:"relation"`
		} `json:"edges"`
	}
	err = client.GenerateCompletionWithFormat(context.Background(), "n", "d", "prompt", &out, ai.WithTemperature(0))
	if err != nil {
		t.Fatalf("GenerateCompletionWithFormat() error = %v", err)
	}
	if len(out.Edges) != 1 || out.Edges[0].Relation != "USES" {
		t.Fatalf("unexpected output %+v", out)
	}
	if got["model"] != "llama3" || got["format"] == nil {
		t.Fatalf("unexpected request %v", got)
	}

	m := client.GetMetrics()
	if m.TotalTokens != 40 || m.DurationMs != 2000 {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestGenerateCompletionWithFormatRejectsNonPointer(t *testing.T) {
	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{})
	if err != nil {
		t.Fatalf("NewGraphOllamaClient() error = %v", err)
	}
	var out struct{}
	if err := client.GenerateCompletionWithFormat(context.Background(), "n", "d", "p", out); err == nil {
		t.Fatalf("expected error for non-pointer out")
	}
}

func TestContextWindow(t *testing.T) {
	if n := contextWindow("short prompt"); n != 0 {
		t.Fatalf("expected server default for short prompt, got %d", n)
	}

	n := contextWindow(strings.Repeat("gaussian splatting radiance field ", 2000))
	if n <= defaultContextWindow {
		t.Fatalf("expected num_ctx above %d, got %d", defaultContextWindow, n)
	}
}
