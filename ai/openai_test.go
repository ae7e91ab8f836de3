package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "docusense/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if captured != nil {
			_ = json.Unmarshal(body, captured)
		}
		payload, _ := json.Marshal(content)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %s}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`, payload)
	}))
}

func TestOpenAIGenerator_Complete(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	var captured map[string]any
	server := completionServer(t, "```json\n{\"summary\":\"- growth\"}\n```", &captured)
	defer server.Close()

	generator := NewOpenAIGenerator(log, OpenAIConfig{
		APIKey: "test", BaseURL: server.URL + "/v1", Model: "test-model", Timeout: 5 * time.Second,
	})
	prompt, err := QuickSummaryPrompt("Some document")
	req.NoError(err)

	raw, err := generator.Complete(context.Background(), prompt)
	req.NoError(err)
	req.JSONEq(`{"summary":"- growth"}`, string(raw))

	req.Equal("test-model", captured["model"])
	format, ok := captured["response_format"].(map[string]any)
	req.True(ok)
	req.Equal("json_schema", format["type"])
}

func TestOpenAIGenerator_EmptyContent(t *testing.T) {
	req := require.New(t)
	server := completionServer(t, "", nil)
	defer server.Close()

	generator := NewOpenAIGenerator(logs.GetLoggerFromLevel(slog.LevelDebug), OpenAIConfig{
		APIKey: "test", BaseURL: server.URL + "/v1", Model: "test-model",
	})
	_, err := generator.Complete(context.Background(), Prompt{Name: "quick_summary", Instruction: "x"})
	req.ErrorIs(err, apperrors.ErrEmptyResponse)
}
