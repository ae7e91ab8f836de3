package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "docusense/errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemInstruction = "Respond only with a JSON object that follows the provided schema."

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint
// and asks for JSON-schema structured output.
type OpenAIGenerator struct {
	client  openai.Client
	log     *slog.Logger
	model   string
	timeout time.Duration
}

func NewOpenAIGenerator(log *slog.Logger, cfg OpenAIConfig) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		log:     log,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt Prompt) (json.RawMessage, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(prompt.Instruction),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   prompt.Name,
					Schema: prompt.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion %s failed: %w", prompt.Name, err)
	}
	g.log.Debug("Chat completion done",
		"prompt", prompt.Name,
		"model", g.model,
		"duration", time.Since(start),
		"total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}
	message := resp.Choices[0].Message
	if message.Refusal != "" {
		return nil, fmt.Errorf("model refused %s: %s", prompt.Name, message.Refusal)
	}
	content := stripCodeFence(message.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyResponse
	}
	return json.RawMessage(content), nil
}

// stripCodeFence removes a ```json ... ``` wrapper some compatible servers add.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[i+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
