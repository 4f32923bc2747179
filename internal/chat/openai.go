package chat

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"debthelp-backend/internal/database"
)

// Completer sends an assembled prompt to a text-completion backend and
// returns the first candidate's text.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

type OpenAICompleter struct {
	client    openai.Client
	model     string
	maxTokens int64
	temp      float64
}

func NewOpenAICompleter(apiKey, baseURL, model string, maxTokens int64, temp float64) *OpenAICompleter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAICompleter{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		temp:      temp,
	}
}

func (o *OpenAICompleter) Complete(ctx context.Context, turns []Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case database.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		case database.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		default:
			messages = append(messages, openai.SystemMessage(turn.Content))
		}
	}

	chatReq := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       o.model,
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temp),
	}

	res, err := o.client.Chat.Completions.New(ctx, chatReq)
	if err != nil {
		slog.Error("openai error: chat completions failed", "error", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
