// README: OpenAI chat-completions model client in JSON mode.
package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"wanderplan/internal/itinerary"
)

const DefaultOpenAIModel = "gpt-4o-mini"

const finishContentFilter = "content_filter"

// OpenAIProvider implements Model using the chat completions API.
// OpenAI has no top-k or per-request safety thresholds; its content filter stands in for the
// safety policy.
type OpenAIProvider struct {
	client    openai.Client
	modelName string
}

// NewOpenAIProvider builds a client. Extra options (base URL, HTTP client) are appended after the
// API key; SDK retries are disabled so each call is a single attempt.
func NewOpenAIProvider(apiKey, modelName string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	all := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	all = append(all, opts...)
	return &OpenAIProvider{
		client:    openai.NewClient(all...),
		modelName: modelName,
	}, nil
}

func (p *OpenAIProvider) Provider() string { return "openai" }

func (p *OpenAIProvider) ModelName() string { return p.modelName }

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*Reply, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.modelName),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature:         openai.Float(float64(Temperature)),
		TopP:                openai.Float(float64(TopP)),
		MaxCompletionTokens: openai.Int(int64(MaxOutputTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, itinerary.NewProviderError(fmt.Errorf("openai completion error: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, itinerary.NewProviderError(errors.New("openai: empty choices"))
	}

	choice := resp.Choices[0]
	if string(choice.FinishReason) == finishContentFilter {
		return nil, itinerary.NewContentBlocked(
			SafetyFeedback{FinishReason: finishContentFilter},
			errors.New("response blocked by content filter"),
		)
	}

	return &Reply{
		Text: choice.Message.Content,
		Usage: Usage{
			PromptTokens:   int(resp.Usage.PromptTokens),
			ResponseTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:    int(resp.Usage.TotalTokens),
		},
	}, nil
}
