// README: Gemini model client with fixed decoding config and safety thresholds.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wanderplan/internal/itinerary"
)

const DefaultGeminiModel = "gemini-1.5-flash-latest"

// safetyCategories are blocked at medium probability and above.
var safetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// GeminiProvider implements Model using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	configureGemini(model)

	return &GeminiProvider{
		client:    client,
		model:     model,
		modelName: modelName,
	}, nil
}

// configureGemini applies the decoding configuration and the safety policy.
func configureGemini(model *genai.GenerativeModel) {
	model.SetTemperature(Temperature)
	model.SetTopP(TopP)
	model.SetTopK(TopK)
	model.SetMaxOutputTokens(MaxOutputTokens)
	model.ResponseMIMEType = ResponseMIMEType

	model.SafetySettings = make([]*genai.SafetySetting, 0, len(safetyCategories))
	for _, c := range safetyCategories {
		model.SafetySettings = append(model.SafetySettings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockMediumAndAbove,
		})
	}
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Provider() string { return "gemini" }

func (p *GeminiProvider) ModelName() string { return p.modelName }

// Generate sends the prompt as a single text part.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (*Reply, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	return replyFromGemini(resp)
}

// classifyGeminiError maps SDK errors onto the pipeline taxonomy.
func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return itinerary.NewContentBlocked(geminiFeedback(blocked.PromptFeedback, blocked.Candidate), err)
	}
	return itinerary.NewProviderError(fmt.Errorf("gemini generation error: %w", err))
}

func replyFromGemini(resp *genai.GenerateContentResponse) (*Reply, error) {
	if resp == nil {
		return nil, itinerary.NewProviderError(errors.New("empty response from Gemini"))
	}
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != genai.BlockReasonUnspecified {
		return nil, itinerary.NewContentBlocked(geminiFeedback(pf, nil), errors.New("prompt blocked"))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, itinerary.NewProviderError(errors.New("no response candidates from Gemini"))
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return nil, itinerary.NewContentBlocked(geminiFeedback(nil, cand), errors.New("response blocked"))
	}
	if cand.Content == nil {
		return nil, itinerary.NewProviderError(errors.New("no response content from Gemini"))
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	reply := &Reply{Text: text.String()}
	if u := resp.UsageMetadata; u != nil {
		reply.Usage = Usage{
			PromptTokens:   int(u.PromptTokenCount),
			ResponseTokens: int(u.CandidatesTokenCount),
			TotalTokens:    int(u.TotalTokenCount),
		}
	}
	return reply, nil
}

func geminiFeedback(pf *genai.PromptFeedback, cand *genai.Candidate) SafetyFeedback {
	var fb SafetyFeedback
	var ratings []*genai.SafetyRating
	if pf != nil {
		if pf.BlockReason != genai.BlockReasonUnspecified {
			fb.BlockReason = fmt.Sprint(pf.BlockReason)
		}
		ratings = append(ratings, pf.SafetyRatings...)
	}
	if cand != nil {
		fb.FinishReason = fmt.Sprint(cand.FinishReason)
		ratings = append(ratings, cand.SafetyRatings...)
	}
	for _, r := range ratings {
		if r == nil {
			continue
		}
		fb.Ratings = append(fb.Ratings, SafetyRating{
			Category:    fmt.Sprint(r.Category),
			Probability: fmt.Sprint(r.Probability),
			Blocked:     r.Blocked,
		})
	}
	return fb
}
