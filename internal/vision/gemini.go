package vision

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Gemini pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.30
	geminiOutputPricePerMillion = 2.50
)

const geminiPrompt = `Identify the product in this image for a marketplace price search.

Respond with a short English search keyword (2-6 words) that a buyer would type to find this exact product. Use the brand and model convention, e.g. "Sony WH-1000XM5" or "Nintendo Switch OLED".

Respond ONLY with the keyword, no quotes, no markdown, no other text.`

// Model candidates tried in order. Later entries cover accounts or regions
// where a newer model is not yet available.
var geminiModelCandidates = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
}

// GeminiExtractor uses Google's Gemini API for keyword extraction.
type GeminiExtractor struct {
	client *genai.Client
	models []string
}

// NewGeminiExtractor creates a Gemini-based extractor. It uses the
// GEMINI_API_KEY environment variable for authentication.
func NewGeminiExtractor(ctx context.Context) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, models: geminiModelCandidates}, nil
}

// ExtractKeyword implements the Extractor interface using Gemini. The model
// candidates are tried in order; the first one that yields a non-empty
// keyword wins. When every candidate fails, the last error is returned.
func (g *GeminiExtractor) ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	parts := []*genai.Part{
		genai.NewPartFromText(geminiPrompt),
		{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	var lastErr error
	for _, model := range g.models {
		result, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			log.Warn().Err(err).Str("model", model).Msg("gemini keyword extraction failed, trying next model")
			lastErr = err
			continue
		}
		if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("no response from %s", model)
			continue
		}

		keyword := cleanKeyword(result.Text())
		if keyword == "" {
			lastErr = fmt.Errorf("model %s produced no usable keyword", model)
			continue
		}

		if result.UsageMetadata != nil {
			cost := calculateGeminiCost(
				int64(result.UsageMetadata.PromptTokenCount),
				int64(result.UsageMetadata.CandidatesTokenCount),
			)
			log.Info().
				Str("model", model).
				Int("inputTokens", int(result.UsageMetadata.PromptTokenCount)).
				Int("outputTokens", int(result.UsageMetadata.CandidatesTokenCount)).
				Float64("costUSD", cost).
				Str("keyword", keyword).
				Msg("keyword extraction llm call")
		}
		return keyword, nil
	}

	return "", fmt.Errorf("all gemini models exhausted: %w", lastErr)
}

func calculateGeminiCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}
