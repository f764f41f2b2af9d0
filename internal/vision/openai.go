package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
)

const openaiModel = "gpt-4o-mini"

const openaiPrompt = `Identify the product in this image for a marketplace price search.

Respond with a short English search keyword (2-6 words) that a buyer would type to find this exact product. Use the brand and model convention, e.g. "Sony WH-1000XM5" or "Nintendo Switch OLED".

Respond ONLY with the keyword, no quotes, no markdown, no other text.`

// OpenAIExtractor uses OpenAI's vision-capable chat API for keyword
// extraction. It serves as the fallback backend when Gemini is exhausted.
type OpenAIExtractor struct {
	client openai.Client
}

// NewOpenAIExtractor creates an OpenAI-based extractor. It uses the
// OPENAI_API_KEY environment variable for authentication.
func NewOpenAIExtractor() *OpenAIExtractor {
	return &OpenAIExtractor{client: openai.NewClient()}
}

// ExtractKeyword implements the Extractor interface using OpenAI.
func (o *OpenAIExtractor) ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openaiModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(openaiPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	keyword := cleanKeyword(resp.Choices[0].Message.Content)
	if keyword == "" {
		return "", fmt.Errorf("model %s produced no usable keyword", openaiModel)
	}

	log.Info().
		Str("model", openaiModel).
		Int64("inputTokens", resp.Usage.PromptTokens).
		Int64("outputTokens", resp.Usage.CompletionTokens).
		Str("keyword", keyword).
		Msg("keyword extraction llm call")
	return keyword, nil
}
