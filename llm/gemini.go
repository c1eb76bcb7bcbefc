package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/raushankrgupta/retailnext/models"
)

// GeminiImageGenerator generates coordination images with a Gemini image model.
type GeminiImageGenerator struct {
	apiKey string
	model  string
}

// NewGeminiImageGenerator creates a generator for the given model.
func NewGeminiImageGenerator(apiKey, model string) *GeminiImageGenerator {
	return &GeminiImageGenerator{apiKey: apiKey, model: model}
}

// Generate sends the prompt and returns the first image part of the answer.
func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return imageFromResponse(resp)
}

func imageFromResponse(resp *genai.GenerateContentResponse) (*models.GeneratedImage, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Blob:
			return &models.GeneratedImage{Data: p.Data, MIMEType: p.MIMEType}, nil
		case genai.Text:
			// Models sometimes explain instead of drawing; keep looking for an image part
			log.Debug().Str("text", string(p)).Msg("gemini returned text part")
		default:
			log.Debug().Str("type", fmt.Sprintf("%T", p)).Msg("gemini returned unexpected part")
		}
	}

	return nil, fmt.Errorf("gemini returned no image")
}
