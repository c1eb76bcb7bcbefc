package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/raushankrgupta/retailnext/models"
)

const maxBatchSize = 100

// OpenAIClient talks to the OpenAI images, chat and embeddings endpoints.
type OpenAIClient struct {
	client         *openai.Client
	imageModel     string
	chatModel      string
	embeddingModel string
}

// OpenAIOptions configures NewOpenAIClient. Empty models fall back to the defaults.
type OpenAIOptions struct {
	APIKey         string
	BaseURL        string
	ImageModel     string
	ChatModel      string
	EmbeddingModel string
}

// NewOpenAIClient creates a client. BaseURL overrides the API endpoint, e.g. for a proxy.
func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	c := &OpenAIClient{
		client:         openai.NewClientWithConfig(cfg),
		imageModel:     opts.ImageModel,
		chatModel:      opts.ChatModel,
		embeddingModel: opts.EmbeddingModel,
	}
	if c.imageModel == "" {
		c.imageModel = openai.CreateImageModelDallE3
	}
	if c.chatModel == "" {
		c.chatModel = openai.GPT4o
	}
	if c.embeddingModel == "" {
		c.embeddingModel = string(openai.SmallEmbedding3)
	}
	return c
}

// Generate creates one 1024x1024 standard quality image and returns its hosted URL.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no image")
	}

	img := &models.GeneratedImage{URL: resp.Data[0].URL, MIMEType: "image/png"}
	if img.URL == "" && resp.Data[0].B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		img.Data = data
	}
	if img.URL == "" && len(img.Data) == 0 {
		return nil, fmt.Errorf("openai returned an empty image")
	}
	return img, nil
}

// Complete runs a chat completion and returns the trimmed content of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Embed generates embeddings for texts, batching up to 100 inputs per call.
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	all := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedding request failed: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("openai returned %d embeddings, expected %d", len(resp.Data), len(batch))
		}

		for _, emb := range resp.Data {
			all = append(all, emb.Embedding)
		}
	}
	return all, nil
}
