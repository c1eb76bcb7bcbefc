package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestImageFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Here is your look"),
				genai.Blob{MIMEType: "image/png", Data: []byte{1, 2, 3}},
			}},
		}},
	}

	img, err := imageFromResponse(resp)
	require.NoError(t, err)
	require.Equal(t, "image/png", img.MIMEType)
	require.Equal(t, []byte{1, 2, 3}, img.Data)
}

func TestImageFromResponseTextOnly(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("I can't draw that")}},
		}},
	}

	_, err := imageFromResponse(resp)
	require.ErrorContains(t, err, "no image")

	_, err = imageFromResponse(&genai.GenerateContentResponse{})
	require.ErrorContains(t, err, "no content")
}

func TestGeminiNeedsAPIKey(t *testing.T) {
	_, err := NewGeminiImageGenerator("", "gemini-3-pro-image-preview").Generate(context.Background(), "x")
	require.ErrorContains(t, err, "GEMINI_API_KEY")
}
