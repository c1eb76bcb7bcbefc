// Package generate builds coordination prompts and refines them from user feedback.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
)

// ImageGenerator turns a prompt into an image.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error)
}

// Completer runs chat completions.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// BuildPrompt returns the full-body illustration prompt for a profile.
// The outfit is always asked to stay modest whatever the theme.
func BuildPrompt(p models.UserProfile) string {
	return fmt.Sprintf(
		"Full-body fashion illustration of a %s, age %d, body shape %s, "+
			"wearing seasonally appropriate, elegant, modest clothing in %s color, themed around %s. "+
			"The outfit should cover chest, abdomen, and knees, avoiding revealing skin, and should reflect elegance. "+
			"Style: %s. White background.",
		p.Gender, p.Age, p.BodyShape, p.Color, p.Theme, p.DrawStyle)
}

const refineSystemPrompt = "You are a prompt engineer specializing in improving fashion illustration prompts for DALL-E 3 while maintaining elegance and modesty."

// RefinePrompt asks the chat model to rewrite the original prompt following the user's feedback.
func RefinePrompt(ctx context.Context, chat Completer, original, feedback string) (string, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return "", fmt.Errorf("feedback is empty")
	}

	user := fmt.Sprintf("The original prompt was:\n%s\n\nUser feedback is:\n%s\n\nPlease refine the prompt while still keeping it modest, elegant, and non-revealing.",
		original, feedback)

	refined, err := chat.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: refineSystemPrompt},
			{Role: llm.RoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("refine prompt: %w", err)
	}

	refined = strings.TrimSpace(refined)
	if refined == "" {
		return "", fmt.Errorf("refine prompt: model returned an empty prompt")
	}
	return refined, nil
}
