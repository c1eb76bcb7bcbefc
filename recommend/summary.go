package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
)

// Summarize asks the chat model for a two line outfit suggestion over items.
func Summarize(ctx context.Context, chat Completer, items []models.ScoredItem) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s, %s)", item.ProductDisplayName, item.BaseColour, item.Season))
	}
	prompt := "Recommend outfits based on the following items briefly (within 2 lines):\n" + strings.Join(lines, "\n")

	return chat.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a fashion assistant. Respond very briefly within 2 lines."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
}

// Explain asks the chat model to pick the best matching item for the profile in natural language.
func Explain(ctx context.Context, chat Completer, profile models.UserProfile, items []models.ScoredItem) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Profile:\n- Gender: %s\n- Theme: %s\n- Favorite Color: %s\n\nMatching Items:\n",
		profile.Gender, profile.Theme, profile.Color)
	for i, item := range items {
		desc := item.Description
		if desc == "" {
			desc = strings.TrimSpace(item.BaseColour + " " + item.Usage)
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.ProductDisplayName, desc)
	}

	return chat.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a fashion assistant. Based on the user's description and the matching items, recommend the best one in natural language."},
			{Role: llm.RoleUser, Content: b.String()},
		},
	})
}
