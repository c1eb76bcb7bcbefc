package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/generate"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/utils"
)

// RefineRequest carries the previous coordination back with the user's feedback.
// Prompt defaults to the prompt built from Profile.
type RefineRequest struct {
	Prompt   string             `json:"prompt,omitempty"`
	Feedback string             `json:"feedback"`
	Profile  models.UserProfile `json:"profile"`
	TopK     int                `json:"top_k,omitempty"`
}

// RefineHandler rewrites the prompt from feedback, generates a new image and
// recommends again for the profile updated from the feedback keywords
func (h *Handler) RefineHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefineRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(ctx, w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Feedback) == "" {
		utils.RespondError(ctx, w, "Please enter your feedback before updating the coordination", http.StatusBadRequest)
		return
	}
	if err := validateProfile(req.Profile); err != nil {
		utils.RespondError(ctx, w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Generator == nil || h.Chat == nil {
		utils.RespondError(ctx, w, "Coordination refinement is not configured", http.StatusServiceUnavailable)
		return
	}

	original := req.Prompt
	if original == "" {
		original = generate.BuildPrompt(req.Profile)
	}

	chatCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	refined, err := generate.RefinePrompt(chatCtx, h.Chat, original, req.Feedback)
	if err != nil {
		respondProviderError(ctx, w, "refine prompt", err)
		return
	}

	profile := generate.UpdateProfileFromFeedback(req.Profile, req.Feedback)
	zerolog.Ctx(ctx).Info().
		Str("feedback", req.Feedback).
		Str("color", profile.Color).
		Str("theme", profile.Theme).
		Msg("Refining coordination")

	resp, _, err := h.coordinate(ctx, profile, refined, req.TopK)
	if err != nil {
		respondProviderError(ctx, w, "generate image", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
