package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/recommend"
	"github.com/raushankrgupta/retailnext/utils"
)

// RecommendRequest asks for catalog items without generating an image.
// ImageURL is used by the color strategy.
type RecommendRequest struct {
	Profile  models.UserProfile `json:"profile"`
	ImageURL string             `json:"image_url,omitempty"`
	TopK     int                `json:"top_k,omitempty"`
	// Explain asks for a longer pick-the-best answer instead of the two line summary.
	Explain bool `json:"explain,omitempty"`
}

type RecommendResponse struct {
	Items          []models.ScoredItem `json:"items"`
	Recommendation string              `json:"recommendation,omitempty"`
}

// RecommendHandler ranks catalog items for a profile
func (h *Handler) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecommendRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(ctx, w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := validateProfile(req.Profile); err != nil {
		utils.RespondError(ctx, w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ImageURL != "" {
		if err := utils.ValidateImageURL(req.ImageURL); err != nil {
			utils.RespondError(ctx, w, "image_url must be an http or https URL", http.StatusBadRequest)
			return
		}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.TopK
	}
	items, err := h.Recommender.Recommend(ctx, recommend.Request{
		Profile:  req.Profile,
		ImageURL: req.ImageURL,
		TopK:     topK,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyCatalog) {
			utils.RespondError(ctx, w, "The catalog is empty", http.StatusServiceUnavailable)
			return
		}
		if errors.Is(err, recommend.ErrNoImage) {
			utils.RespondError(ctx, w, "image_url is required for color recommendations", http.StatusBadRequest)
			return
		}
		respondProviderError(ctx, w, "recommend items", err)
		return
	}

	resp := RecommendResponse{Items: items}
	if req.Explain {
		resp.Recommendation = h.explain(ctx, req.Profile, items)
	} else {
		resp.Recommendation = h.summarize(ctx, items)
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) explain(ctx context.Context, profile models.UserProfile, items []models.ScoredItem) string {
	if h.Chat == nil || len(items) == 0 {
		return ""
	}

	chatCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	text, err := recommend.Explain(chatCtx, h.Chat, profile, items)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to explain recommendation")
		return ""
	}
	return text
}
