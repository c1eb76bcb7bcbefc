package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/generate"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/recommend"
	"github.com/raushankrgupta/retailnext/utils"
)

// CoordinateRequest is the profile form plus an optional number of items to recommend
type CoordinateRequest struct {
	models.UserProfile
	TopK int `json:"top_k,omitempty"`
}

// CoordinateResponse is returned by both the coordinate and the refine endpoints
type CoordinateResponse struct {
	Prompt         string              `json:"prompt"`
	ImageURL       string              `json:"image_url"`
	Profile        models.UserProfile  `json:"profile"`
	Post           *models.Post        `json:"post,omitempty"`
	Items          []models.ScoredItem `json:"items"`
	Recommendation string              `json:"recommendation,omitempty"`
	RecommendError string              `json:"recommend_error,omitempty"`
}

func validateProfile(p models.UserProfile) error {
	switch {
	case strings.TrimSpace(p.Gender) == "":
		return errors.New("gender is required")
	case strings.TrimSpace(p.Color) == "":
		return errors.New("color is required")
	case strings.TrimSpace(p.Theme) == "":
		return errors.New("theme is required")
	case p.Age < 0 || p.Age > 120:
		return fmt.Errorf("age %d is out of range", p.Age)
	}
	return nil
}

// CoordinateHandler generates a coordination for the submitted profile, posts it
// to the gallery and recommends similar catalog items
func (h *Handler) CoordinateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CoordinateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(ctx, w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := validateProfile(req.UserProfile); err != nil {
		utils.RespondError(ctx, w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Generator == nil {
		utils.RespondError(ctx, w, "Image generation is not configured", http.StatusServiceUnavailable)
		return
	}

	prompt := generate.BuildPrompt(req.UserProfile)
	zerolog.Ctx(ctx).Info().Str("gender", req.Gender).Str("theme", req.Theme).Str("color", req.Color).Msg("Generating coordination")

	resp, img, err := h.coordinate(ctx, req.UserProfile, prompt, req.TopK)
	if err != nil {
		respondProviderError(ctx, w, "generate image", err)
		return
	}

	// Post to the gallery, the response is returned even if saving fails
	post := models.NewPost(req.UserProfile, resp.ImageURL, img.key)
	if err := h.Posts.Add(ctx, post); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to save post")
	} else {
		resp.Post = &post
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// generated is a provider image plus where it was archived
type generated struct {
	*models.GeneratedImage
	key string
}

// coordinate generates the image for prompt and ranks catalog items for profile.
// Only a generation failure is returned; recommendation failures end up in the response.
func (h *Handler) coordinate(ctx context.Context, profile models.UserProfile, prompt string, topK int) (*CoordinateResponse, generated, error) {
	logger := zerolog.Ctx(ctx)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	img, err := h.Generator.Generate(genCtx, prompt)
	if err != nil {
		return nil, generated{}, err
	}
	out := generated{GeneratedImage: img}

	resp := &CoordinateResponse{
		Prompt:   prompt,
		Profile:  profile,
		ImageURL: img.URL,
		Items:    []models.ScoredItem{},
	}

	if h.Archiver != nil {
		key, err := h.Archiver.Archive(ctx, img)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to archive generated image, keeping provider URL")
		} else {
			out.key = key
			if url, err := h.Archiver.URL(ctx, key); err == nil {
				resp.ImageURL = url
			}
		}
	}
	if resp.ImageURL == "" {
		return nil, generated{}, errors.New("provider returned image bytes that could not be archived")
	}

	if topK <= 0 {
		topK = h.TopK
	}
	items, err := h.Recommender.Recommend(ctx, recommend.Request{
		Profile:   profile,
		ImageURL:  img.URL,
		ImageData: img.Data,
		TopK:      topK,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to recommend items")
		resp.RecommendError = "Failed to recommend items: " + err.Error()
		return resp, out, nil
	}
	resp.Items = items
	resp.Recommendation = h.summarize(ctx, items)

	return resp, out, nil
}

// summarize returns the chat recommendation for items, or "" when it is unavailable.
func (h *Handler) summarize(ctx context.Context, items []models.ScoredItem) string {
	if h.Chat == nil || len(items) == 0 {
		return ""
	}

	chatCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	text, err := recommend.Summarize(chatCtx, h.Chat, items)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to summarize recommendation")
		return ""
	}
	return text
}
