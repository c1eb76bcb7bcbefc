package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/store"
	"github.com/raushankrgupta/retailnext/utils"
)

// GalleryResponse represents the response structure for the gallery API
type GalleryResponse struct {
	Top    []models.Post `json:"top"`
	Recent []models.Post `json:"recent"`
}

// queryInt reads a positive integer query parameter, falling back to def
func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// GalleryHandler returns the most liked and the latest posts
func (h *Handler) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	top, err := h.Posts.Top(ctx, queryInt(r, "top", store.DefaultTop))
	if err != nil {
		utils.RespondError(ctx, w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	recent, err := h.Posts.Recent(ctx, queryInt(r, "recent", store.DefaultRecent))
	if err != nil {
		utils.RespondError(ctx, w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, GalleryResponse{
		Top:    h.resolveImages(ctx, top),
		Recent: h.resolveImages(ctx, recent),
	})
}

// PostHandler returns a single post
func (h *Handler) PostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, err := h.Posts.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondPostError(ctx, w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.resolveImage(ctx, post))
}

// LikeHandler adds a like to a post
func (h *Handler) LikeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	post, err := h.Posts.Like(ctx, id)
	if err != nil {
		respondPostError(ctx, w, err)
		return
	}
	zerolog.Ctx(ctx).Info().Str("post_id", id).Int("likes", post.Likes).Msg("Post liked")
	utils.RespondJSON(w, http.StatusOK, h.resolveImage(ctx, post))
}

func respondPostError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrPostNotFound) {
		utils.RespondError(ctx, w, "Post not found", http.StatusNotFound)
		return
	}
	utils.RespondError(ctx, w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
}

func (h *Handler) resolveImages(ctx context.Context, posts []models.Post) []models.Post {
	for i := range posts {
		posts[i] = h.resolveImage(ctx, posts[i])
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts
}

// resolveImage swaps the stored URL for a fresh one when the image was archived
func (h *Handler) resolveImage(ctx context.Context, post models.Post) models.Post {
	if post.ImageKey == "" || h.Archiver == nil {
		return post
	}
	url, err := h.Archiver.URL(ctx, post.ImageKey)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("post_id", post.ID).Msg("Failed to resolve archived image")
		return post
	}
	post.ImageURL = url
	return post
}
