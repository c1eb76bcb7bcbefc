package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/utils"
)

// ShareRequest optionally emails the share link
type ShareRequest struct {
	ToEmail    string `json:"to_email,omitempty"`
	ToName     string `json:"to_name,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
}

// ShareResponse carries the signed link to a post
type ShareResponse struct {
	Token   string `json:"token"`
	Link    string `json:"link"`
	Emailed bool   `json:"emailed"`
}

// ShareHandler signs a share link for a post and emails it when asked
func (h *Handler) ShareHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req ShareRequest
	// the body is optional
	if err := utils.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(ctx, w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Get(ctx, id)
	if err != nil {
		respondPostError(ctx, w, err)
		return
	}

	token, err := utils.GenerateShareToken(h.JWTSecret, post.ID, shareTTL)
	if err != nil {
		if errors.Is(err, utils.ErrShareDisabled) {
			utils.RespondError(ctx, w, "Sharing is not configured", http.StatusServiceUnavailable)
			return
		}
		utils.RespondError(ctx, w, "Failed to sign share link", http.StatusInternalServerError)
		return
	}
	resp := ShareResponse{
		Token: token,
		Link:  strings.TrimRight(h.ShareBaseURL, "/") + "/share/" + token,
	}

	if req.ToEmail != "" {
		if h.Mailer == nil {
			utils.RespondError(ctx, w, "Email sharing is not configured", http.StatusServiceUnavailable)
			return
		}
		post = h.resolveImage(ctx, post)
		msg := h.Mailer.BuildShareEmail(req.ToName, req.ToEmail, req.SenderName, resp.Link, post.ImageURL)
		if err := h.Mailer.Send(msg); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("post_id", id).Msg("Failed to send share email")
			utils.RespondError(ctx, w, "Failed to send share email", http.StatusBadGateway)
			return
		}
		resp.Emailed = true
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// SharedPostHandler resolves a share link to its post
func (h *Handler) SharedPostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := utils.ValidateShareToken(h.JWTSecret, chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, utils.ErrShareDisabled) {
			utils.RespondError(ctx, w, "Sharing is not configured", http.StatusServiceUnavailable)
			return
		}
		utils.RespondError(ctx, w, "Invalid or expired share link", http.StatusUnauthorized)
		return
	}

	post, err := h.Posts.Get(ctx, postID)
	if err != nil {
		respondPostError(ctx, w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.resolveImage(ctx, post))
}
