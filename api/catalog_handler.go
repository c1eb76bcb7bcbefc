package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/utils"
)

// ImportRequest names the product page to import
type ImportRequest struct {
	URL string `json:"url"`
}

// ImportHandler scrapes a product page and adds it to the catalog
func (h *Handler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	// Support both Query Params and JSON Body
	productURL := r.URL.Query().Get("url")
	if productURL == "" {
		var req ImportRequest
		if err := utils.DecodeJSON(r, &req); err == nil {
			productURL = strings.TrimSpace(req.URL)
		}
	}
	if productURL == "" {
		utils.RespondError(ctx, w, "Please provide a 'url' query parameter or JSON body", http.StatusBadRequest)
		return
	}
	if h.Importer == nil || h.Catalog == nil {
		utils.RespondError(ctx, w, "Catalog import is not configured", http.StatusServiceUnavailable)
		return
	}

	item, err := h.Importer.Import(ctx, productURL)
	if err != nil {
		utils.RespondError(ctx, w, fmt.Sprintf("Scraping failed: %v", err), http.StatusBadGateway)
		return
	}

	if h.Embedder != nil {
		vecs, err := h.Embedder.Embed(ctx, []string{catalog.ItemText(*item)})
		if err != nil {
			respondProviderError(ctx, w, "embed product", err)
			return
		}
		if len(vecs) > 0 {
			item.Embedding = vecs[0]
		}
	}

	h.Catalog.Upsert(*item)
	if h.Indexer != nil {
		if err := h.Indexer.Add(ctx, []models.CatalogItem{*item}); err != nil {
			logger.Error().Err(err).Str("id", item.ID).Msg("Failed to index imported product")
		}
	}
	if h.CatalogFile != "" {
		if err := h.Catalog.Save(h.CatalogFile); err != nil {
			logger.Error().Err(err).Str("path", h.CatalogFile).Msg("Failed to save catalog")
		}
	}

	logger.Info().Str("id", item.ID).Str("name", item.ProductDisplayName).Msg("Product imported")
	utils.RespondJSON(w, http.StatusCreated, h.Catalog.Score(*item, 0))
}
