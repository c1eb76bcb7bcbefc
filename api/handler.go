package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/generate"
	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/media"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/recommend"
	"github.com/raushankrgupta/retailnext/store"
	"github.com/raushankrgupta/retailnext/utils"
)

const (
	generateTimeout = 5 * time.Minute
	chatTimeout     = time.Minute
	shareTTL        = 7 * 24 * time.Hour
)

// Importer scrapes a product page into a catalog item.
type Importer interface {
	Import(ctx context.Context, url string) (*models.CatalogItem, error)
}

// Indexer receives imported items when the vector index strategy is active.
type Indexer interface {
	Add(ctx context.Context, items []models.CatalogItem) error
}

// ShareMailer delivers share emails.
type ShareMailer interface {
	BuildShareEmail(toName, toEmail, senderName, link, imageURL string) *mail.SGMailV3
	Send(message *mail.SGMailV3) error
}

// Deps are the collaborators of the HTTP handlers. Optional ones may be nil,
// the routes that need them then answer 503.
type Deps struct {
	Posts       store.Store
	Catalog     *catalog.Catalog
	Recommender recommend.Recommender
	Generator   generate.ImageGenerator
	Chat        generate.Completer

	Archiver media.Archiver
	Embedder recommend.Embedder
	Indexer  Indexer
	Importer Importer
	Mailer   ShareMailer

	// CatalogFile is rewritten after an import when set.
	CatalogFile  string
	JWTSecret    string
	ShareBaseURL string
	TopK         int
}

// Handler serves the coordinator API.
type Handler struct {
	Deps
}

func NewHandler(d Deps) *Handler {
	if d.TopK <= 0 {
		d.TopK = recommend.DefaultTopK
	}
	return &Handler{Deps: d}
}

// Routes builds the router. Extra mounts, such as the archived image file
// server, are added by the caller on the returned router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.HealthHandler)

	r.Post("/coordinate", h.CoordinateHandler)
	r.Post("/coordinate/refine", h.RefineHandler)
	r.Post("/recommend", h.RecommendHandler)

	r.Get("/posts", h.GalleryHandler)
	r.Get("/posts/{id}", h.PostHandler)
	r.Post("/posts/{id}/like", h.LikeHandler)
	r.Post("/posts/{id}/share", h.ShareHandler)
	r.Get("/share/{token}", h.SharedPostHandler)

	r.Post("/catalog/import", h.ImportHandler)

	return r
}

// HealthHandler reports liveness and the catalog size
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	items := 0
	if h.Catalog != nil {
		items = h.Catalog.Len()
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"catalog_items": items,
	})
}

// respondProviderError maps a failed model call to a response, quota errors become 429.
func respondProviderError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	if llm.IsQuotaError(err) {
		utils.RespondError(ctx, w, "Quota exceeded. Please try again later.", http.StatusTooManyRequests)
		return
	}
	utils.RespondError(ctx, w, "Failed to "+action+": "+err.Error(), http.StatusInternalServerError)
}
