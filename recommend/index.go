package recommend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
)

const (
	collectionName = "catalog"
	indexFile      = "catalog.gob.gz"
)

// IndexRecommender keeps the catalog in a chromem-go vector collection and
// answers with a nearest neighbour query filtered by gender.
type IndexRecommender struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	catalog    *catalog.Catalog
}

// NewIndexRecommender creates an empty in-memory index over c. Call Sync or Load to fill it.
func NewIndexRecommender(c *catalog.Catalog, e Embedder) (*IndexRecommender, error) {
	db := chromem.NewDB()
	ef := toChromemFunc(e)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &IndexRecommender{db: db, collection: col, embedFunc: ef, catalog: c}, nil
}

// toChromemFunc adapts an Embedder to the single text function chromem expects.
func toChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedOne(ctx, e, text)
	}
}

// Sync adds every catalog item missing from the index. Items without a
// precomputed embedding are embedded from their text.
func (r *IndexRecommender) Sync(ctx context.Context) error {
	r.mu.RLock()
	col := r.collection
	r.mu.RUnlock()

	var missing []models.CatalogItem
	for _, item := range r.catalog.Items() {
		if _, err := col.GetByID(ctx, item.ID); err != nil {
			missing = append(missing, item)
		}
	}
	return r.Add(ctx, missing)
}

// Add indexes items, replacing documents with the same id.
func (r *IndexRecommender) Add(ctx context.Context, items []models.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, chromem.Document{
			ID:        item.ID,
			Content:   catalog.ItemText(item),
			Embedding: item.Embedding,
			Metadata: map[string]string{
				"gender": strings.ToLower(item.Gender),
			},
		})
	}

	r.mu.RLock()
	col := r.collection
	r.mu.RUnlock()

	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	log.Ctx(ctx).Info().Int("documents", col.Count()).Msg("catalog index updated")
	return nil
}

func (r *IndexRecommender) Recommend(ctx context.Context, req Request) ([]models.ScoredItem, error) {
	r.mu.RLock()
	col := r.collection
	r.mu.RUnlock()

	count := col.Count()
	if count == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	limit := req.topKOr(IndexTopK)
	if limit > count {
		limit = count
	}

	query := IndexQueryText(req.Profile)
	results, err := col.Query(ctx, query, limit, map[string]string{"gender": strings.ToLower(req.Profile.Gender)}, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}
	if len(results) == 0 {
		// Nobody of that gender in the catalog, rank everything
		results, err = col.Query(ctx, query, limit, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("chromem query: %w", err)
		}
	}

	byID := make(map[string]models.CatalogItem)
	for _, item := range r.catalog.Items() {
		byID[item.ID] = item
	}

	out := make([]models.ScoredItem, 0, len(results))
	for _, res := range results {
		item, ok := byID[res.ID]
		if !ok {
			continue
		}
		out = append(out, r.catalog.Score(item, float64(res.Similarity)))
	}
	return out, nil
}

// Persist saves the index to dir.
func (r *IndexRecommender) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db.ExportToFile(filepath.Join(dir, indexFile), true, "")
}

// Load restores the index from dir. A missing index file is not an error; the index stays as is.
func (r *IndexRecommender) Load(dir string) error {
	path := filepath.Join(dir, indexFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.db.ImportFromFile(path, ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := r.db.GetCollection(collectionName, r.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	r.collection = col
	return nil
}
