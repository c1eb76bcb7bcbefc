package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/similarity"
)

// FlatRecommender is an exhaustive L2 search over every embedded catalog item,
// with no gender or color filtering. Scores are L2 distances, lower is closer.
type FlatRecommender struct {
	catalog  *catalog.Catalog
	embedder Embedder
}

// NewFlatRecommender creates a flat L2 recommender over the item embeddings of c.
func NewFlatRecommender(c *catalog.Catalog, e Embedder) *FlatRecommender {
	return &FlatRecommender{catalog: c, embedder: e}
}

func (r *FlatRecommender) Recommend(ctx context.Context, req Request) ([]models.ScoredItem, error) {
	var items []models.CatalogItem
	for _, item := range r.catalog.Items() {
		if len(item.Embedding) > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	query, err := embedOne(ctx, r.embedder, IndexQueryText(req.Profile))
	if err != nil {
		return nil, fmt.Errorf("embed profile query: %w", err)
	}

	vectors := make([][]float32, len(items))
	for i, item := range items {
		vectors[i] = item.Embedding
	}

	matches := similarity.Nearest(query, vectors, req.topKOr(IndexTopK))
	out := make([]models.ScoredItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.catalog.Score(items[m.Index], m.Score))
	}

	log.Ctx(ctx).Debug().Int("candidates", len(items)).Int("returned", len(out)).Msg("flat L2 recommendation")
	return out, nil
}
