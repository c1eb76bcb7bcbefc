package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/similarity"
)

// EmbeddingRecommender embeds the profile query and ranks the filtered catalog by cosine similarity.
type EmbeddingRecommender struct {
	catalog  *catalog.Catalog
	embedder Embedder
}

// NewEmbeddingRecommender creates a recommender over the precomputed item embeddings of c.
func NewEmbeddingRecommender(c *catalog.Catalog, e Embedder) *EmbeddingRecommender {
	return &EmbeddingRecommender{catalog: c, embedder: e}
}

func (r *EmbeddingRecommender) Recommend(ctx context.Context, req Request) ([]models.ScoredItem, error) {
	var items []models.CatalogItem
	for _, item := range catalog.Filter(r.catalog.Items(), req.Profile) {
		if len(item.Embedding) > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	query, err := embedOne(ctx, r.embedder, QueryText(req.Profile))
	if err != nil {
		return nil, fmt.Errorf("embed profile query: %w", err)
	}

	vectors := make([][]float32, len(items))
	for i, item := range items {
		vectors[i] = item.Embedding
	}

	matches := similarity.TopK(query, vectors, req.topK(), similarity.Cosine)
	out := make([]models.ScoredItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.catalog.Score(items[m.Index], m.Score))
	}

	log.Ctx(ctx).Debug().Int("candidates", len(items)).Int("returned", len(out)).Msg("embedding recommendation")
	return out, nil
}
