package recommend

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/similarity"
	"github.com/raushankrgupta/retailnext/utils"
)

// ColorRecommender ranks catalog items by how close their mean color is to the generated image.
type ColorRecommender struct {
	catalog *catalog.Catalog
	fetch   func(ctx context.Context, url string) ([]byte, error)
}

// NewColorRecommender creates a recommender over the item colors of c.
func NewColorRecommender(c *catalog.Catalog) *ColorRecommender {
	return &ColorRecommender{catalog: c, fetch: utils.FetchImage}
}

func (r *ColorRecommender) Recommend(ctx context.Context, req Request) ([]models.ScoredItem, error) {
	var withColor []models.CatalogItem
	for _, item := range r.catalog.Items() {
		if len(item.Color) == 3 {
			withColor = append(withColor, item)
		}
	}
	items := catalog.FilterGender(withColor, req.Profile.Gender)
	if len(items) == 0 {
		items = withColor
	}
	if len(items) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	data := req.ImageData
	if len(data) == 0 {
		if req.ImageURL == "" {
			return nil, ErrNoImage
		}
		var err error
		data, err = r.fetch(ctx, req.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch generated image: %w", err)
		}
	}

	query, err := similarity.MeanColorOf(data)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float64, len(items))
	for i, item := range items {
		vectors[i] = item.Color
	}

	matches := similarity.TopK(query, vectors, req.topK(), similarity.Cosine64)
	out := make([]models.ScoredItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.catalog.Score(items[m.Index], m.Score))
	}
	return out, nil
}
