package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/models"
)

func textCatalog() *catalog.Catalog {
	return catalog.New([]models.CatalogItem{
		{ID: "1", ProductDisplayName: "Casual navy tee", Gender: "Men", BaseColour: "Navy Blue", Usage: "Casual"},
		{ID: "2", ProductDisplayName: "Formal black suit", Gender: "Men", BaseColour: "Black", Usage: "Formal"},
		{ID: "3", ProductDisplayName: "Casual red dress", Gender: "Women", BaseColour: "Red", Usage: "Casual"},
	}, "http://img")
}

func TestIndexRecommenderFiltersByGender(t *testing.T) {
	ctx := context.Background()
	c := textCatalog()
	emb := &fakeEmbedder{dims: 64}
	r, err := NewIndexRecommender(c, emb)
	require.NoError(t, err)
	require.NoError(t, r.Sync(ctx))

	got, err := r.Recommend(ctx, Request{Profile: models.UserProfile{Gender: "Men", Theme: "casual", Color: "navy"}, TopK: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, item := range got {
		require.Equal(t, "Men", item.Gender)
		require.NotEmpty(t, item.ImageURL)
	}
	require.GreaterOrEqual(t, got[0].Score, got[1].Score)
}

func TestIndexRecommenderFallsBackWithoutGenderMatch(t *testing.T) {
	ctx := context.Background()
	r, err := NewIndexRecommender(textCatalog(), &fakeEmbedder{dims: 64})
	require.NoError(t, err)
	require.NoError(t, r.Sync(ctx))

	got, err := r.Recommend(ctx, Request{Profile: models.UserProfile{Gender: "Other", Theme: "casual"}, TopK: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestIndexRecommenderEmpty(t *testing.T) {
	r, err := NewIndexRecommender(catalog.New(nil, ""), &fakeEmbedder{dims: 8})
	require.NoError(t, err)

	_, err = r.Recommend(context.Background(), Request{})
	require.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestIndexRecommenderPersistAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := textCatalog()

	r, err := NewIndexRecommender(c, &fakeEmbedder{dims: 64})
	require.NoError(t, err)
	require.NoError(t, r.Sync(ctx))
	require.NoError(t, r.Persist(dir))

	emb := &fakeEmbedder{dims: 64}
	restored, err := NewIndexRecommender(c, emb)
	require.NoError(t, err)
	require.NoError(t, restored.Load(dir))
	// everything is already indexed, nothing to embed
	require.NoError(t, restored.Sync(ctx))
	require.Empty(t, emb.calls)

	got, err := restored.Recommend(ctx, Request{Profile: models.UserProfile{Gender: "Women", Theme: "casual"}, TopK: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)
	// Only the query was embedded; documents came from the file
	require.Len(t, emb.calls, 1)
}

func TestIndexRecommenderLoadMissingFile(t *testing.T) {
	r, err := NewIndexRecommender(textCatalog(), &fakeEmbedder{dims: 8})
	require.NoError(t, err)
	require.NoError(t, r.Load(t.TempDir()))
}

func TestIndexQueryText(t *testing.T) {
	p := models.UserProfile{Gender: "Women", Theme: "street", Color: "pink"}
	require.Equal(t, "street fashion for Women, favorite color: pink", IndexQueryText(p))
}

func TestIndexRecommenderDefaultsToIndexTopK(t *testing.T) {
	ctx := context.Background()
	items := make([]models.CatalogItem, 0, 8)
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		items = append(items, models.CatalogItem{ID: id, ProductDisplayName: "Tee " + id, Gender: "Men"})
	}
	emb := &fakeEmbedder{dims: 16}
	r, err := NewIndexRecommender(catalog.New(items, "http://img"), emb)
	require.NoError(t, err)
	require.NoError(t, r.Sync(ctx))

	profile := models.UserProfile{Gender: "Men", Theme: "casual", Color: "navy"}
	got, err := r.Recommend(ctx, Request{Profile: profile})
	require.NoError(t, err)
	require.Len(t, got, IndexTopK)
	require.Equal(t, IndexQueryText(profile), emb.calls[len(emb.calls)-1])
}

func TestFlatRecommenderOrdersByDistance(t *testing.T) {
	profile := models.UserProfile{Gender: "Men", Theme: "spring", Color: "navy"}
	emb := &fakeEmbedder{dims: 3, vectors: map[string][]float32{IndexQueryText(profile): {0, 1, 0}}}
	r := NewFlatRecommender(embeddedCatalog(), emb)

	got, err := r.Recommend(context.Background(), Request{Profile: profile, TopK: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// item 3 is an exact match, item 2 is next; no gender filter is applied
	require.Equal(t, "3", got[0].ID)
	require.InDelta(t, 0, got[0].Score, 1e-9)
	require.Equal(t, "2", got[1].ID)
	require.Less(t, got[1].Score, got[2].Score)
	require.Nil(t, got[0].Embedding)
}

func TestFlatRecommenderDefaultsAndEmpty(t *testing.T) {
	emb := &fakeEmbedder{dims: 3}
	got, err := NewFlatRecommender(embeddedCatalog(), emb).Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, got, IndexTopK)

	_, err = NewFlatRecommender(catalog.New(nil, ""), emb).Recommend(context.Background(), Request{})
	require.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}
