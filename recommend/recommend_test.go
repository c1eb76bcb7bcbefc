package recommend

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/utils"
)

// fakeEmbedder returns canned vectors per text and a deterministic
// character-hash vector for anything else.
type fakeEmbedder struct {
	dims    int
	vectors map[string][]float32
	calls   []string
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		f.calls = append(f.calls, text)
		if v, ok := f.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = hashVector(text, f.dims)
	}
	return out, nil
}

func hashVector(text string, dims int) []float32 {
	vec := make([]float32, dims)
	for i, ch := range text {
		vec[(int(ch)+i)%dims] += 1
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

type fakeChat struct {
	reply string
	got   llm.CompletionRequest
}

func (f *fakeChat) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.got = req
	return f.reply, nil
}

func embeddedCatalog() *catalog.Catalog {
	return catalog.New([]models.CatalogItem{
		{ID: "1", ProductDisplayName: "Navy Tee", Gender: "Men", BaseColour: "Navy Blue", Season: "Summer", Embedding: []float32{1, 0, 0}},
		{ID: "2", ProductDisplayName: "Black Jeans", Gender: "Men", BaseColour: "Black", Season: "Fall", Embedding: []float32{0.8, 0.6, 0}},
		{ID: "3", ProductDisplayName: "Blue Shirt", Gender: "Men", BaseColour: "Blue", Season: "Spring", Embedding: []float32{0, 1, 0}},
		{ID: "4", ProductDisplayName: "Red Dress", Gender: "Women", BaseColour: "Red", Season: "Summer", Embedding: []float32{1, 0, 0}},
		{ID: "5", ProductDisplayName: "White Tee", Gender: "Men", BaseColour: "White", Season: "Summer", Embedding: []float32{1, 0, 0}},
	}, "http://img")
}

func TestQueryText(t *testing.T) {
	p := models.UserProfile{Theme: "spring", Gender: "Men", Color: "navy"}
	require.Equal(t, "spring fashion for Men, color: navy", QueryText(p))
}

func TestEmbeddingRecommenderRanksFilteredItems(t *testing.T) {
	profile := models.UserProfile{Theme: "casual", Gender: "Men", Color: "navy"}
	emb := &fakeEmbedder{dims: 3, vectors: map[string][]float32{QueryText(profile): {1, 0, 0}}}
	r := NewEmbeddingRecommender(embeddedCatalog(), emb)

	got, err := r.Recommend(context.Background(), Request{Profile: profile})
	require.NoError(t, err)

	// navy expands to blue and black: items 1, 2, 3 only; white tee and women's dress are filtered out
	require.Len(t, got, 3)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "2", got[1].ID)
	require.Equal(t, "3", got[2].ID)
	require.InDelta(t, 1.0, got[0].Score, 1e-6)
	require.InDelta(t, 0.8, got[1].Score, 1e-6)
	require.Equal(t, "http://img/1.jpg", got[0].ImageURL)
	require.Nil(t, got[0].Embedding)
	require.Equal(t, []string{"casual fashion for Men, color: navy"}, emb.calls)
}

func TestEmbeddingRecommenderTopK(t *testing.T) {
	profile := models.UserProfile{Gender: "Men", Color: "navy"}
	emb := &fakeEmbedder{dims: 3, vectors: map[string][]float32{QueryText(profile): {0, 1, 0}}}
	r := NewEmbeddingRecommender(embeddedCatalog(), emb)

	got, err := r.Recommend(context.Background(), Request{Profile: profile, TopK: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)
}

func TestEmbeddingRecommenderErrors(t *testing.T) {
	r := NewEmbeddingRecommender(catalog.New(nil, ""), &fakeEmbedder{dims: 3})
	_, err := r.Recommend(context.Background(), Request{})
	require.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	boom := errors.New("boom")
	r = NewEmbeddingRecommender(embeddedCatalog(), &fakeEmbedder{err: boom})
	_, err = r.Recommend(context.Background(), Request{Profile: models.UserProfile{Gender: "Men"}})
	require.ErrorIs(t, err, boom)
}

func pngOf(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func colorCatalog() *catalog.Catalog {
	return catalog.New([]models.CatalogItem{
		{ID: "10021", Gender: "Men", Color: []float64{250, 10, 10}},
		{ID: "10023", Gender: "Men", Color: []float64{10, 10, 250}},
		{ID: "10025", Gender: "Men", Color: []float64{200, 30, 40}},
		{ID: "10022", Gender: "Women", Color: []float64{255, 0, 0}},
		{ID: "10027", Gender: "Men"},
	}, "http://img")
}

func TestColorRecommenderUsesImageData(t *testing.T) {
	r := NewColorRecommender(colorCatalog())

	got, err := r.Recommend(context.Background(), Request{
		Profile:   models.UserProfile{Gender: "Men"},
		ImageData: pngOf(t, color.RGBA{R: 240, G: 20, B: 20, A: 255}),
		TopK:      2,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "10021", got[0].ID)
	require.Equal(t, "10025", got[1].ID)
}

func TestColorRecommenderFetchesURL(t *testing.T) {
	r := NewColorRecommender(colorCatalog())
	blue := pngOf(t, color.RGBA{B: 255, A: 255})
	r.fetch = func(_ context.Context, url string) ([]byte, error) {
		require.Equal(t, "https://img.example/gen.png", url)
		return blue, nil
	}

	got, err := r.Recommend(context.Background(), Request{
		Profile:  models.UserProfile{Gender: "Other"},
		ImageURL: "https://img.example/gen.png",
		TopK:     1,
	})
	require.NoError(t, err)
	require.Equal(t, "10023", got[0].ID)
}

func TestColorRecommenderNeedsImage(t *testing.T) {
	r := NewColorRecommender(colorCatalog())
	_, err := r.Recommend(context.Background(), Request{Profile: models.UserProfile{Gender: "Men"}})
	require.ErrorIs(t, err, ErrNoImage)

	r = NewColorRecommender(catalog.New(nil, ""))
	_, err = r.Recommend(context.Background(), Request{ImageURL: "x"})
	require.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestColorRecommenderRefusesLocalPaths(t *testing.T) {
	r := NewColorRecommender(colorCatalog())
	_, err := r.Recommend(context.Background(), Request{ImageURL: "/etc/passwd"})
	require.ErrorIs(t, err, utils.ErrInvalidImageURL)
}

func TestSummarize(t *testing.T) {
	chat := &fakeChat{reply: "Pair the navy tee with black jeans."}
	items := []models.ScoredItem{
		{CatalogItem: models.CatalogItem{ProductDisplayName: "Navy Tee", BaseColour: "Navy Blue", Season: "Summer"}},
		{CatalogItem: models.CatalogItem{ProductDisplayName: "Black Jeans", BaseColour: "Black", Season: "Fall"}},
	}

	out, err := Summarize(context.Background(), chat, items)
	require.NoError(t, err)
	require.Equal(t, "Pair the navy tee with black jeans.", out)
	require.InDelta(t, 0.3, chat.got.Temperature, 1e-9)
	require.Len(t, chat.got.Messages, 2)
	require.Contains(t, chat.got.Messages[1].Content, "Navy Tee (Navy Blue, Summer)\nBlack Jeans (Black, Fall)")

	out, err = Summarize(context.Background(), chat, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestExplain(t *testing.T) {
	chat := &fakeChat{reply: "Go with the tee."}
	profile := models.UserProfile{Gender: "Men", Theme: "street", Color: "black"}
	items := []models.ScoredItem{{CatalogItem: models.CatalogItem{ProductDisplayName: "Tee", Description: "Oversized cotton tee"}}}

	out, err := Explain(context.Background(), chat, profile, items)
	require.NoError(t, err)
	require.Equal(t, "Go with the tee.", out)
	require.Contains(t, chat.got.Messages[1].Content, "- Theme: street")
	require.Contains(t, chat.got.Messages[1].Content, "1. Tee - Oversized cotton tee")
}
