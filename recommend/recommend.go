// Package recommend ranks catalog items for a coordination request.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
)

// DefaultTopK is the number of items recommended when a request does not say.
const DefaultTopK = 3

// IndexTopK is the default for the vector index strategies.
const IndexTopK = 5

// ErrNoImage is returned by image based strategies when the request carries no image.
var ErrNoImage = errors.New("recommendation needs the generated image")

// Request describes what to recommend for.
type Request struct {
	Profile models.UserProfile
	// ImageURL and ImageData point at the generated coordination, used by image based strategies.
	ImageURL  string
	ImageData []byte
	TopK      int
}

func (r Request) topK() int {
	return r.topKOr(DefaultTopK)
}

func (r Request) topKOr(def int) int {
	if r.TopK <= 0 {
		return def
	}
	return r.TopK
}

// Recommender ranks catalog items for a request, best first.
type Recommender interface {
	Recommend(ctx context.Context, req Request) ([]models.ScoredItem, error)
}

// Embedder generates text embeddings.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer runs chat completions.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// QueryText is the text embedded for a profile.
func QueryText(p models.UserProfile) string {
	return fmt.Sprintf("%s fashion for %s, color: %s", p.Theme, p.Gender, p.Color)
}

// IndexQueryText is the text the vector index strategies embed for a profile.
func IndexQueryText(p models.UserProfile) string {
	return fmt.Sprintf("%s fashion for %s, favorite color: %s", p.Theme, p.Gender, p.Color)
}

func embedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	return vecs[0], nil
}
