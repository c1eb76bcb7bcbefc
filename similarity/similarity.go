// Package similarity ranks catalog vectors against a query vector.
package similarity

import (
	"math"
	"sort"
)

// Match is a candidate index with its score against the query.
type Match struct {
	Index int
	Score float64
}

// Cosine computes the cosine similarity between two float32 vectors.
// Returns 0 if the vectors have different lengths, are empty, or either has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Cosine64 is Cosine for float64 vectors such as mean colors.
func Cosine64(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Euclidean returns the L2 distance between a and b, or +Inf on length mismatch.
func Euclidean(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// TopK scores every candidate with score, sorts descending and keeps at most k.
// Ties keep candidate order. k <= 0 returns nil.
func TopK[V any](query V, candidates []V, k int, score func(a, b V) float64) []Match {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		matches[i] = Match{Index: i, Score: score(query, c)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

// Nearest is TopK by ascending L2 distance, the ordering of a flat L2 index.
// Match.Score holds the distance.
func Nearest(query []float32, candidates [][]float32, k int) []Match {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		matches[i] = Match{Index: i, Score: Euclidean(query, c)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
