// Package store persists gallery posts.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/raushankrgupta/retailnext/models"
)

const (
	// DefaultTop is how many posts the "most liked" list shows.
	DefaultTop = 5
	// DefaultRecent is how many posts the "latest" list shows.
	DefaultRecent = 20
)

// ErrPostNotFound is returned when no post has the requested id.
var ErrPostNotFound = errors.New("post not found")

// Store is the gallery post list.
type Store interface {
	// List returns every post in creation order.
	List(ctx context.Context) ([]models.Post, error)
	Add(ctx context.Context, post models.Post) error
	// Like increments the likes of every post with the id and returns the first of them.
	Like(ctx context.Context, id string) (models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	// Top returns up to n posts ordered by likes, most liked first.
	Top(ctx context.Context, n int) ([]models.Post, error)
	// Recent returns up to n posts, newest first.
	Recent(ctx context.Context, n int) ([]models.Post, error)
}

// topPosts sorts a copy of posts by likes. Ties keep creation order.
func topPosts(posts []models.Post, n int) []models.Post {
	if n <= 0 {
		n = DefaultTop
	}
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// recentPosts expects posts in creation order.
func recentPosts(posts []models.Post, n int) []models.Post {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > len(posts) {
		n = len(posts)
	}
	out := make([]models.Post, 0, n)
	for i := len(posts) - 1; i >= len(posts)-n; i-- {
		out = append(out, posts[i])
	}
	return out
}
