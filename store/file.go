package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/models"
)

// FileStore keeps the whole post list in memory and rewrites the JSON file on every change.
type FileStore struct {
	mu    sync.Mutex
	path  string
	posts []models.Post
}

// OpenFileStore loads the post list at path. A missing file is created empty.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.posts = []models.Post{}
		if err := s.persist(); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Created empty post store")
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read posts file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.posts = []models.Post{}
		return s, nil
	}
	if err := json.Unmarshal(data, &s.posts); err != nil {
		return nil, fmt.Errorf("decode posts file %s: %w", path, err)
	}
	if s.posts == nil {
		s.posts = []models.Post{}
	}
	log.Info().Str("path", path).Int("posts", len(s.posts)).Msg("Loaded post store")
	return s, nil
}

func (s *FileStore) List(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *FileStore) Add(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append(s.posts, post)
	if err := s.persist(); err != nil {
		s.posts = s.posts[:len(s.posts)-1]
		return err
	}
	return nil
}

func (s *FileStore) Like(_ context.Context, id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []int
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Likes++
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return models.Post{}, ErrPostNotFound
	}

	if err := s.persist(); err != nil {
		for _, i := range matched {
			s.posts[i].Likes--
		}
		return models.Post{}, err
	}
	return s.posts[matched[0]], nil
}

func (s *FileStore) Get(_ context.Context, id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

func (s *FileStore) Top(_ context.Context, n int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return topPosts(s.posts, n), nil
}

func (s *FileStore) Recent(_ context.Context, n int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recentPosts(s.posts, n), nil
}

// persist writes the list through a temp file and a rename. Callers hold mu.
func (s *FileStore) persist() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.posts); err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create posts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".posts-*.json")
	if err != nil {
		return fmt.Errorf("create temp posts file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write posts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp posts file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace posts file: %w", err)
	}
	return nil
}
