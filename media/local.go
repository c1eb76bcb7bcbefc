package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/models"
)

// LocalArchiver writes images to a directory served by the API under URLPrefix.
type LocalArchiver struct {
	Dir       string
	URLPrefix string
}

// NewLocalArchiver creates dir when missing.
func NewLocalArchiver(dir, urlPrefix string) (*LocalArchiver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalArchiver{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (a *LocalArchiver) Archive(ctx context.Context, img *models.GeneratedImage) (string, error) {
	data, contentType, err := payload(ctx, img)
	if err != nil {
		return "", err
	}

	key := newKey(contentType)
	if err := os.WriteFile(filepath.Join(a.Dir, path.Base(key)), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("key", key).Int("bytes", len(data)).Msg("Archived generated image")
	return key, nil
}

func (a *LocalArchiver) URL(_ context.Context, key string) (string, error) {
	return path.Join(a.URLPrefix, path.Base(key)), nil
}
