// Package media archives generated images so gallery posts outlive provider URLs.
package media

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/utils"
)

// Archiver stores generated images and resolves their keys to URLs.
type Archiver interface {
	// Archive stores img and returns its key.
	Archive(ctx context.Context, img *models.GeneratedImage) (string, error)
	URL(ctx context.Context, key string) (string, error)
}

// payload returns the image bytes, downloading them from the provider URL when needed.
func payload(ctx context.Context, img *models.GeneratedImage) ([]byte, string, error) {
	if img == nil {
		return nil, "", fmt.Errorf("no image to archive")
	}

	data := img.Data
	if len(data) == 0 {
		if img.URL == "" {
			return nil, "", fmt.Errorf("image has neither data nor url")
		}
		var err error
		data, err = utils.FetchImage(ctx, img.URL)
		if err != nil {
			return nil, "", fmt.Errorf("download generated image: %w", err)
		}
	}

	contentType := img.MIMEType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// newKey names an archived image after a fresh uuid and its content type.
func newKey(contentType string) string {
	ext := ".png"
	switch strings.SplitN(contentType, ";", 2)[0] {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
	default:
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return "generated/" + uuid.NewString() + ext
}
