// Package catalog loads the precomputed product catalog and narrows it for a profile.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/raushankrgupta/retailnext/models"
)

// ErrEmptyCatalog is returned when a ranking is asked of a catalog with no items.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Catalog is the in-memory product catalog. It is safe for concurrent use.
type Catalog struct {
	mu           sync.RWMutex
	saveMu       sync.Mutex
	items        []models.CatalogItem
	imageBaseURL string
}

// New creates a catalog over items. Item images resolve against imageBaseURL.
func New(items []models.CatalogItem, imageBaseURL string) *Catalog {
	return &Catalog{items: items, imageBaseURL: strings.TrimSuffix(imageBaseURL, "/")}
}

// Load reads a JSON array of catalog items. A missing file yields an empty catalog.
func Load(path, imageBaseURL string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(nil, imageBaseURL), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return New(items, imageBaseURL), nil
}

// Save writes the catalog as an indented JSON array through a temp file and rename.
// Concurrent saves are serialised.
func (c *Catalog) Save(path string) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.RLock()
	data, err := json.MarshalIndent(c.items, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

// Items returns a snapshot of the catalog.
func (c *Catalog) Items() []models.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Upsert adds item, replacing an existing item with the same id.
func (c *Catalog) Upsert(item models.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// AttachColors sets the mean color of every item whose image file has a feature.
func (c *Catalog) AttachColors(features map[string]ColorFeature) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.items {
		if f, ok := features[imageFilename(c.items[i])]; ok {
			c.items[i].Color = f.Color
			n++
		}
	}
	return n
}

// ImageURL returns the public URL of an item's image.
func (c *Catalog) ImageURL(item models.CatalogItem) string {
	if len(item.ImagePaths) > 0 && strings.HasPrefix(item.ImagePaths[0], "http") {
		return item.ImagePaths[0]
	}
	return c.imageBaseURL + "/" + imageFilename(item)
}

// Score wraps an item with its score and image URL. The embedding is dropped from the copy.
func (c *Catalog) Score(item models.CatalogItem, score float64) models.ScoredItem {
	item.Embedding = nil
	return models.ScoredItem{CatalogItem: item, ImageURL: c.ImageURL(item), Score: score}
}

func imageFilename(item models.CatalogItem) string {
	if item.Filename != "" {
		return item.Filename
	}
	return item.ID + ".jpg"
}

// ItemText is the text embedded for an item.
func ItemText(item models.CatalogItem) string {
	name := item.ProductDisplayName
	desc := item.Description
	if desc == "" {
		desc = strings.TrimSpace(strings.Join([]string{item.Gender, item.Season, item.Usage}, " "))
	}
	style := item.Style
	if style == "" {
		style = item.Usage
	}
	return fmt.Sprintf("%s. %s. Color: %s. Style: %s.", name, desc, item.BaseColour, style)
}
