package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/similarity"
	"github.com/raushankrgupta/retailnext/utils"
)

// ColorFeature is the mean color of a catalog image.
type ColorFeature struct {
	Color  []float64 `json:"color"`
	Gender string    `json:"gender,omitempty"`
}

// LoadColorFeatures reads a color feature file keyed by image filename.
// Values are either a bare RGB array or an object with color and gender.
func LoadColorFeatures(path string) (map[string]ColorFeature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read color features: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse color features %s: %w", path, err)
	}

	features := make(map[string]ColorFeature, len(raw))
	for filename, msg := range raw {
		var f ColorFeature
		if err := json.Unmarshal(msg, &f.Color); err != nil {
			if err := json.Unmarshal(msg, &f); err != nil {
				return nil, fmt.Errorf("parse color feature %s: %w", filename, err)
			}
		}
		f.Gender = normalizeGender(f.Gender)
		features[filename] = f
	}
	return features, nil
}

// SaveColorFeatures writes features as indented JSON.
func SaveColorFeatures(path string, features map[string]ColorFeature) error {
	data, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// normalizeGender maps the Japanese labels of older feature files to catalog genders.
func normalizeGender(g string) string {
	switch g {
	case "男性":
		return "Men"
	case "女性":
		return "Women"
	}
	return g
}

// AssignGender derives a placeholder gender from a numeric image name: odd ids are Men, even ids Women.
// Non-numeric names get an empty gender.
func AssignGender(filename string) string {
	id, err := strconv.Atoi(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if err != nil {
		return ""
	}
	if id%2 == 1 {
		return "Men"
	}
	return "Women"
}

// FromColorFeatures builds catalog items from a color feature file alone.
// Items are ordered by filename so rankings are reproducible.
func FromColorFeatures(features map[string]ColorFeature) []models.CatalogItem {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]models.CatalogItem, 0, len(names))
	for _, name := range names {
		f := features[name]
		gender := f.Gender
		if gender == "" {
			gender = AssignGender(name)
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		items = append(items, models.CatalogItem{
			ID:                 id,
			ProductDisplayName: "Fashion item " + id,
			Gender:             gender,
			Filename:           name,
			Color:              f.Color,
		})
	}
	return items
}

// ListSampleImages returns the .jpg file names of a GitHub contents API directory listing.
func ListSampleImages(ctx context.Context, apiURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list sample images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list sample images: github returned %s", resp.Status)
	}

	var entries []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode sample image listing: %w", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name, ".jpg") {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

// ExtractColorFeatures downloads every image under baseURL and computes its mean color.
// Images that fail to download or decode get a black [0, 0, 0] vector so the file stays complete.
func ExtractColorFeatures(ctx context.Context, baseURL string, filenames []string) map[string]ColorFeature {
	base := strings.TrimSuffix(baseURL, "/") + "/"
	urlToName := make(map[string]string, len(filenames))
	urls := make([]string, 0, len(filenames))
	for _, name := range filenames {
		urlToName[base+name] = name
		urls = append(urls, base+name)
	}

	features := make(map[string]ColorFeature, len(filenames))
	var mu sync.Mutex
	failed := utils.DownloadImages(ctx, urls, func(url string, data []byte) error {
		color, err := similarity.MeanColorOf(data)
		if err != nil {
			return err
		}
		name := urlToName[url]
		mu.Lock()
		features[name] = ColorFeature{Color: color, Gender: AssignGender(name)}
		mu.Unlock()
		log.Ctx(ctx).Info().Str("file", name).Msg("processed")
		return nil
	})

	for _, url := range failed {
		name := urlToName[url]
		features[name] = ColorFeature{Color: []float64{0, 0, 0}, Gender: AssignGender(name)}
	}
	return features
}
