package scrapers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/scrapers/base"
	"github.com/raushankrgupta/retailnext/scrapers/flipkart"
	"github.com/raushankrgupta/retailnext/scrapers/generic"
	"github.com/raushankrgupta/retailnext/scrapers/myntra"
	"github.com/raushankrgupta/retailnext/utils"
)

// Registry picks a site scraper for a product URL.
type Registry struct {
	scrapers []Scraper
}

// NewRegistry registers the site scrapers. The generic Open Graph scraper goes last
// and accepts any URL. headless enables the chromedp fallback.
func NewRegistry(headless bool) *Registry {
	b := base.NewBaseScraper(headless)
	return &Registry{
		scrapers: []Scraper{
			myntra.NewMyntraScraper(b),
			flipkart.NewFlipkartScraper(b),
			generic.NewGenericScraper(b),
		},
	}
}

// GetScraper returns the appropriate scraper and the resolved URL
func (r *Registry) GetScraper(ctx context.Context, url string) (Scraper, string, error) {
	// Resolve shortened URLs (e.g., bit.ly)
	resolvedURL, err := utils.ResolveShortenedURL(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	for _, s := range r.scrapers {
		if s.CanScrape(resolvedURL) {
			return s, resolvedURL, nil
		}
	}

	return nil, resolvedURL, fmt.Errorf("no scraper found for url: %s", resolvedURL)
}

// ImportID derives a stable catalog id from a product page URL, so importing
// the same page again replaces the earlier item.
func ImportID(resolved string) string {
	return "import-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(resolved)).String()[:8]
}

// Import scrapes url into a catalog item ready to be added to the catalog.
func (r *Registry) Import(ctx context.Context, url string) (*models.CatalogItem, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid product url: %q", url)
	}

	scraper, resolved, err := r.GetScraper(ctx, url)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("url", resolved).Str("scraper", fmt.Sprintf("%T", scraper)).Msg("Importing product")

	item, err := scraper.ScrapeProduct(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", resolved, err)
	}
	if item.ProductDisplayName == "" {
		return nil, fmt.Errorf("scrape %s: no product name found", resolved)
	}

	if item.ID == "" {
		item.ID = ImportID(resolved)
	}
	item.SourceURL = resolved
	return item, nil
}
