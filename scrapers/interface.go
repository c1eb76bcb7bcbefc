package scrapers

import (
	"context"

	"github.com/raushankrgupta/retailnext/models"
)

// Scraper turns a retailer product page into a catalog item
type Scraper interface {
	// CanScrape checks if the scraper can handle the given URL
	CanScrape(url string) bool
	// ScrapeProduct scrapes the product details from the given URL
	ScrapeProduct(ctx context.Context, url string) (*models.CatalogItem, error)
}
