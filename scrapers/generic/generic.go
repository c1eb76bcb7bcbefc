// Package generic scrapes any product page that publishes Open Graph tags.
package generic

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/scrapers/base"
)

type GenericScraper struct {
	*base.BaseScraper
}

func NewGenericScraper(b *base.BaseScraper) *GenericScraper {
	return &GenericScraper{BaseScraper: b}
}

// CanScrape accepts every URL; register it last.
func (s *GenericScraper) CanScrape(url string) bool {
	return true
}

func (s *GenericScraper) ScrapeProduct(ctx context.Context, url string) (*models.CatalogItem, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return base.MetaContent(doc, "og:title") != "" || doc.Find("h1").Length() > 0
	})
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc), nil
}

func ParseDocument(doc *goquery.Document) *models.CatalogItem {
	item := &models.CatalogItem{}

	item.ProductDisplayName = base.MetaContent(doc, "og:title")
	if item.ProductDisplayName == "" {
		item.ProductDisplayName = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if item.ProductDisplayName == "" {
		item.ProductDisplayName = strings.TrimSpace(doc.Find("title").First().Text())
	}

	item.Description = base.MetaContent(doc, "og:description")
	if item.Description == "" {
		item.Description = base.MetaContent(doc, "description")
	}

	if amount := base.MetaContent(doc, "product:price:amount"); amount != "" {
		item.Price = strings.TrimSpace(base.MetaContent(doc, "product:price:currency") + " " + amount)
	}

	doc.Find(`meta[property="og:image"]`).Each(func(i int, s *goquery.Selection) {
		if src := strings.TrimSpace(s.AttrOr("content", "")); src != "" {
			item.ImagePaths = append(item.ImagePaths, src)
		}
	})

	text := item.ProductDisplayName + " " + item.Description
	item.Gender = base.GuessGender(text)
	item.BaseColour = base.GuessColour(item.ProductDisplayName)
	if item.BaseColour == "" {
		item.BaseColour = base.GuessColour(item.Description)
	}
	return item
}
