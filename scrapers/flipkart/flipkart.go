package flipkart

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/scrapers/base"
)

type FlipkartScraper struct {
	*base.BaseScraper
}

func NewFlipkartScraper(b *base.BaseScraper) *FlipkartScraper {
	return &FlipkartScraper{BaseScraper: b}
}

func (s *FlipkartScraper) CanScrape(url string) bool {
	return strings.Contains(url, "flipkart.com")
}

func (s *FlipkartScraper) ScrapeProduct(ctx context.Context, url string) (*models.CatalogItem, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return doc.Find("h1").Length() > 0 || doc.Find(".B_NuCI").Length() > 0
	})
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc), nil
}

// firstText returns the trimmed text of the first selector that matches.
// Flipkart rotates class names, so old and new ones are both tried.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func ParseDocument(doc *goquery.Document) *models.CatalogItem {
	item := &models.CatalogItem{}

	item.ProductDisplayName = firstText(doc, ".B_NuCI", "h1.yhB1nd span", "h1")
	item.Price = firstText(doc, "div._30jeq3._16Jk6d", "div.Nx9bqj.CxhGGd")
	item.Description = firstText(doc, "div._1mXcCf", "div.yN5-Ad")

	doc.Find("ul._3GnUWp li._20Gt85").Each(func(i int, s *goquery.Selection) {
		// thumbnails are 128px, the same path serves 832px
		if img := s.Find("img").AttrOr("src", ""); img != "" {
			item.ImagePaths = append(item.ImagePaths, strings.Replace(img, "/128/128/", "/832/832/", 1))
		}
	})
	if len(item.ImagePaths) == 0 {
		if img := doc.Find("img._396cs4").AttrOr("src", ""); img != "" {
			item.ImagePaths = append(item.ImagePaths, img)
		}
	}

	item.Gender = base.GuessGender(item.ProductDisplayName)
	item.BaseColour = base.GuessColour(item.ProductDisplayName)
	return item
}
