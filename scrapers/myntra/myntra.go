package myntra

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/scrapers/base"
)

type MyntraScraper struct {
	*base.BaseScraper
}

func NewMyntraScraper(b *base.BaseScraper) *MyntraScraper {
	return &MyntraScraper{BaseScraper: b}
}

func (s *MyntraScraper) CanScrape(url string) bool {
	return strings.Contains(url, "myntra.com")
}

func (s *MyntraScraper) ScrapeProduct(ctx context.Context, url string) (*models.CatalogItem, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return strings.Contains(doc.Text(), "window.__myx") || doc.Find("h1").Length() > 0
	})
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc), nil
}

// pdpData is the part of window.__myx describing the product.
type pdpData struct {
	ID             json.Number     `json:"id"`
	Name           string          `json:"name"`
	MRP            json.Number     `json:"mrp"`
	Price          json.Number     `json:"price"`
	Gender         string          `json:"gender"`
	BaseColour     string          `json:"baseColour"`
	ArticleType    *typedName      `json:"articleType"`
	ProductDetails json.RawMessage `json:"productDetails"`
	Media          struct {
		Albums []struct {
			Images []struct {
				Src string `json:"src"`
			} `json:"images"`
		} `json:"albums"`
	} `json:"media"`
}

type typedName struct {
	TypeName string `json:"typeName"`
}

type detail struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ParseDocument extracts the product from the embedded page state,
// falling back to the rendered markup.
func ParseDocument(doc *goquery.Document) *models.CatalogItem {
	item := &models.CatalogItem{}

	if pd, ok := findPDPData(doc); ok {
		item.ID = pd.ID.String()
		item.ProductDisplayName = pd.Name
		item.Gender = pd.Gender
		item.BaseColour = pd.BaseColour
		if pd.ArticleType != nil {
			item.Style = pd.ArticleType.TypeName
		}
		if price := pd.Price.String(); price != "" {
			item.Price = "Rs. " + price
		} else if mrp := pd.MRP.String(); mrp != "" {
			item.Price = "Rs. " + mrp
		}
		item.Description = productDetails(pd.ProductDetails)

		for _, album := range pd.Media.Albums {
			for _, img := range album.Images {
				if img.Src != "" {
					item.ImagePaths = append(item.ImagePaths, img.Src)
				}
			}
		}
	}

	// Fallback to HTML parsing if the page state is missing
	if item.ProductDisplayName == "" {
		brand := strings.TrimSpace(doc.Find(".pdp-title").Text())
		name := strings.TrimSpace(doc.Find(".pdp-name").Text())
		item.ProductDisplayName = strings.TrimSpace(brand + " " + name)
		item.Price = strings.TrimSpace(doc.Find(".pdp-price").First().Text())
		item.Description = strings.TrimSpace(doc.Find(".pdp-product-description-content").Text())

		doc.Find(".image-grid-image").Each(func(i int, s *goquery.Selection) {
			if src := backgroundURL(s.AttrOr("style", "")); src != "" {
				item.ImagePaths = append(item.ImagePaths, src)
			}
		})
	}

	if item.Gender == "" {
		item.Gender = base.GuessGender(item.ProductDisplayName)
	}
	if item.BaseColour == "" {
		item.BaseColour = base.GuessColour(item.ProductDisplayName)
	}
	if item.ID != "" {
		item.ID = "myntra-" + item.ID
	}
	return item
}

func findPDPData(doc *goquery.Document) (pdpData, bool) {
	const marker = "window.__myx ="

	var state struct {
		PDPData *pdpData `json:"pdpData"`
	}
	found := false
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		start := strings.Index(text, marker)
		if start < 0 {
			return true
		}
		raw := strings.TrimSuffix(strings.TrimSpace(text[start+len(marker):]), ";")
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&state); err == nil && state.PDPData != nil {
			found = true
		}
		return false
	})
	if !found {
		return pdpData{}, false
	}
	return *state.PDPData, true
}

// productDetails is either plain text or a list of titled sections.
func productDetails(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var details []detail
	if err := json.Unmarshal(raw, &details); err != nil {
		return ""
	}
	parts := make([]string, 0, len(details))
	for _, d := range details {
		if d.Description == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(stripTags(d.Description)))
	}
	return strings.Join(parts, " ")
}

func stripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// backgroundURL extracts the url from background-image: url("...")
func backgroundURL(style string) string {
	start := strings.Index(style, "url(")
	if start < 0 {
		return ""
	}
	start += len("url(")
	end := strings.Index(style[start:], ")")
	if end < 0 {
		return ""
	}
	return strings.Trim(style[start:start+end], "\"'")
}
