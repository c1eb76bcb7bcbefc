package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client *http.Client
	// Headless enables the chromedp fallback when plain HTTP is blocked.
	Headless bool
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper(headless bool) *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		Headless: headless,
	}
}

// FetchDocument fetches the URL over HTTP and falls back to headless Chrome
// when the response fails validation.
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator func(*goquery.Document) bool) (*goquery.Document, error) {
	logger := zerolog.Ctx(ctx).With().Str("url", url).Logger()

	// Strategy 1: HTTP Client (Fastest)
	doc, err := b.FetchDocumentHTTP(ctx, url)
	if err == nil {
		if validator(doc) && IsValidDocument(doc) {
			logger.Debug().Msg("HTTP fetch succeeded")
			return doc, nil
		}
		logger.Debug().Msg("HTTP yielded invalid content, trying fallbacks")
	} else {
		logger.Debug().Err(err).Msg("HTTP fetch failed")
	}

	if !b.Headless {
		return nil, fmt.Errorf("all strategies failed for %s", url)
	}

	// Strategy 2: ChromeDP (Headless)
	doc, err = b.FetchDocumentChromeDP(ctx, url)
	if err == nil && validator(doc) {
		logger.Debug().Msg("ChromeDP fetch succeeded")
		return doc, nil
	}
	if err != nil {
		logger.Debug().Err(err).Msg("ChromeDP fetch failed")
	}

	return nil, fmt.Errorf("all strategies failed for %s", url)
}

// IsValidDocument rejects bot walls and near-empty pages.
func IsValidDocument(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	if strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied") {
		return false
	}

	body := strings.TrimSpace(doc.Find("body").Text())
	meta := doc.Find(`meta[property="og:title"]`).Length()
	return len(body) > 200 || meta > 0
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Common headers to mimic a real browser
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}

// MetaContent returns the content of the first meta tag with the given property or name.
func MetaContent(doc *goquery.Document, key string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

var colourWords = []string{
	"navy blue", "off white", "black", "white", "red", "blue", "green", "yellow", "pink",
	"purple", "grey", "gray", "orange", "brown", "beige", "maroon", "olive", "cream",
}

// GuessGender reads a catalog gender from free text such as a product title.
func GuessGender(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	gender := ""
	for _, w := range words {
		switch w {
		case "women", "woman", "womens", "ladies", "girls", "girl":
			return "Women"
		case "men", "man", "mens", "boys", "boy":
			gender = "Men"
		case "unisex":
			if gender == "" {
				gender = "Unisex"
			}
		}
	}
	return gender
}

// GuessColour returns the first known colour named in text, title-cased.
func GuessColour(text string) string {
	lower := strings.ToLower(text)
	for _, c := range colourWords {
		if strings.Contains(lower, c) {
			words := strings.Fields(c)
			for i, w := range words {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
			return strings.Join(words, " ")
		}
	}
	return ""
}
