package base

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGuessGender(t *testing.T) {
	cases := map[string]string{
		"Roadster Women Navy Jacket":   "Women",
		"Men Round Neck T-Shirt":       "Men",
		"Boys Printed Hoodie":          "Men",
		"Unisex Sneakers":              "Unisex",
		"Cotton Tote Bag":              "",
		"WOMEN'S kurta":                "Women",
		"Menthol scented candle label": "",
	}
	for text, want := range cases {
		require.Equal(t, want, GuessGender(text), text)
	}
}

func TestGuessColour(t *testing.T) {
	require.Equal(t, "Navy Blue", GuessColour("Women Navy Blue Denim Jacket"))
	require.Equal(t, "Black", GuessColour("BLACK slim jeans"))
	require.Equal(t, "Off White", GuessColour("off white kurta"))
	require.Empty(t, GuessColour("printed shirt"))
}

func TestFetchDocumentHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		_, _ = w.Write([]byte(`<html><head><meta property="og:title" content="Shirt"></head><body></body></html>`))
	}))
	defer srv.Close()

	b := NewBaseScraper(false)
	doc, err := b.FetchDocument(context.Background(), srv.URL, func(*goquery.Document) bool { return true })
	require.NoError(t, err)
	require.Equal(t, "Shirt", MetaContent(doc, "og:title"))
}

func TestFetchDocumentRejectsBotWall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Robot Check</title></head><body>` + strings.Repeat("x", 300) + `</body></html>`))
	}))
	defer srv.Close()

	b := NewBaseScraper(false)
	_, err := b.FetchDocument(context.Background(), srv.URL, func(*goquery.Document) bool { return true })
	require.ErrorContains(t, err, "all strategies failed")
}

func TestFetchDocumentHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewBaseScraper(false).FetchDocumentHTTP(context.Background(), srv.URL)
	require.ErrorContains(t, err, "404")
}
