package myntra

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseDocumentPageState(t *testing.T) {
	doc := parse(t, `<html><body><h1>H&M</h1><script>window.__myx = {"pdpData":{
		"id": 11468714,
		"name": "H&M Men White Pure Cotton T-shirt",
		"mrp": 799, "price": 599,
		"gender": "Men", "baseColour": "White",
		"articleType": {"typeName": "Tshirts"},
		"productDetails": [{"title": "Product Details", "description": "<p>White solid T-shirt</p>"}],
		"media": {"albums": [{"images": [{"src": "https://assets.myntra.com/1.jpg"}, {"src": ""}, {"src": "https://assets.myntra.com/2.jpg"}]}]}
	}};</script></body></html>`)

	item := ParseDocument(doc)
	require.Equal(t, "myntra-11468714", item.ID)
	require.Equal(t, "H&M Men White Pure Cotton T-shirt", item.ProductDisplayName)
	require.Equal(t, "Men", item.Gender)
	require.Equal(t, "White", item.BaseColour)
	require.Equal(t, "Tshirts", item.Style)
	require.Equal(t, "Rs. 599", item.Price)
	require.Equal(t, "White solid T-shirt", item.Description)
	require.Equal(t, []string{"https://assets.myntra.com/1.jpg", "https://assets.myntra.com/2.jpg"}, item.ImagePaths)
}

func TestParseDocumentMarkupFallback(t *testing.T) {
	doc := parse(t, `<html><body>
		<h1 class="pdp-title">Roadster</h1>
		<h1 class="pdp-name">Women Navy Blue Denim Jacket</h1>
		<span class="pdp-price"><strong>Rs. 1499</strong></span>
		<div class="pdp-product-description-content">Button closure</div>
		<div class="image-grid-image" style="background-image: url(&quot;https://assets.myntra.com/a.jpg&quot;);"></div>
	</body></html>`)

	item := ParseDocument(doc)
	require.Empty(t, item.ID)
	require.Equal(t, "Roadster Women Navy Blue Denim Jacket", item.ProductDisplayName)
	require.Equal(t, "Women", item.Gender)
	require.Equal(t, "Navy Blue", item.BaseColour)
	require.Equal(t, "Rs. 1499", item.Price)
	require.Equal(t, "Button closure", item.Description)
	require.Equal(t, []string{"https://assets.myntra.com/a.jpg"}, item.ImagePaths)
}

func TestCanScrape(t *testing.T) {
	s := &MyntraScraper{}
	require.True(t, s.CanScrape("https://www.myntra.com/tshirts/hm/11468714/buy"))
	require.False(t, s.CanScrape("https://www.flipkart.com/p/itm1"))
}
