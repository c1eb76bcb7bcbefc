package generic

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentOpenGraph(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head>
		<title>Shop</title>
		<meta property="og:title" content="Linen Blend Shirt for Women">
		<meta property="og:description" content="A relaxed beige shirt for summer.">
		<meta property="og:image" content="https://shop.example/1.jpg">
		<meta property="og:image" content="https://shop.example/2.jpg">
		<meta property="product:price:amount" content="3990">
		<meta property="product:price:currency" content="JPY">
	</head><body></body></html>`))
	require.NoError(t, err)

	item := ParseDocument(doc)
	require.Equal(t, "Linen Blend Shirt for Women", item.ProductDisplayName)
	require.Equal(t, "A relaxed beige shirt for summer.", item.Description)
	require.Equal(t, "JPY 3990", item.Price)
	require.Equal(t, "Women", item.Gender)
	require.Equal(t, "Beige", item.BaseColour)
	require.Equal(t, []string{"https://shop.example/1.jpg", "https://shop.example/2.jpg"}, item.ImagePaths)
}

func TestParseDocumentFallsBackToHeading(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head>
		<meta name="description" content="Everyday chinos">
	</head><body><h1> Slim Chinos </h1></body></html>`))
	require.NoError(t, err)

	item := ParseDocument(doc)
	require.Equal(t, "Slim Chinos", item.ProductDisplayName)
	require.Equal(t, "Everyday chinos", item.Description)
	require.Empty(t, item.Price)
	require.Empty(t, item.Gender)
}
