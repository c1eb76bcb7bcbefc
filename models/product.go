package models

// CatalogItem represents a product of the precomputed catalog
type CatalogItem struct {
	ID                 string    `json:"id"`
	ProductDisplayName string    `json:"productDisplayName"`
	Gender             string    `json:"gender"`
	BaseColour         string    `json:"baseColour"`
	Season             string    `json:"season,omitempty"`
	Usage              string    `json:"usage,omitempty"`
	Description        string    `json:"description,omitempty"`
	Style              string    `json:"style,omitempty"`
	Price              string    `json:"price,omitempty"`
	Stock              string    `json:"stock,omitempty"`
	Filename           string    `json:"filename,omitempty"`   // Image file under the catalog image base URL
	SourceURL          string    `json:"source_url,omitempty"` // Product page the item was imported from
	ImagePaths         []string  `json:"image_paths,omitempty"`
	Embedding          []float32 `json:"embedding,omitempty"`
	Color              []float64 `json:"color,omitempty"` // Mean RGB of the product image
}

// ScoredItem is a catalog item ranked against a query
type ScoredItem struct {
	CatalogItem
	ImageURL string  `json:"image_url"`
	Score    float64 `json:"score"`
}
