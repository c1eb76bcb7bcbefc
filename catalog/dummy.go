package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

var errNoFilenames = errors.New("no filenames given")

var stockStates = []string{"In stock", "Low stock", "Sold out"}

// SampleFilenames returns the sample image names 10020.jpg through 10039.jpg.
func SampleFilenames() []string {
	names := make([]string, 0, 20)
	for n := 20; n < 40; n++ {
		names = append(names, fmt.Sprintf("100%02d.jpg", n))
	}
	return names
}

// DummyProduct is placeholder commercial information for a catalog image.
type DummyProduct struct {
	Filename string
	Name     string
	Price    string
	Stock    string
}

// GenerateDummyProducts assigns a name, a ¥3000-8000 price and a stock state to every filename.
func GenerateDummyProducts(filenames []string, rng *rand.Rand) ([]DummyProduct, error) {
	if len(filenames) == 0 {
		return nil, errNoFilenames
	}

	products := make([]DummyProduct, 0, len(filenames))
	for _, fname := range filenames {
		id := strings.SplitN(fname, ".", 2)[0]
		products = append(products, DummyProduct{
			Filename: fname,
			Name:     "Fashion item " + id,
			Price:    fmt.Sprintf("¥%d", 3000+rng.IntN(5001)),
			Stock:    stockStates[rng.IntN(len(stockStates))],
		})
	}
	return products, nil
}

// WriteDummyCSV writes products with a filename,name,price,stock header.
func WriteDummyCSV(w io.Writer, products []DummyProduct) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filename", "name", "price", "stock"}); err != nil {
		return err
	}
	for _, p := range products {
		if err := cw.Write([]string{p.Filename, p.Name, p.Price, p.Stock}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ApplyDummyProducts fills in missing price and stock on catalog items with matching image files.
func (c *Catalog) ApplyDummyProducts(products []DummyProduct) {
	byFile := make(map[string]DummyProduct, len(products))
	for _, p := range products {
		byFile[p.Filename] = p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		p, ok := byFile[imageFilename(c.items[i])]
		if !ok {
			continue
		}
		if c.items[i].Price == "" {
			c.items[i].Price = p.Price
		}
		if c.items[i].Stock == "" {
			c.items[i].Stock = p.Stock
		}
	}
}
