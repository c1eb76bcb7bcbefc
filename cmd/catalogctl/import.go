package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
	"github.com/raushankrgupta/retailnext/scrapers"
)

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Scrape product pages and print them as catalog items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().Bool("add", false, "add the imported items to the catalog file (embedded when OPENAI_API_KEY is set)")
	importCmd.Flags().Bool("headless", true, "fall back to headless Chrome when a page blocks plain HTTP")
	rootCmd.AddCommand(importCmd)
}

type productImporter interface {
	Import(ctx context.Context, url string) (*models.CatalogItem, error)
}

type textEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := log.Logger.WithContext(context.Background())

	add, _ := cmd.Flags().GetBool("add")
	headless, _ := cmd.Flags().GetBool("headless")

	var cat *catalog.Catalog
	var emb textEmbedder
	if add {
		var err error
		cat, err = catalog.Load(cfg.CatalogFile, cfg.CatalogImageBaseURL)
		if err != nil {
			return err
		}
		if cfg.OpenAIAPIKey != "" {
			emb = llm.NewOpenAIClient(llm.OpenAIOptions{
				APIKey:         cfg.OpenAIAPIKey,
				BaseURL:        cfg.OpenAIBaseURL,
				EmbeddingModel: cfg.EmbeddingModel,
			})
		} else {
			log.Warn().Msg("OPENAI_API_KEY is not set, imported items are added without embeddings")
		}
	}

	failed, err := importProducts(ctx, scrapers.NewRegistry(headless), emb, cat, args, os.Stdout)
	if err != nil {
		return err
	}

	if cat != nil {
		if err := cat.Save(cfg.CatalogFile); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

// importProducts scrapes urls and prints each item to w. When cat is set the
// items are embedded with emb (if any) and upserted into cat.
func importProducts(ctx context.Context, imp productImporter, emb textEmbedder, cat *catalog.Catalog, urls []string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	failed := 0
	var items []models.CatalogItem
	for _, u := range urls {
		item, err := imp.Import(ctx, u)
		if err != nil {
			log.Error().Err(err).Str("url", u).Msg("Failed to import product")
			failed++
			continue
		}
		if err := enc.Encode(item); err != nil {
			return failed, err
		}
		items = append(items, *item)
	}

	if cat == nil || len(items) == 0 {
		return failed, nil
	}

	if emb != nil {
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = catalog.ItemText(item)
		}
		vecs, err := emb.Embed(ctx, texts)
		if err != nil {
			return failed, fmt.Errorf("embed imported products: %w", err)
		}
		if len(vecs) != len(items) {
			return failed, fmt.Errorf("embed imported products: got %d vectors for %d items", len(vecs), len(items))
		}
		for i := range items {
			items[i].Embedding = vecs[i]
		}
	}

	for _, item := range items {
		cat.Upsert(item)
	}
	return failed, nil
}
