package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/models"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed catalog item texts for the embedding strategy",
	RunE:  runEmbed,
}

func init() {
	embedCmd.Flags().String("in", "", "catalog file to read (default CATALOG_FILE)")
	embedCmd.Flags().String("out", "", "file to write (default: overwrite the input)")
	embedCmd.Flags().Bool("force", false, "re-embed items that already have an embedding")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx := log.Logger.WithContext(context.Background())

	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		in = cfg.CatalogFile
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = in
	}
	force, _ := cmd.Flags().GetBool("force")

	if cfg.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}

	cat, err := catalog.Load(in, cfg.CatalogImageBaseURL)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		return fmt.Errorf("%s: %w", in, catalog.ErrEmptyCatalog)
	}

	var todo []models.CatalogItem
	for _, item := range cat.Items() {
		if force || len(item.Embedding) == 0 {
			todo = append(todo, item)
		}
	}
	if len(todo) == 0 {
		fmt.Println("Every item already has an embedding")
		return nil
	}

	texts := make([]string, len(todo))
	for i, item := range todo {
		texts[i] = catalog.ItemText(item)
	}

	client := llm.NewOpenAIClient(llm.OpenAIOptions{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		EmbeddingModel: cfg.EmbeddingModel,
	})
	log.Info().Int("items", len(todo)).Str("model", cfg.EmbeddingModel).Msg("Embedding catalog")
	vecs, err := client.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed catalog: %w", err)
	}

	for i, item := range todo {
		item.Embedding = vecs[i]
		cat.Upsert(item)
	}
	if err := cat.Save(out); err != nil {
		return err
	}
	fmt.Printf("Embedded %d items into %s\n", len(todo), out)
	return nil
}
