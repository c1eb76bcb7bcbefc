package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/raushankrgupta/retailnext/catalog"
)

var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Generate dummy names, prices and stock for catalog images",
	RunE:  runDummy,
}

func init() {
	dummyCmd.Flags().String("out", "data/dummy_products.csv", "CSV file to write")
	dummyCmd.Flags().Int64("seed", 0, "random seed (default: current time)")
	dummyCmd.Flags().Bool("apply", false, "also fill missing price and stock in the catalog file")
	rootCmd.AddCommand(dummyCmd)
}

func runDummy(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	seed, _ := cmd.Flags().GetInt64("seed")
	apply, _ := cmd.Flags().GetBool("apply")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	filenames := catalog.SampleFilenames()
	if features, err := catalog.LoadColorFeatures(cfg.ColorFeaturesFile); err == nil && len(features) > 0 {
		filenames = filenames[:0]
		for name := range features {
			filenames = append(filenames, name)
		}
		sort.Strings(filenames)
	}

	products, err := catalog.GenerateDummyProducts(filenames, rand.New(rand.NewPCG(uint64(seed), uint64(seed))))
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := catalog.WriteDummyCSV(f, products); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Wrote %d dummy products to %s\n", len(products), out)

	if !apply {
		return nil
	}
	cat, err := catalog.Load(cfg.CatalogFile, cfg.CatalogImageBaseURL)
	if err != nil {
		return err
	}
	cat.ApplyDummyProducts(products)
	return cat.Save(cfg.CatalogFile)
}
