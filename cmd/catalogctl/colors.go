package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raushankrgupta/retailnext/catalog"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Compute mean color features of the sample catalog images",
	Long: `Lists the sample images through the GitHub contents API, downloads each one,
averages its color over a 32x32 thumbnail and writes the vectors with an
odd/even gender assignment to the color features file.`,
	RunE: runColors,
}

func init() {
	colorsCmd.Flags().String("out", "", "output file (default COLOR_FEATURES_FILE)")
	colorsCmd.Flags().Bool("sample", false, "use the fixed 10020-10039 sample names instead of listing the repository")
	rootCmd.AddCommand(colorsCmd)
}

func runColors(cmd *cobra.Command, args []string) error {
	ctx := log.Logger.WithContext(context.Background())

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.ColorFeaturesFile
	}
	useSample, _ := cmd.Flags().GetBool("sample")

	filenames := catalog.SampleFilenames()
	if !useSample {
		listed, err := catalog.ListSampleImages(ctx, cfg.SampleImagesAPIURL)
		if err != nil {
			log.Warn().Err(err).Msg("Listing failed, using the fixed sample names")
		} else {
			filenames = listed
		}
	}

	log.Info().Int("images", len(filenames)).Msg("Extracting color features")
	features := catalog.ExtractColorFeatures(ctx, cfg.CatalogImageBaseURL, filenames)

	if err := catalog.SaveColorFeatures(out, features); err != nil {
		return fmt.Errorf("save color features: %w", err)
	}
	fmt.Printf("Wrote %d color features to %s\n", len(features), out)
	return nil
}
