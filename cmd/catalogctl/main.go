// Command catalogctl prepares the recommendation catalog: color features,
// text embeddings, dummy product info and imported product pages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raushankrgupta/retailnext/config"
	"github.com/raushankrgupta/retailnext/utils"
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Build and maintain the RetailNext coordinator catalog",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		utils.SetupLogger(level, cfg.LogJSON)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
