package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"school-gallery/pkg/config"
	"school-gallery/pkg/services"
)

// Configuration flags
var (
	portNumber  string
	catalogPath string
	imageSource string
	viewsDir    string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "school-gallery",
		Short: "School Gallery serves and exports the school photo gallery",
		Long: `School Gallery is a command line application for the bilingual photo gallery
of a government primary school. It serves the gallery over HTTP, browses it in
the terminal, and exports whole photo folders as ZIP archives.`,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Set the CATALOG_PATH (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&imageSource, "images", "i", "", "Set the IMAGE_SOURCE, e.g. dir:./public or gs://bucket (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&viewsDir, "views", "", "Set the VIEWS_DIR (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	if catalogPath != "" {
		os.Setenv("CATALOG_PATH", catalogPath)
	}

	if imageSource != "" {
		os.Setenv("IMAGE_SOURCE", imageSource)
	}

	if viewsDir != "" {
		os.Setenv("VIEWS_DIR", viewsDir)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// initService loads configuration and the shared gallery service or exits
func initService() *config.Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := services.InitService(cfg); err != nil {
		log.Fatalf("Failed to initialize gallery: %v", err)
	}
	return cfg
}
