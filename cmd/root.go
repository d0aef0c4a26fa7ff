package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"craft-gallery/pkg/config"
	"craft-gallery/pkg/logging"
	"craft-gallery/pkg/services"
)

// Configuration flags
var (
	configFile     string
	manifestSource string
	imageBase      string
	publicDir      string
	portNumber     string
	logLevel       string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craft-gallery",
		Short: "Craft Gallery serves a product gallery driven by an image manifest",
		Long: `Craft Gallery is a command line application that renders a product gallery website
from an images.json manifest mapping categories to image files. The manifest can live
on disk, behind an HTTP URL or in Google Cloud Storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Set the CONFIG_FILE (YAML, overridden by environment variables)")
	rootCmd.PersistentFlags().StringVarP(&manifestSource, "manifest", "m", "", "Set the MANIFEST_SOURCE: file path, http(s) URL or gs://bucket/object")
	rootCmd.PersistentFlags().StringVar(&imageBase, "image-base", "", "Set the IMAGE_BASE path prefix for image files")
	rootCmd.PersistentFlags().StringVar(&publicDir, "public", "", "Set the PUBLIC_DIR served as static files")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set the LOG_LEVEL (debug, info, warn, error)")

	// Add commands to root
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newShowCategoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateManifestCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	setEnv("CONFIG_FILE", configFile)
	setEnv("MANIFEST_SOURCE", manifestSource)
	setEnv("IMAGE_BASE", imageBase)
	setEnv("PUBLIC_DIR", publicDir)
	setEnv("PORT", portNumber)
	setEnv("LOG_LEVEL", logLevel)

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

func setEnv(key, value string) {
	if value != "" {
		os.Setenv(key, value)
	}
}

// setup loads the configuration and builds the logger and service every
// command works with.
func setup() (*config.Config, *services.Service, *zap.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	fetcher, err := services.NewFetcher(cfg.ManifestSource)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, services.NewService(cfg, fetcher, logger), logger, nil
}
