package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"craft-gallery/pkg/logging"
	"craft-gallery/pkg/models"
	"craft-gallery/pkg/services"
)

// newGenerateManifestCmd creates a new command for building images.json
func newGenerateManifestCmd() *cobra.Command {
	var (
		dir    string
		bucket string
		prefix string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate-manifest",
		Short: "Generate images.json from an image directory or bucket",
		Long: `Generate the images.json manifest by listing <category>/<file> images, either in a
local directory (default: <public>/<image-base>) or in a Cloud Storage bucket.
Files are listed in natural order, so img2.jpg comes before img10.jpg.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			defer logger.Sync()

			if bucket == "" {
				bucket = cfg.BucketName
			}

			var manifest models.Manifest
			if bucket != "" {
				logger.Info("Scanning bucket", zap.String("bucket", bucket), zap.String("prefix", prefix))
				manifest, err = services.ScanBucket(cmd.Context(), nil, bucket, prefix)
			} else {
				if dir == "" {
					dir = filepath.Join(cfg.PublicDir, cfg.ImageBase)
				}
				logger.Info("Scanning directory", zap.String("dir", dir))
				manifest, err = services.ScanDirectory(dir)
			}
			if err != nil {
				return err
			}

			if output == "-" {
				return services.WriteManifest(cmd.OutOrStdout(), manifest)
			}
			if output == "" {
				output = filepath.Join(cfg.PublicDir, "images.json")
			}
			if err := services.WriteManifestFile(output, manifest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d categories to %s\n", len(manifest), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Image directory to scan")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Cloud Storage bucket to scan (overrides BUCKET_NAME)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object prefix inside the bucket")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: <public>/images.json)")
	return cmd
}
