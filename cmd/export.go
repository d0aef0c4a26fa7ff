package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"craft-gallery/pkg/services"
)

// newExportCmd creates a new command for exporting gallery data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export gallery data",
		Long:  `Export all categories and their images in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, err := setup()
			if err != nil {
				return err
			}

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			return exportData(cmd.Context(), cmd.OutOrStdout(), svc, format)
		},
	}
}

// exportData exports gallery data in the specified format
func exportData(ctx context.Context, w io.Writer, svc *services.Service, format string) error {
	if format != "json" {
		return fmt.Errorf("unsupported export format: %s (supported formats: json)", format)
	}

	// Categories come back sorted by name
	categories, err := svc.GetCategories(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
