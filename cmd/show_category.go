package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"craft-gallery/pkg/models"
	"craft-gallery/pkg/services"
)

// newShowCategoryCmd creates a new command for showing category details
func newShowCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-category [name]",
		Short: "Show images in a specific category",
		Long:  `Show the gallery tiles of a category in manifest order, with their resolved image paths.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, err := setup()
			if err != nil {
				return err
			}
			return showCategory(cmd.Context(), cmd.OutOrStdout(), svc, args[0])
		},
	}
}

// showCategory builds the gallery of a category and prints its tiles
func showCategory(ctx context.Context, w io.Writer, svc *services.Service, name string) error {
	container := models.NewContainer()
	if err := svc.BuildGallery(ctx, container, name); err != nil {
		return err
	}
	tiles := container.Tiles()

	fmt.Fprintf(w, "Category: %s\n", services.FormatCategoryName(name))
	fmt.Fprintf(w, "Images: %d\n", len(tiles))
	fmt.Fprintln(w, "================")

	for i, tile := range tiles {
		fmt.Fprintf(w, "%d. %s\n", i+1, tile.ID)
		fmt.Fprintf(w, "   Path: %s\n", tile.Src)
	}
	return nil
}
