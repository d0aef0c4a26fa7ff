package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"craft-gallery/pkg/services"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all product categories",
		Long:  `List all product categories in the manifest with the number of images in each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, err := setup()
			if err != nil {
				return err
			}
			return listCategories(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

// listCategories displays all categories and their image counts
func listCategories(ctx context.Context, w io.Writer, svc *services.Service) error {
	categories, err := svc.GetCategories(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Product Categories:")
	fmt.Fprintln(w, "===================")

	for _, category := range categories {
		fmt.Fprintf(w, "%s (%s)\n", category.Title, category.Name)
		fmt.Fprintf(w, "  Images: %d\n", len(category.Images))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d categories\n", len(categories))
	return nil
}
