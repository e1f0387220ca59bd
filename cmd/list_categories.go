package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"school-gallery/pkg/services"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all photo categories",
		Long:  `List all photo categories with their subcategories and photo counts.`,
		Run: func(cmd *cobra.Command, args []string) {
			initService()
			defer services.Shutdown()
			listCategories()
		},
	}
}

// listCategories displays all categories and their subcategories
func listCategories() {
	catalog := services.GetCatalog()
	totalPhotos := 0

	fmt.Println("Photo Categories:")
	fmt.Println("================")

	for _, category := range catalog.Categories {
		fmt.Printf("%s (%s)\n", category.Name, category.ID)
		for _, sub := range category.Subcategories {
			fmt.Printf("  - %s (%s): %s\n", sub.Name, sub.ID, services.PhotoCount(sub.Count))
			totalPhotos += sub.Count
		}
		fmt.Println()
	}

	fmt.Printf("Total: %d photos across %d categories\n", totalPhotos, len(catalog.Categories))
}
