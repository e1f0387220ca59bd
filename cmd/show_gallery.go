package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"school-gallery/pkg/services"
)

// newShowGalleryCmd creates a new command for showing the photos of a subcategory
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [category] [subcategory]",
		Short: "Show photos in a specific subcategory",
		Long:  `Show the image paths of every photo in a subcategory, in display order.`,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			initService()
			defer services.Shutdown()
			showGallery(args[0], args[1])
		},
	}
}

// showGallery displays the photos of one subcategory
func showGallery(category, subcategory string) {
	ctrl := services.Default().NewController()
	if err := ctrl.EnterSubcategories(category); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := ctrl.EnterPhotos(category, subcategory); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	page := services.Render(ctrl, services.ExportStatus{Label: services.MsgDownloadAll})
	fmt.Printf("Gallery: %s\n", page.Title)
	fmt.Printf("Category: %s\n", category)
	fmt.Printf("Photos: %d\n", len(page.Photos))
	fmt.Println("================")

	if page.Empty {
		fmt.Println(page.EmptyMessage)
		return
	}

	for i, path := range ctrl.Selection().Images {
		fmt.Printf("%d. %s\n", i+1, path)
		fmt.Printf("   Download as: %s\n", services.DownloadName(i))
	}
}
