package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"school-gallery/pkg/services"
)

var exportDir string

// newExportCmd creates a new command for exporting a subcategory as a ZIP archive
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [category] [subcategory]",
		Short: "Export all photos of a subcategory as a ZIP archive",
		Long: `Fetch every photo of a subcategory and write {subcategory}_photos.zip to the
output directory. Photos that cannot be fetched are reported and left out.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			initService()
			defer services.Shutdown()
			exportPhotos(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&exportDir, "output-dir", "o", ".", "Directory to write the archive to")

	return cmd
}

// exportPhotos runs the bulk exporter for one subcategory
func exportPhotos(ctx context.Context, category, subcategory string) {
	if ctx == nil {
		ctx = context.Background()
	}

	svc := services.Default()
	ctrl := svc.NewController()
	if err := ctrl.EnterSubcategories(category); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := ctrl.EnterPhotos(category, subcategory); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(services.MsgDownloading)
	result, err := svc.NewExporter().ExportAll(ctx, ctrl.Selection(), services.DirSink{Dir: exportDir})
	if err != nil {
		fmt.Println(services.UserMessage(err))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(services.MsgExportDone)
	fmt.Printf("Archive: %s (%d bytes)\n", result.Filename, result.Size)
	fmt.Printf("Photos: %d\n", len(result.Entries))
	if len(result.Failed) > 0 {
		fmt.Printf("Skipped (could not be fetched): %v\n", result.Failed)
	}
}
