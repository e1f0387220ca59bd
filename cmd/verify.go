package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"school-gallery/pkg/services"
)

// newVerifyCmd creates a new command for checking the catalog against the image source
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check catalog photo counts against the image source",
		Long: `List every subcategory folder in the image source and report folders whose
images do not match the catalog count (missing or extra image (n).jpg files).`,
		Run: func(cmd *cobra.Command, args []string) {
			initService()
			defer services.Shutdown()
			if !verifyCatalog(cmd.Context()) {
				os.Exit(1)
			}
		},
	}
}

// verifyCatalog prints a report and returns whether every folder matched
func verifyCatalog(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	lister, ok := services.Default().Source().(services.Lister)
	if !ok {
		log.Fatalf("Image source cannot list folders; use dir: or gs:// to verify")
	}

	reports, err := services.VerifyCatalog(ctx, services.GetCatalog(), lister)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	fmt.Println("Catalog Verification:")
	fmt.Println("=====================")

	allOK := true
	for _, r := range reports {
		status := "OK"
		if !r.OK() {
			status = "MISMATCH"
			allOK = false
		}
		fmt.Printf("%-8s %s/%s: declared %d, found %d\n", status, r.Category, r.Subcategory, r.Declared, r.Found)
		if len(r.Missing) > 0 {
			fmt.Printf("         missing: %v\n", r.Missing)
		}
		if len(r.Extra) > 0 {
			fmt.Printf("         beyond count: %v\n", r.Extra)
		}
	}

	return allOK
}
