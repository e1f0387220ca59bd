package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"school-gallery/pkg/browser"
	"school-gallery/pkg/services"
)

var browseOutputDir string

// newBrowseCmd creates a new command for browsing the gallery in the terminal
func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the gallery in the terminal",
		Long: `Open an interactive terminal view of the gallery. Archives created with the
download key are written to the output directory.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := initService()
			defer services.Shutdown()

			sink := services.DirSink{Dir: browseOutputDir}
			if err := browser.Run(services.Default(), sink, cfg.LogFile); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&browseOutputDir, "output-dir", "o", ".", "Directory to write downloaded archives to")

	return cmd
}
