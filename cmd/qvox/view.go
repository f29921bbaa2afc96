package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkaneko/qvox/internal/app"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a volume in the interactive 3D viewer",
	Long: `Open a MetaImage volume in an interactive viewer with region clipping.

Draw a polygon over the rendering (S, then click points, Enter to close)
to hide the voxels inside or outside it. Regions accumulate; Ctrl+Z and
Ctrl+Shift+Z step through the clipping history. The file is watched and
reloaded automatically when it changes on disk.`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	if err := app.Run(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
