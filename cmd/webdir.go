package cmd

import (
	"icon-builder/feature/icons"

	"github.com/spf13/cobra"
)

var (
	webDirOut      string
	webDirCopy     bool
	webDirHardlink bool
)

// webDirCmd prepares a directory for web hosting.
var webDirCmd = &cobra.Command{
	Use:   "webdir",
	Short: "Prepare a web hosting directory",
	Long: `Materializes the current icon set into a directory tree, one entry per
icon. Entries are symbolic links by default; --hardlink and --copy-files
select hard links or full copies. Entries for removed icons are deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := icons.LinkSymlink
		if webDirHardlink {
			strategy = icons.LinkHard
		}
		if webDirCopy {
			strategy = icons.LinkCopy
		}
		return runBuild(icons.WebDirOutput{Path: webDirOut, Strategy: strategy}, "")
	},
}

func init() {
	webDirCmd.Flags().StringVarP(&webDirOut, "out", "o", "", "Output directory")
	webDirCmd.Flags().BoolVar(&webDirCopy, "copy-files", false, "Copy image files instead of creating symlinks")
	webDirCmd.Flags().BoolVar(&webDirHardlink, "hardlink", false, "Use hard links instead of symlinks")
	_ = webDirCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(webDirCmd)
}
