package cmd

import (
	"icon-builder/feature/icons"

	"github.com/spf13/cobra"
)

var bundleOut string

// bundleCmd builds the image service hosting bundle.
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Build the image service bundle (archive with metadata)",
	Long: `Builds a single archive containing every current icon image plus a
metadata document mapping canonical ids to paths, fingerprints, and
categories. This is the artifact the image service consumes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(icons.BundleOutput{Path: bundleOut}, bundleOut)
	},
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "", "Output archive file")
	_ = bundleCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(bundleCmd)
}
