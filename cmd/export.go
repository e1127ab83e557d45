package cmd

import (
	"icon-builder/feature/icons"

	"github.com/spf13/cobra"
)

var exportOut string

// exportCmd builds the plain image export collection.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build the plain image export collection (archive)",
	Long: `Builds a single flat archive of every current icon image, without a
metadata document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(icons.ExportOutput{Path: exportOut}, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output archive file")
	_ = exportCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(exportCmd)
}
