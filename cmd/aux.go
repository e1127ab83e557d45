package cmd

import (
	"icon-builder/feature/icons"

	"github.com/spf13/cobra"
)

var (
	auxIconsOut string
	auxAllOut   string
)

// auxIconsCmd dumps the curated auxiliary icon assets.
var auxIconsCmd = &cobra.Command{
	Use:   "aux-icons",
	Short: "Dump auxiliary icon assets (archive)",
	Long: `Archives every asset in the icon file table regardless of type linkage:
UI and overlay art not reachable through type resolution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(icons.AuxIconsOutput{Path: auxIconsOut}, auxIconsOut)
	},
}

// auxAllCmd dumps every discoverable image asset.
var auxAllCmd = &cobra.Command{
	Use:   "aux-all",
	Short: "Dump all discoverable image assets (archive)",
	Long:  `Archives every image asset present in the resource indices.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(icons.AuxAllOutput{Path: auxAllOut}, auxAllOut)
	},
}

func init() {
	auxIconsCmd.Flags().StringVarP(&auxIconsOut, "out", "o", "", "Output archive file")
	_ = auxIconsCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(auxIconsCmd)

	auxAllCmd.Flags().StringVarP(&auxAllOut, "out", "o", "", "Output archive file")
	_ = auxAllCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(auxAllCmd)
}
