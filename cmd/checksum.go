package cmd

import (
	"icon-builder/feature/icons"

	"github.com/spf13/cobra"
)

var checksumOut string

// checksumCmd prints or writes the current icon set's checksum.
var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "Print (or write) the checksum of the current icon set",
	Long: `Computes a single digest over the current icon set. With --out the
digest is written to a file; without it the digest is printed to stdout and
all other logging is reduced to errors so the output stays parseable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(icons.ChecksumOutput{Path: checksumOut}, "")
	},
}

func init() {
	checksumCmd.Flags().StringVarP(&checksumOut, "out", "o", "", "Output file (omit to print to stdout)")
	RootCmd.AddCommand(checksumCmd)
}
