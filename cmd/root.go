package cmd

import (
	"fmt"
	"os"

	"icon-builder/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags shared by every build mode.
	userAgent    string
	cacheFolder  string
	iconFolder   string
	logFile      string
	appendLog    bool
	forceRebuild bool
	skipIfFresh  bool
	noProgress   bool
	skipSkins    bool
	testTypeID   int
	publish      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "icon-builder",
	Short: "Multi-purpose item icon export tool",
	Long: `Icon Builder turns the published game data snapshot into packaged icon
exports: service bundles, plain archives, web directories, checksums, and
auxiliary image dumps. Unchanged icons are detected through a persisted
manifest so repeated runs only pay for what actually changed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches user expectations for a CLI tool.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&userAgent, "user-agent", "u", "", "User agent for CDN requests (required by the CDN usage policy)")
	flags.StringVarP(&cacheFolder, "cache-folder", "c", "./cache", "Game data cache folder")
	flags.StringVarP(&iconFolder, "icon-folder", "i", "./icons", "Icon work folder holding the build manifest")
	flags.StringVarP(&logFile, "log-file", "l", "", "Duplicate log output into this file")
	flags.BoolVar(&appendLog, "append-log", false, "Append to the log file instead of overwriting")
	flags.BoolVarP(&forceRebuild, "force-rebuild", "f", false, "Treat every icon as changed regardless of the manifest")
	flags.BoolVarP(&skipIfFresh, "skip-if-fresh", "s", false, "Skip output generation when no icons changed")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable progress reporting")
	flags.BoolVar(&skipSkins, "skip-skins", false, "Skip construction of skin icons")
	flags.IntVar(&testTypeID, "test-type-id", 0, "Restrict the build to a single type id (debugging)")
	flags.BoolVar(&publish, "publish", false, "Upload the produced artifact to object storage")
}
