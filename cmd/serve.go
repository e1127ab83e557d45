package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"icon-builder/core/config"
	"icon-builder/core/logger"
	"icon-builder/feature/icons"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveDir  string
	servePort string
)

// serveCmd serves a built web directory over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a built web directory over HTTP",
	Long: `Serves the icon files of a previously built web directory, plus a
/status endpoint reporting the manifest's icon count and checksum.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cfg)

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		if info, err := os.Stat(serveDir); err != nil || !info.IsDir() {
			return fmt.Errorf("%q is not a servable directory", serveDir)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		app.Get("/status", func(c *fiber.Ctx) error {
			manifest, err := icons.LoadManifest(iconFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "manifest unavailable")
			}
			return c.JSON(fiber.Map{
				"icon_count": len(manifest),
				"checksum":   manifest.Checksum(),
			})
		})

		app.Static("/", serveDir, fiber.Static{
			MaxAge: 3600,
		})

		// Graceful shutdown on SIGINT/SIGTERM
		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-done
			l.Info("shutting down")
			_ = app.Shutdown()
		}()

		l.Info("serving icons", zap.String("dir", serveDir), zap.String("port", servePort))
		return app.Listen(":" + servePort)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveDir, "dir", "d", "", "Web directory to serve")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to listen on")
	_ = serveCmd.MarkFlagRequired("dir")
	RootCmd.AddCommand(serveCmd)
}
