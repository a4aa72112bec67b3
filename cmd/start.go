package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"field-comparator/core/loader"
	"field-comparator/core/logger"
	"field-comparator/core/middleware/auth"
	"field-comparator/core/middleware/rayid"

	"field-comparator/feature/comparison"
	"field-comparator/feature/connections"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "field-comparator/docs/swagger"
)

// @title Field Comparator API
// @version 1.0
// @description Compares a field between source and target tables across databases.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the comparator HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load configuration, logger, connections and runner
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()
		logg := app.logger
		zap.ReplaceGlobals(logg)

		// 2. Report export (optional)
		var exporter comparison.Exporter
		if exp, err := app.exporter(); err != nil {
			logg.Warn("Report export disabled", zap.Error(err))
		} else if exp != nil {
			exporter = exp
		}

		// 3. Initialize Fiber App
		server := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		conns := connections.NewFeature(app.provider, logg)
		mgr.Register(comparison.NewFeature(app.runner, exporter, logg))
		mgr.Register(conns)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		server.Use(rayid.New())

		// 2. Request logging with the ray id
		server.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public routes
		server.Get("/swagger/*", swagger.HandlerDefault)
		conns.LoadPublic(server)

		// 4. Auth (Protect API)
		server.Use(auth.New(auth.Config{ApiKey: app.cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(server); err != nil {
			return err
		}

		// 6. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server",
				zap.String("port", app.cfg.Server.Port),
				zap.Int("rules", len(app.cfg.Comparison.Rules)),
				zap.Strings("connections", app.provider.Names()))
			errCh <- server.Listen(app.cfg.Server.Address())
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case <-c:
		case err := <-errCh:
			return err
		}
		logg.Info("Shutting down server...")
		return server.ShutdownWithTimeout(app.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
