package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/httpx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/metricsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/ratelimit"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidateapi"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position/positionapi"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Configuration and logger
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logx.Sync()
	logx.Info("Starting applicant tracking API...")

	// 2. Initialize Dependency Container
	container, err := NewContainer(contextOrBackground(cmd), cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	app := newApp(container)

	// 3. Start Server with Graceful Shutdown
	errCh := make(chan error, 1)
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case <-sig:
	}

	logx.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("Server exited")
	return nil
}

// newApp builds the fiber application with middleware and routes.
func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               "Applicant Tracking API",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler:          httpx.ErrorHandler,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metricsx.Middleware())

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok"}
		for name, up := range container.Ready(c.UserContext()) {
			body[name] = up
		}
		return c.JSON(body)
	})
	app.Get("/metrics", metricsx.Handler())

	// Routes
	api := app.Group("/", ratelimit.Middleware(container.RateLimiter))
	candidateapi.RegisterRoutes(api, container.CandidateHandlers, container.AuthMiddleware)
	positionapi.RegisterRoutes(api, container.PositionHandlers, container.AuthMiddleware)
	container.ResumeHandlers.RegisterRoutes(api, container.AuthMiddleware)

	return app
}

// contextOrBackground returns cmd's context, which is nil when a command
// runs outside Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
