package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/bootstrap"
	"github.com/PathSynch-CEO/careers-page-v2/internal/config"
	"github.com/PathSynch-CEO/careers-page-v2/internal/handlers"
	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize services", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("failed to close connections", zap.Error(err))
		}
	}()

	// Start worker
	c.Worker.Start(ctx)
	log.Info("✅ Worker started successfully",
		zap.Int("concurrency", cfg.Worker.Concurrency),
		zap.Bool("auto_screen", cfg.Worker.AutoScreen),
	)

	h := handlers.Handlers{
		Jobs:         handlers.NewJobHandler(c.Jobs, c.Export, c.Storage, c.JobParser, cfg.Storage.MaxFileSize),
		Applications: handlers.NewApplicationHandler(c.Jobs, c.Apps, c.Storage, cfg.Storage.MaxFileSize, log),
		Screening:    handlers.NewScreeningHandler(c.Apps, c.Screening, c.Worker, c.Summaries, c.Questions),
	}
	if c.Index != nil {
		h.Candidates = handlers.NewCandidateHandler(c.Index)
	}
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Careers Portal API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		// Leave room for the other multipart fields next to the resume.
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, h)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Careers Portal API",
			"version": "2.0.0",
			"endpoints": []string{
				"GET /api/v1/jobs",
				"POST /api/v1/jobs/:id/applications",
				"POST /api/v1/admin/jobs/from-document",
				"POST /api/v1/admin/applications/:id/screen",
				"POST /api/v1/admin/applications/:id/screen/async",
				"POST /api/v1/admin/applications/:id/interview-questions",
				"GET /api/v1/admin/jobs/:id/applications/export",
			},
		})
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info("🛑 Shutting down server...")
		c.Worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Error("❌ Failed to start server", zap.Error(err))
	}
}
