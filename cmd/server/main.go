package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/journeycircle/api/internal/auth"
	"github.com/journeycircle/api/internal/client"
	"github.com/journeycircle/api/internal/config"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/handler"
	"github.com/journeycircle/api/internal/middleware"
	"github.com/journeycircle/api/internal/service"
	"github.com/journeycircle/api/internal/store"
	"github.com/journeycircle/api/internal/worker"
	"github.com/journeycircle/api/internal/workflow"
	ws "github.com/journeycircle/api/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Relational store: Postgres when configured, in-memory otherwise
	var db *store.Store
	if cfg.Database.URL != "" {
		db, err = store.NewPostgresStore(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, using in-memory store")
		db = store.NewMemoryStore()
	}

	// AI provider client
	aiClient := client.NewAIClient(&cfg.AI)
	if !aiClient.IsConfigured() {
		log.Println("Warning: AI provider not configured, using mock generation")
	}

	// Object storage (optional)
	var storage client.StorageClient
	if r2, err := client.NewR2Client(&cfg.Storage); err == nil {
		storage = r2
	} else {
		log.Printf("Warning: object storage not configured: %v", err)
	}

	// Session store and services
	sessions := workflow.NewStore(redisClient, hub)
	controller := generation.NewController(sessions, db, aiClient, aiClient, hub)
	journeyService := service.NewJourneyService(db, sessions)
	slideService := service.NewSlideService(redisClient, asynqClient)
	uploadService := service.NewUploadService(storage)

	// Initialize handlers
	aiHandler := handler.NewAIHandler(controller, validate)
	workflowHandler := handler.NewWorkflowHandler(sessions, journeyService, uploadService, validate)
	journeyHandler := handler.NewJourneyHandler(journeyService, controller, validate)
	slidesHandler := handler.NewSlidesHandler(slideService, validate)
	authHandler := handler.NewAuthHandler()

	// Initialize middleware
	authenticate := buildAuthMiddleware(cfg)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    50 * 1024 * 1024, // 50MB
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Session-ID",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "journeycircle-api", "time": time.Now().UTC()})
	})

	app.Get("/auth/verify", authenticate, authHandler.Verify)

	// API routes
	api := app.Group("/api", authenticate)

	// AI generation routes
	ai := api.Group("/ai")
	ai.Get("/check-status", aiHandler.CheckStatus)
	ai.Post("/generate-problem-titles", rateLimiter.TitlesLimit(cfg.RateLimit.TitlesPerMin), aiHandler.GenerateProblemTitles)
	ai.Post("/generate-solution-titles", rateLimiter.TitlesLimit(cfg.RateLimit.TitlesPerMin), aiHandler.GenerateSolutionTitles)
	ai.Post("/generate-all-solutions", rateLimiter.TitlesLimit(cfg.RateLimit.TitlesPerMin), aiHandler.GenerateAllSolutions)
	ai.Post("/generate-outline", rateLimiter.ContentLimit(cfg.RateLimit.ContentPerHour), aiHandler.GenerateOutline)
	ai.Post("/revise-outline", rateLimiter.ContentLimit(cfg.RateLimit.ContentPerHour), aiHandler.ReviseOutline)
	ai.Post("/generate-content", rateLimiter.ContentLimit(cfg.RateLimit.ContentPerHour), aiHandler.GenerateContent)
	ai.Post("/revise-content", rateLimiter.ContentLimit(cfg.RateLimit.ContentPerHour), aiHandler.ReviseContent)
	ai.Post("/generate-slide-image", rateLimiter.SlidesLimit(cfg.RateLimit.SlidesPerHour), aiHandler.GenerateSlideImage)
	ai.Post("/manual-mode", aiHandler.ManualMode)
	ai.Post("/cancel", aiHandler.Cancel)

	// Workflow session routes
	wf := api.Group("/workflow")
	wf.Get("/:sessionId", workflowHandler.Get)
	wf.Put("/:sessionId", workflowHandler.Update)
	wf.Delete("/:sessionId", workflowHandler.Reset)
	wf.Post("/:sessionId/select-problems", workflowHandler.SelectProblems)
	wf.Post("/:sessionId/select-solution", workflowHandler.SelectSolution)
	wf.Post("/:sessionId/assets", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour), workflowHandler.UploadAsset)
	wf.Delete("/:sessionId/assets/:assetId", workflowHandler.DeleteAsset)

	// Service area and journey circle routes
	areas := api.Group("/service-areas")
	areas.Post("/", journeyHandler.CreateServiceArea)
	areas.Get("/", journeyHandler.ListServiceAreas)
	areas.Get("/:id", journeyHandler.GetServiceArea)
	areas.Post("/:id/journey-circle", journeyHandler.EnsureCircle)

	circles := api.Group("/journey-circles")
	circles.Get("/:id/problems", journeyHandler.ListProblems)
	circles.Get("/:id/assets", journeyHandler.ListAssets)
	circles.Get("/:id/assets/:assetId", journeyHandler.GetAsset)
	circles.Post("/:id/assets/:assetId/approve", journeyHandler.ApproveAsset)
	circles.Put("/:id/problems/:problemId/asset-urls", journeyHandler.SetAssetURLs)

	// Slide deck routes
	slides := api.Group("/slides")
	slides.Post("/start", rateLimiter.SlidesLimit(cfg.RateLimit.SlidesPerHour), slidesHandler.Start)
	slides.Get("/status/:jobId", slidesHandler.Status)
	slides.Get("/result/:jobId", slidesHandler.Result)
	slides.Post("/cancel/:jobId", slidesHandler.Cancel)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/sessions/:sessionId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("sessionId"))
	}))
	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("jobId"))
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, slideService, controller, storage, hub)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildAuthMiddleware selects the auth mode: gateway headers, OIDC JWKS with
// legacy fallback, or HMAC only.
func buildAuthMiddleware(cfg *config.Config) fiber.Handler {
	if cfg.Gateway.Enabled {
		log.Println("Auth: gateway header mode")
		return middleware.GatewayAuthMiddleware()
	}

	if cfg.OIDC.Domain != "" {
		verifier, err := auth.NewJWKSVerifier(&cfg.OIDC)
		if err != nil {
			log.Printf("Warning: JWKS verifier unavailable, falling back to HMAC: %v", err)
		} else {
			log.Println("Auth: OIDC JWKS with legacy fallback")
			return middleware.NewAuthMiddlewareWithFallback(verifier, cfg.JWT.Secret).Authenticate()
		}
	}

	log.Println("Auth: legacy HMAC mode")
	return middleware.NewLegacyAuthMiddleware(cfg.JWT.Secret).Authenticate()
}

func startWorkerServer(cfg *config.Config, slideService *service.SlideService, controller *generation.Controller, storage client.StorageClient, hub *ws.Hub) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"slides": 10,
			},
		},
	)

	slideWorker := worker.NewSlideWorker(slideService, controller, storage, hub)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeSlideDeck, slideWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Printf("Asynq worker error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
