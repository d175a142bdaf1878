package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"bookx/internal/config"
	"bookx/internal/database"
	"bookx/internal/handler"
	"bookx/internal/middleware"
	"bookx/internal/repository"
	"bookx/internal/service"
)

// main is the single entry-point for the BookSwap server.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Database: %s", cfg.DBName)
	log.Printf("  - Gemini model: %s", cfg.GeminiModel)

	// Connect to MongoDB
	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	log.Printf("Connected to MongoDB")

	// Initialize the listing store
	bookRepo, err := repository.NewBookRepository(ctx, client.Database(cfg.DBName))
	if err != nil {
		log.Fatalf("Failed to initialize book repository: %v", err)
	}

	// Initialize the text generator. Unconfigured generation leaves the
	// advice service serving deterministic fallback suggestions.
	var generator service.TextGenerator
	switch {
	case cfg.AIProvider == "dummy":
		generator = service.NewDummyGenerator()
		log.Printf("Using dummy generator")
	case cfg.AIProvider == "gemini" && cfg.ProjectID != "":
		llm, err := service.NewGeminiLLM(context.Background(), cfg.ProjectID, cfg.Location, cfg.GeminiModel, cfg.AITimeout)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer llm.Close()
		generator = llm
		log.Printf("Gemini generation enabled (%s)", cfg.GeminiModel)
	default:
		log.Printf("AI provider not configured; advice runs in fallback mode")
	}

	// Initialize services
	bookSvc := service.NewBookService(bookRepo, cfg.SearchLimit)
	adviceSvc := service.NewAdviceService(generator)
	matchSvc := service.NewMatchService(bookRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Recovery())
	app.Use(middleware.Logging())
	app.Use(middleware.Identity())

	// Register routes
	handler.NewHealthHandler(client).Register(app)
	handler.RegisterRoutes(app, bookSvc, adviceSvc, matchSvc, handler.Limits{
		AdviceWeb: cfg.AdviceWebLimit,
		AdviceAPI: cfg.AdviceAPILimit,
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
