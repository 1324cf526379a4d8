package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quote-wizard/pkg/api"
	"quote-wizard/pkg/clients/webhook"
	"quote-wizard/pkg/config"
	"quote-wizard/pkg/middleware"
	"quote-wizard/pkg/quote"
	"quote-wizard/pkg/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Pricing is fixed for the lifetime of the process
	table := quote.DefaultPricingTable()
	if cfg.PricingTablePath != "" {
		table, err = quote.LoadPricingTable(cfg.PricingTablePath)
		if err != nil {
			log.Fatalf("Error loading pricing table: %v", err)
		}
	}
	if missing := table.Missing(); len(missing) > 0 {
		log.Printf("Pricing table has no premium for ages %v; those ages will quote as ineligible", missing)
	}

	engine := quote.NewEngine(table, quote.WithLocation(loc))

	// Initialize services
	webhookClient := webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout)
	submissionService := services.NewSubmissionService(webhookClient, time.Now)

	gin.SetMode(cfg.GinMode)

	// Create a new Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigin))

	handlers := api.NewHandlers(engine, submissionService, cfg.RedirectURL)
	handlers.Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	// Let leads already handed off finish their single delivery attempt
	done := make(chan struct{})
	go func() {
		submissionService.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Println("Gave up waiting for in-flight webhook deliveries")
	}
}
