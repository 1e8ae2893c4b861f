package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"unified-messaging-go/config"
	"unified-messaging-go/internal/database"
	"unified-messaging-go/internal/handler"
	"unified-messaging-go/internal/metrics"
	"unified-messaging-go/internal/repository"
	"unified-messaging-go/internal/server"
	"unified-messaging-go/internal/service"
	"unified-messaging-go/internal/stats"
)

func main() {
	// Configure logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting Unified Messaging Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Configuration validation failed: %v", err)
	}

	// Initialize database
	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize metrics
	m := metrics.NewMetrics()

	// Initialize repositories
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	messageService := service.NewMessageService(db, conversationRepo, messageRepo, m, cfg.Pagination.MessageLimit)
	conversationService := service.NewConversationService(conversationRepo, messageRepo, cfg.Pagination.ConversationLimit, cfg.Pagination.MessageLimit)

	// Initialize stats refresher
	refresher := stats.NewRefresher(&cfg.Stats, conversationRepo, messageRepo, m)

	// Initialize HTTP handlers
	handlers := handler.NewHandlers(db, messageService, conversationService, refresher)

	// Setup HTTP server
	router := server.SetupRouter(handlers)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start stats refresher
	if err := refresher.Start(); err != nil {
		logrus.Fatalf("Failed to start stats refresher: %v", err)
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop stats refresher
	if err := refresher.Stop(); err != nil {
		logrus.Errorf("Failed to stop stats refresher: %v", err)
	}

	// Wait for in-flight refresh to finish
	refresher.Wait()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
