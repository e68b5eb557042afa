package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ertan/cvscout/internal/api"
	"github.com/ertan/cvscout/internal/api/handler"
	"github.com/ertan/cvscout/internal/config"
	"github.com/ertan/cvscout/internal/document"
	"github.com/ertan/cvscout/internal/llm"
	"github.com/ertan/cvscout/internal/logger"
	"github.com/ertan/cvscout/internal/repository"
	"github.com/ertan/cvscout/internal/workflow"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.New(logger.FromEnv()))
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	store := repository.NewScreeningStore(db)

	// Initialize extraction client
	extractor := llm.New(&llm.Config{
		Model:      cfg.LLM.Model,
		EmailModel: cfg.Email.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
	})

	// Initialize pipelines
	pipeline := workflow.NewPipeline(document.NewFileLoader(), extractor, store)
	emailPipeline := workflow.NewEmailPipeline(extractor, workflow.NewMockDispatcher())

	// Setup router
	router := api.SetupRouter(
		&cfg.Server,
		handler.NewJobHandler(jobRepo, applicationRepo),
		handler.NewScreeningHandler(pipeline, jobRepo, cfg.Screening.UploadsDir),
		handler.NewEmailHandler(emailPipeline),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
