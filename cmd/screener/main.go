package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/ertan/cvscout/internal/config"
	"github.com/ertan/cvscout/internal/document"
	"github.com/ertan/cvscout/internal/llm"
	"github.com/ertan/cvscout/internal/logger"
	"github.com/ertan/cvscout/internal/repository"
	"github.com/ertan/cvscout/internal/workflow"
)

// resumeExtensions are the document types the screener picks up when walking
// a directory.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
	".txt":  true,
}

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "cvscout-screener",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	dir := flag.String("dir", "", "Directory of resume documents to screen")
	file := flag.String("file", "", "Single resume document to screen")
	jobID := flag.Uint("job", 0, "Job ID to record applications against")
	jobDescriptionFile := flag.String("job-description", "", "Path to a job description text file (overrides the stored one)")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *dir == "" && *file == "" {
		fmt.Fprintln(os.Stderr, "usage: screener -dir <resumes-dir> [-job <id>] [-job-description <file>]")
		fmt.Fprintln(os.Stderr, "       screener -file <resume> [-job <id>] [-job-description <file>]")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Resolve job context
	var recordJobID *uint
	jobDescription := ""
	if *jobID != 0 {
		id := uint(*jobID)
		job, err := repository.NewJobRepository(db).GetByID(ctx, id)
		if err != nil {
			appLogger.WithError(err).Fatalf("Failed to load job %d", id)
		}
		recordJobID = &id
		jobDescription = job.Description
	}
	if *jobDescriptionFile != "" {
		data, err := os.ReadFile(*jobDescriptionFile)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to read job description file")
		}
		jobDescription = string(data)
	}

	// Collect documents
	paths, err := collectDocuments(*dir, *file)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to collect resume documents")
	}
	if len(paths) == 0 {
		appLogger.Fatal("No resume documents found")
	}

	// Initialize pipeline
	extractor := llm.New(&llm.Config{
		Model:      cfg.LLM.Model,
		EmailModel: cfg.Email.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
	})
	pipeline := workflow.NewPipeline(document.NewFileLoader(), extractor, repository.NewScreeningStore(db))

	appLogger.WithFields(logger.Fields{
		logger.FieldCount: len(paths),
		"with_analysis":   strings.TrimSpace(jobDescription) != "",
	}).Info("Starting screening run")

	summary := pipeline.RunBatch(ctx, paths, jobDescription, recordJobID)

	printSummary(summary)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// collectDocuments gathers resume paths from the -dir and -file flags.
// Directory entries are sorted by name so runs are reproducible.
func collectDocuments(dir, file string) ([]string, error) {
	var paths []string

	if file != "" {
		paths = append(paths, file)
	}

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if resumeExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(paths)
	}

	return paths, nil
}

// printSummary writes the per-document outcomes and totals to stdout.
func printSummary(summary *workflow.BatchSummary) {
	fmt.Printf("\nScreening run %s\n", summary.RunID)
	for _, item := range summary.Items {
		marker := "ok"
		if item.Err != nil {
			marker = "FAIL"
		}
		line := fmt.Sprintf("  [%s] %s: %s", marker, filepath.Base(item.Path), item.Message)
		if item.MatchScore != nil {
			line += fmt.Sprintf(" (score %d)", *item.MatchScore)
		}
		fmt.Println(line)
	}
	fmt.Printf("Total: %d, succeeded: %d, failed: %d, duration: %s\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Duration.Round(time.Millisecond))
}
