// Command extract runs one or more PDF files through question extraction and
// appends the results to the configured store.
//
//	extract [-verify=false] [-config path] file.pdf...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quiz-extractor/internal/app"
	"quiz-extractor/internal/config"
	"quiz-extractor/internal/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: search ./config.yaml)")
	verify := flag.Bool("verify", true, "verify answers flagged as uncertain")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract [-verify=false] [-config path] file.pdf...")
		os.Exit(2)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		// Logger is not initialized yet
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	log.Info("Batch extraction starting", zap.Int("files", flag.NArg()), zap.Bool("verify", *verify))

	failed := 0
	for _, path := range flag.Args() {
		if ctx.Err() != nil {
			log.Warn("Interrupted, skipping remaining files")
			break
		}

		document, err := os.ReadFile(path)
		if err != nil {
			log.Error("Failed to read file", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		result, err := application.Processor.ProcessDocument(ctx, document, *verify && cfg.Verification.Enabled)
		if err != nil {
			log.Error("Failed to process file", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		log.Info("Processed file",
			zap.String("path", path),
			zap.String("run_id", result.RunID),
			zap.Int("extracted", result.Extracted),
			zap.Int("total_stored", len(result.Questions)),
		)
	}

	log.Info("Batch extraction finished", zap.Int("failed", failed))
	if failed > 0 {
		application.Close()
		logger.Sync()
		os.Exit(1)
	}
}
