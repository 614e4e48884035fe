package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brendansudol/hearsay/internal/audio"
	"github.com/brendansudol/hearsay/internal/config"
	"github.com/brendansudol/hearsay/internal/fetch"
	"github.com/brendansudol/hearsay/internal/logger"
	"github.com/brendansudol/hearsay/internal/processor"
	"github.com/brendansudol/hearsay/internal/store"
	"github.com/brendansudol/hearsay/internal/summarizer"
	"github.com/brendansudol/hearsay/internal/transcriber"
	"github.com/brendansudol/hearsay/internal/watcher"
	"github.com/brendansudol/hearsay/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := "config.yaml"
	if env := os.Getenv("HEARSAY_CONFIG"); env != "" {
		configPath = env
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "hearsay audio pipeline starting")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	jobStore, err := store.New(cfg.Paths.Data)
	if err != nil {
		log.Error(ctx, "Failed to open job store: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	fetcher := fetch.New(nil)
	segmenter := audio.NewSegmenter(exec, log, cfg.Pipeline.SegmentSeconds)
	stt := transcriber.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, nil)
	fanout := transcriber.NewFanout(stt, log, cfg.Performance.MaxConcurrentTranscriptions)
	completer := summarizer.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	summ := summarizer.New(completer, log)

	proc := processor.New(cfg, fetcher, segmenter, fanout, summ, jobStore, log)

	// One-shot mode: URLs on the command line are processed directly.
	if len(os.Args) > 1 {
		failed := 0
		for _, url := range os.Args[1:] {
			if err := proc.Process(ctx, "", url); err != nil {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	w, err := watcher.New(cfg.Paths.Jobs, proc.Process, log, cfg.Performance.MaxConcurrentJobs)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching %s for job requests (max %d concurrent jobs)", cfg.Paths.Jobs, cfg.Performance.MaxConcurrentJobs)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "hearsay stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Jobs,
		cfg.Paths.Work,
		cfg.Paths.Data,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
