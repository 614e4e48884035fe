package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/brendansudol/hearsay/internal/logger"
)

// jobRequest is the shape of a dropped job file: {"id": "...", "url": "..."}.
// The id is optional; a uuid is assigned when it is missing.
type jobRequest struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type implWatcher struct {
	jobsDir       string
	handler       JobHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the jobs directory for new request files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Job watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.jobsDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing jobs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Job watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isJobFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-job file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New job request: %s", event.Name)

			// Small delay to ensure the file is fully written
			time.Sleep(200 * time.Millisecond)

			req, err := readJobRequest(event.Name)
			if err != nil {
				w.logger.Error(ctx, "Invalid job request %s: %v", event.Name, err)
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string, req jobRequest) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, req.ID, req.URL); err != nil {
						w.logger.Error(ctx, "Job %s failed: %v", req.ID, err)
					}
					if err := os.Remove(path); err != nil {
						w.logger.Warn(ctx, "Failed to remove job file %s: %v", path, err)
					}
				}(event.Name, req)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isJobFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

func readJobRequest(path string) (jobRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return jobRequest{}, fmt.Errorf("read job file: %w", err)
	}

	var req jobRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return jobRequest{}, fmt.Errorf("parse job file: %w", err)
	}
	if strings.TrimSpace(req.URL) == "" {
		return jobRequest{}, fmt.Errorf("job file has no url")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return req, nil
}
