package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/brendansudol/hearsay/internal/logger"
)

// New creates a Watcher over jobsDir with concurrency control.
func New(jobsDir string, handler JobHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(jobsDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		jobsDir:       jobsDir,
		handler:       handler,
		logger:        log,
		watcher:       fsWatcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
