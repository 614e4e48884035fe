package watcher

import "context"

// Watcher monitors the jobs directory for dropped job-request files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler runs one job.
type JobHandler func(ctx context.Context, jobID, sourceURL string) error
