package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brendansudol/hearsay/internal/domain"
)

// Fields is a partial update of one job record. Nil pointers leave the
// existing value untouched, so callers only ever send what changed.
type Fields struct {
	SourceURL  *string
	Status     *domain.JobStatus
	Transcript *string
	Title      *string
	Summary    *string
	Reason     *string
}

// Sink receives job status updates. The pipeline writes RUNNING once at job
// start and exactly one terminal update after that; updates are idempotent.
type Sink interface {
	Update(ctx context.Context, jobID string, fields Fields) error
}

type fileData struct {
	Jobs map[string]domain.JobRecord `json:"jobs"`
}

// Store is a mutex-guarded job store flushed to a single JSON file.
type Store struct {
	mu   sync.RWMutex
	path string
	data fileData
}

// New opens (or creates) the store under baseDir.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{path: filepath.Join(baseDir, "jobs.json")}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = fileData{Jobs: map[string]domain.JobRecord{}}

	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("open jobs file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s.data); err != nil {
		if errors.Is(err, io.EOF) {
			return s.saveLocked()
		}
		return fmt.Errorf("decode jobs file: %w", err)
	}
	if s.data.Jobs == nil {
		s.data.Jobs = map[string]domain.JobRecord{}
	}
	return nil
}

// Update applies the partial update to the record for jobID, creating it on
// first touch, and flushes to disk.
func (s *Store) Update(ctx context.Context, jobID string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.data.Jobs[jobID]
	record.ID = jobID

	if fields.SourceURL != nil {
		record.SourceURL = *fields.SourceURL
	}
	if fields.Status != nil {
		record.Status = *fields.Status
	}
	if fields.Transcript != nil {
		record.Transcript = *fields.Transcript
	}
	if fields.Title != nil {
		record.Title = *fields.Title
	}
	if fields.Summary != nil {
		record.Summary = *fields.Summary
	}
	if fields.Reason != nil {
		record.Reason = *fields.Reason
	}
	record.UpdatedAt = time.Now().Unix()

	s.data.Jobs[jobID] = record
	return s.saveLocked()
}

// Get returns the record for jobID.
func (s *Store) Get(jobID string) (domain.JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data.Jobs[jobID]
	return record, ok
}

func (s *Store) saveLocked() error {
	tempPath := s.path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create jobs file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.data); err != nil {
		file.Close()
		return fmt.Errorf("encode jobs file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close jobs file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("replace jobs file: %w", err)
	}
	return nil
}

// StringPtr is a convenience for building Fields literals.
func StringPtr(s string) *string { return &s }

// StatusPtr is a convenience for building Fields literals.
func StatusPtr(s domain.JobStatus) *domain.JobStatus { return &s }
