package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/brendansudol/hearsay/internal/domain"
	"github.com/brendansudol/hearsay/internal/logger"
	"github.com/brendansudol/hearsay/pkg/executor"
)

// ErrSegmentationFailed marks a segmentation run where the external tool
// exited non-zero or produced no output files.
var ErrSegmentationFailed = errors.New("segmentation failed")

var segmentNamePattern = regexp.MustCompile(`^segment-(\d+)\.`)

// Segmenter cuts one audio file into ordered bounded-duration segments using
// ffmpeg in stream-copy mode.
type Segmenter struct {
	executor       executor.Executor
	logger         logger.Logger
	segmentSeconds int
}

// NewSegmenter creates a Segmenter shelling out through the given executor.
func NewSegmenter(exec executor.Executor, log logger.Logger, segmentSeconds int) *Segmenter {
	return &Segmenter{
		executor:       exec,
		logger:         log,
		segmentSeconds: segmentSeconds,
	}
}

// Segment cuts the asset into ordered segments written under workDir. When
// split is false it returns a single synthetic segment wrapping the original
// file and never invokes the external tool.
func (s *Segmenter) Segment(ctx context.Context, asset domain.AudioAsset, workDir string, split bool) ([]domain.Segment, error) {
	if !split {
		return []domain.Segment{{
			Index:    0,
			FilePath: asset.LocalPath,
			MimeType: asset.MimeType,
		}}, nil
	}

	ext := filepath.Ext(asset.LocalPath)
	if ext == "" {
		ext = ".mp3"
	}
	pattern := filepath.Join(workDir, "segment-%03d"+ext)

	s.logger.Info(ctx, "Segmenting %s into %ds slices", asset.LocalPath, s.segmentSeconds)

	// Stream copy: cut at fixed time boundaries without re-encoding, so
	// splitting stays fast and lossless.
	args := []string{
		"-i", asset.LocalPath,
		"-c", "copy",
		"-f", "segment",
		"-segment_time", strconv.Itoa(s.segmentSeconds),
		"-reset_timestamps", "1",
		"-y",
		pattern,
	}

	if _, err := s.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentationFailed, err)
	}

	segments, err := s.collectSegments(workDir, asset.MimeType)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Produced %d segments", len(segments))
	return segments, nil
}

// collectSegments enumerates the tool's output files and sorts them by their
// ordinal suffix. Directory listings are not guaranteed to return files in
// creation order, so the sort is load-bearing.
func (s *Segmenter) collectSegments(workDir, mimeType string) ([]domain.Segment, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read output directory: %v", ErrSegmentationFailed, err)
	}

	type ordinalFile struct {
		ordinal int
		path    string
	}

	var files []ordinalFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := segmentNamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, ordinalFile{
			ordinal: ordinal,
			path:    filepath.Join(workDir, entry.Name()),
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: tool produced no output files", ErrSegmentationFailed)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].ordinal < files[j].ordinal })

	segments := make([]domain.Segment, len(files))
	for i, f := range files {
		segments[i] = domain.Segment{
			Index:    i,
			FilePath: f.path,
			MimeType: mimeType,
		}
	}

	return segments, nil
}
