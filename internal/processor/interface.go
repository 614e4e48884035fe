package processor

import (
	"context"

	"github.com/brendansudol/hearsay/internal/domain"
)

// Processor runs the whole pipeline for a single job: fetch, validate,
// segment, transcribe, summarize, persist.
type Processor interface {
	Process(ctx context.Context, jobID, sourceURL string) error
}

// Segmenter cuts one asset into ordered segments, or wraps it in a single
// synthetic segment when no split is needed.
type Segmenter interface {
	Segment(ctx context.Context, asset domain.AudioAsset, workDir string, split bool) ([]domain.Segment, error)
}

// Fanout transcribes all segments and returns chunks in segment order.
type Fanout interface {
	TranscribeAll(ctx context.Context, segments []domain.Segment) ([]domain.TranscriptChunk, error)
}
