package transcriber

import (
	"context"
	"fmt"
	"sync"

	"github.com/brendansudol/hearsay/internal/domain"
	"github.com/brendansudol/hearsay/internal/logger"
)

// SegmentError reports the transcription failure of one segment. The whole
// batch fails with the first such error; no partial-success mode exists.
type SegmentError struct {
	Index int
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("transcription of segment %d failed: %v", e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Fanout runs one transcription per segment concurrently, capped by a
// counting semaphore, and reassembles results in segment order.
type Fanout struct {
	transcriber   Transcriber
	logger        logger.Logger
	maxConcurrent int
}

// NewFanout creates a Fanout over the given backend. maxConcurrent bounds the
// number of in-flight requests to respect upstream rate limits.
func NewFanout(t Transcriber, log logger.Logger, maxConcurrent int) *Fanout {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Fanout{
		transcriber:   t,
		logger:        log,
		maxConcurrent: maxConcurrent,
	}
}

// TranscribeAll transcribes every segment and returns chunks sorted by
// SegmentIndex ascending, regardless of completion order. Results land in a
// pre-sized slice keyed by index, never by arrival. The first segment failure
// cancels the remaining requests and fails the batch.
func (f *Fanout) TranscribeAll(ctx context.Context, segments []domain.Segment) ([]domain.TranscriptChunk, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make([]domain.TranscriptChunk, len(segments))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	sem := newSemaphore(f.maxConcurrent)
	for _, seg := range segments {
		if err := sem.acquire(ctx); err != nil {
			// Cancelled: either a segment already failed, or the caller
			// gave up. The batch error is decided after the wait.
			break
		}

		wg.Add(1)
		go func(seg domain.Segment) {
			defer wg.Done()
			defer sem.release()

			f.logger.Debug(ctx, "Transcribing segment %d: %s", seg.Index, seg.FilePath)

			result, err := f.transcriber.Transcribe(ctx, seg.FilePath, seg.MimeType)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = &SegmentError{Index: seg.Index, Err: err}
					cancel()
				}
				mu.Unlock()
				return
			}

			chunks[seg.Index] = domain.TranscriptChunk{
				SegmentIndex: seg.Index,
				Text:         result.Text,
				RawResult:    result.Raw,
			}
		}(seg)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return chunks, nil
}
