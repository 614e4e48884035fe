package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brendansudol/hearsay/internal/domain"
	"github.com/brendansudol/hearsay/internal/store"
	"github.com/brendansudol/hearsay/internal/summarizer"
)

// outcome is the terminal result of one pipeline run before persistence.
type outcome struct {
	transcript string
	summary    domain.SummaryResult
	hasSummary bool
}

// Process runs the pipeline for one job and persists RUNNING plus exactly one
// terminal state. Segmentation and transcription errors fail the job;
// summarization never does.
func (p *implProcessor) Process(ctx context.Context, jobID, sourceURL string) error {
	if jobID == "" {
		jobID = uuid.NewString()
	}

	startTime := time.Now()
	p.logger.Info(ctx, "Starting job %s: %s", jobID, sourceURL)

	if err := p.sink.Update(ctx, jobID, store.Fields{
		SourceURL: store.StringPtr(sourceURL),
		Status:    store.StatusPtr(domain.StatusRunning),
	}); err != nil {
		return fmt.Errorf("persist running status: %w", err)
	}

	result, err := p.run(ctx, jobID, sourceURL)
	if err != nil {
		p.logger.Error(ctx, "Job %s failed: %v", jobID, err)
		if persistErr := p.sink.Update(ctx, jobID, store.Fields{
			Status: store.StatusPtr(domain.StatusFailed),
			Reason: store.StringPtr(err.Error()),
		}); persistErr != nil {
			p.logger.Error(ctx, "Failed to persist failure for job %s: %v", jobID, persistErr)
		}
		return err
	}

	fields := store.Fields{
		Status:     store.StatusPtr(domain.StatusSuccess),
		Transcript: store.StringPtr(result.transcript),
	}
	if result.hasSummary {
		fields.Title = store.StringPtr(result.summary.Title)
		fields.Summary = store.StringPtr(result.summary.Paragraph)
	}
	if err := p.sink.Update(ctx, jobID, fields); err != nil {
		return fmt.Errorf("persist success: %w", err)
	}

	p.logger.Info(ctx, "Job %s completed in %s", jobID, time.Since(startTime))
	return nil
}

func (p *implProcessor) run(ctx context.Context, jobID, sourceURL string) (outcome, error) {
	meta, err := p.fetcher.Metadata(ctx, sourceURL)
	if err != nil {
		return outcome{}, err
	}

	decision, err := p.policy.Decide(meta.ContentLength, meta.ContentType)
	if err != nil {
		return outcome{}, err
	}

	// The work dir is keyed by the job id (a uuid), so concurrent jobs never
	// collide on segment file names.
	workDir := filepath.Join(p.cfg.Paths.Work, jobID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return outcome{}, fmt.Errorf("create work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.logger.Warn(ctx, "Failed to clean up work dir %s: %v", workDir, err)
		}
	}()

	localPath := filepath.Join(workDir, "source"+extensionForMime(meta.ContentType))
	if err := p.fetcher.Download(ctx, sourceURL, localPath); err != nil {
		return outcome{}, err
	}

	asset := domain.AudioAsset{
		SourceURL: sourceURL,
		LocalPath: localPath,
		ByteSize:  meta.ContentLength,
		MimeType:  meta.ContentType,
	}

	segments, err := p.segmenter.Segment(ctx, asset, workDir, decision.Split)
	if err != nil {
		return outcome{}, err
	}

	chunks, err := p.fanout.TranscribeAll(ctx, segments)
	if err != nil {
		return outcome{}, err
	}

	transcript := joinTranscripts(chunks)

	prompt := summarizer.BuildPrompt(chunks, summarizer.Limits{
		CharBudget:         p.cfg.Pipeline.PromptCharBudget,
		MaxChunks:          p.cfg.Pipeline.PromptMaxChunks,
		MinFirstChunkChars: p.cfg.Pipeline.PromptMinFirstChars,
	})

	summary, hasSummary := p.summarizer.Summarize(ctx, prompt)

	return outcome{
		transcript: transcript,
		summary:    summary,
		hasSummary: hasSummary,
	}, nil
}

// joinTranscripts concatenates chunk texts in segment order.
func joinTranscripts(chunks []domain.TranscriptChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if text := strings.TrimSpace(chunk.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// extensionForMime picks the local file extension, which also tells ffmpeg
// which container to use for stream-copied segments.
func extensionForMime(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "audio/mpeg":
		return ".mp3"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/wav":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".mp3"
	}
}
