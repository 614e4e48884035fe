package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/brendansudol/hearsay/internal/domain"
)

const titlePrompt = `Write a short, descriptive title (at most ten words) for the audio transcript below. Respond with the title only, no quotes.

Transcript:
%s`

const paragraphPrompt = `Summarize the audio transcript below in one concise paragraph. Respond with the summary only.

Transcript:
%s`

// Summarize issues the title and paragraph completions concurrently against
// the aggregated transcript. Every failure mode collapses to an absent
// result: transcription is the primary deliverable and summarization must
// never fail the job. A blank prompt short-circuits without any network call.
func (s *implSummarizer) Summarize(ctx context.Context, promptText string) (domain.SummaryResult, bool) {
	if strings.TrimSpace(promptText) == "" {
		return domain.SummaryResult{}, false
	}

	var (
		wg        sync.WaitGroup
		title     string
		paragraph string
		titleErr  error
		paragErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		title, titleErr = s.completer.Complete(ctx, fmt.Sprintf(titlePrompt, promptText))
	}()
	go func() {
		defer wg.Done()
		paragraph, paragErr = s.completer.Complete(ctx, fmt.Sprintf(paragraphPrompt, promptText))
	}()
	wg.Wait()

	if titleErr != nil || paragErr != nil {
		if titleErr != nil {
			s.logger.Warn(ctx, "Title completion failed: %v", titleErr)
		}
		if paragErr != nil {
			s.logger.Warn(ctx, "Summary completion failed: %v", paragErr)
		}
		return domain.SummaryResult{}, false
	}

	result := domain.SummaryResult{
		Title:     strings.TrimSpace(title),
		Paragraph: strings.TrimSpace(paragraph),
	}
	if result.Title == "" && result.Paragraph == "" {
		return domain.SummaryResult{}, false
	}

	return result, true
}
