package summarizer

import (
	"context"

	"github.com/brendansudol/hearsay/internal/domain"
)

// Completer issues one language-model completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces a best-effort title and paragraph summary for an
// aggregated transcript. The boolean reports presence; a false result is a
// valid outcome and never an error.
type Summarizer interface {
	Summarize(ctx context.Context, promptText string) (domain.SummaryResult, bool)
}
