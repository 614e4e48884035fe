package summarizer

import (
	"github.com/brendansudol/hearsay/internal/logger"
)

type implSummarizer struct {
	completer Completer
	logger    logger.Logger
}

// New creates a Summarizer issuing completions through the given backend.
func New(completer Completer, log logger.Logger) Summarizer {
	return &implSummarizer{
		completer: completer,
		logger:    log,
	}
}
