package processor

import (
	"github.com/brendansudol/hearsay/internal/audio"
	"github.com/brendansudol/hearsay/internal/config"
	"github.com/brendansudol/hearsay/internal/fetch"
	"github.com/brendansudol/hearsay/internal/logger"
	"github.com/brendansudol/hearsay/internal/store"
	"github.com/brendansudol/hearsay/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	policy     audio.Policy
	fetcher    fetch.Fetcher
	segmenter  Segmenter
	fanout     Fanout
	summarizer summarizer.Summarizer
	sink       store.Sink
	logger     logger.Logger
}

// New creates a Processor wired to the given collaborators. Every external
// capability comes in as an interface so tests can substitute doubles.
func New(
	cfg *config.Config,
	fetcher fetch.Fetcher,
	segmenter Segmenter,
	fanout Fanout,
	summ summarizer.Summarizer,
	sink store.Sink,
	log logger.Logger,
) Processor {
	return &implProcessor{
		cfg: cfg,
		policy: audio.Policy{
			SplitThresholdBytes: cfg.Pipeline.SplitThresholdBytes,
			MaxAssetBytes:       cfg.Pipeline.MaxAssetBytes,
			AllowedMimeTypes:    cfg.Pipeline.AllowedMimeTypes,
		},
		fetcher:    fetcher,
		segmenter:  segmenter,
		fanout:     fanout,
		summarizer: summ,
		sink:       sink,
		logger:     log,
	}
}
