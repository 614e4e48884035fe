package summarizer

import (
	"strings"

	"github.com/brendansudol/hearsay/internal/domain"
)

const (
	// ellipsisMarker is appended whole to any truncated chunk; a cut never
	// lands inside it.
	ellipsisMarker = "..."

	// chunkSeparator joins the per-chunk excerpts in the aggregated prompt.
	chunkSeparator = " ... "
)

// Limits bounds the aggregated prompt: total character budget, how many
// leading chunks may contribute, and the floor reserved for the first chunk
// when the budget is crowded.
type Limits struct {
	CharBudget         int
	MaxChunks          int
	MinFirstChunkChars int
}

// BuildPrompt compresses ordered transcript chunks into a single prompt body.
// Only the first MaxChunks chunks are used; later ones are dropped entirely.
// Each kept chunk is truncated to its share of the budget, except that the
// first chunk is guaranteed MinFirstChunkChars when an even share would fall
// below it, since the opening of a recording usually carries the framing
// context. Deterministic for identical input.
func BuildPrompt(chunks []domain.TranscriptChunk, limits Limits) string {
	n := min(len(chunks), limits.MaxChunks)
	if n == 0 {
		return ""
	}

	parts := make([]string, n)
	perChunk := limits.CharBudget / n

	if perChunk >= limits.MinFirstChunkChars {
		for i := 0; i < n; i++ {
			parts[i] = truncateChars(chunks[i].Text, perChunk)
		}
		return strings.Join(parts, chunkSeparator)
	}

	// Too many chunks for a fair share: favor the first, split what is left
	// evenly across the rest.
	firstBudget := limits.MinFirstChunkChars
	parts[0] = truncateChars(chunks[0].Text, firstBudget)

	if n > 1 {
		firstLen := min(len([]rune(chunks[0].Text)), firstBudget)
		remaining := max(limits.CharBudget-firstLen, 0)
		perRest := remaining / (n - 1)
		for i := 1; i < n; i++ {
			parts[i] = truncateChars(chunks[i].Text, perRest)
		}
	}

	return strings.Join(parts, chunkSeparator)
}

// truncateChars cuts text to at most budget runes, appending the ellipsis
// marker when anything was dropped. Shorter text is used verbatim.
func truncateChars(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + ellipsisMarker
}
