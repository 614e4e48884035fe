package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/brendansudol/hearsay/internal/logger"
)

type geminiCompleter struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Completer that rotates through the supplied Gemini API
// keys when one is rate limited.
func NewGemini(apiKeys []string, model string, log logger.Logger) Completer {
	return &geminiCompleter{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Complete sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no gemini api keys configured")
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiCompleter) activeKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *geminiCompleter) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
