package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/brendansudol/hearsay/internal/logger"
)

type fakeCompleter struct {
	calls atomic.Int32
	err   error
	reply func(prompt string) string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	if f.reply != nil {
		return f.reply(prompt), nil
	}
	return "ok", nil
}

func TestSummarizeEmptyPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{}
			s := New(completer, logger.NewNop())

			result, ok := s.Summarize(context.Background(), tt.prompt)
			if ok {
				t.Errorf("Summarize() = %v, want absent", result)
			}
			if got := completer.calls.Load(); got != 0 {
				t.Errorf("completer called %d times, want 0 network calls", got)
			}
		})
	}
}

func TestSummarizeSuccess(t *testing.T) {
	completer := &fakeCompleter{reply: func(prompt string) string {
		if strings.Contains(prompt, "title") {
			return "  A Great Talk  \n"
		}
		return "This talk covers several things."
	}}
	s := New(completer, logger.NewNop())

	result, ok := s.Summarize(context.Background(), "the aggregated transcript")
	if !ok {
		t.Fatal("Summarize() absent, want present")
	}
	if result.Title != "A Great Talk" {
		t.Errorf("Title = %q, want trimmed %q", result.Title, "A Great Talk")
	}
	if result.Paragraph != "This talk covers several things." {
		t.Errorf("Paragraph = %q", result.Paragraph)
	}
	if got := completer.calls.Load(); got != 2 {
		t.Errorf("completer called %d times, want 2", got)
	}
}

func TestSummarizeCompleterFailure(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("model unavailable")}
	s := New(completer, logger.NewNop())

	result, ok := s.Summarize(context.Background(), "some transcript")
	if ok {
		t.Errorf("Summarize() = %v, want absent on completer failure", result)
	}
}

func TestSummarizeBlankReplies(t *testing.T) {
	completer := &fakeCompleter{reply: func(string) string { return "  " }}
	s := New(completer, logger.NewNop())

	if _, ok := s.Summarize(context.Background(), "some transcript"); ok {
		t.Error("Summarize() should be absent when both completions are blank")
	}
}
