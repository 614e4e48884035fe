package transcriber

import "context"

// Result is one speech-to-text response: the extracted text plus the raw
// service payload for downstream inspection.
type Result struct {
	Text string
	Raw  string
}

// Transcriber converts one audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath, mimeType string) (Result, error)
}
