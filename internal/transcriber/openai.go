package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Minute

type openAITranscriber struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAI creates a Transcriber speaking the OpenAI audio/transcriptions
// multipart protocol. baseURL may point at any compatible endpoint.
func NewOpenAI(apiKey, baseURL, model string, client *http.Client) Transcriber {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &openAITranscriber{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: client,
	}
}

// Transcribe uploads one segment file and returns the transcribed text.
func (t *openAITranscriber) Transcribe(ctx context.Context, filePath, mimeType string) (Result, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("open segment file: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := createAudioPart(writer, filepath.Base(filePath), mimeType)
	if err != nil {
		return Result{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return Result{}, fmt.Errorf("copy audio data: %w", err)
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return Result{}, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return Result{}, fmt.Errorf("create transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read transcription response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Result{}, decodeAPIError(resp.StatusCode, raw)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Result{}, fmt.Errorf("decode transcription response: %w", err)
	}

	return Result{
		Text: strings.TrimSpace(payload.Text),
		Raw:  string(raw),
	}, nil
}

// createAudioPart builds the file part with an explicit Content-Type, which
// some transcription endpoints require to pick the right decoder.
func createAudioPart(writer *multipart.Writer, filename, mimeType string) (io.Writer, error) {
	if mimeType == "" {
		return writer.CreateFormFile("file", filename)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", mimeType)
	return writer.CreatePart(h)
}

func decodeAPIError(status int, body []byte) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("transcription api error: status %d type %s message %s", status, apiErr.Error.Type, apiErr.Error.Message)
	}

	return fmt.Errorf("transcription api error: status %d body %s", status, string(body))
}
