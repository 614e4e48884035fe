package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrFetchFailed marks any failure to resolve or download the remote asset.
var ErrFetchFailed = errors.New("fetch failed")

const userAgent = "hearsay/1"

type implFetcher struct {
	client *http.Client
}

// New creates a Fetcher over the given HTTP client. A nil client gets a
// default with a generous timeout sized for large audio files.
func New(client *http.Client) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Minute}
	}
	return &implFetcher{client: client}
}

// Metadata issues a HEAD request and returns the content type and length.
func (f *implFetcher) Metadata(ctx context.Context, url string) (Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: head %s: %v", ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("%w: head %s: unexpected status %d", ErrFetchFailed, url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return Metadata{
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
	}, nil
}

// Download streams the remote file to dest. It writes to dest+".part" first
// and renames on success so a partial download never looks like a complete
// asset.
func (f *implFetcher) Download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: create destination directory: %v", ErrFetchFailed, err)
	}

	tempPath := dest + ".part"
	_ = os.Remove(tempPath)

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrFetchFailed, err)
	}

	success := false
	defer func() {
		_ = out.Close()
		if !success {
			_ = os.Remove(tempPath)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: get %s: unexpected status %d", ErrFetchFailed, url, resp.StatusCode)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: download body: %v", ErrFetchFailed, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrFetchFailed, err)
	}

	if err := os.Rename(tempPath, dest); err != nil {
		return fmt.Errorf("%w: move temp file into destination: %v", ErrFetchFailed, err)
	}

	success = true
	return nil
}
