package fetch

import "context"

// Metadata is the admission-relevant subset of the remote file's headers.
type Metadata struct {
	ContentType   string
	ContentLength int64
}

// Fetcher resolves remote audio URLs: metadata first for admission checks,
// then a streamed download to local storage.
type Fetcher interface {
	Metadata(ctx context.Context, url string) (Metadata, error)
	Download(ctx context.Context, url, dest string) error
}
