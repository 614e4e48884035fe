package audio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAsset marks assets rejected at admission: empty, oversized, or an
// unsupported media type.
var ErrInvalidAsset = errors.New("invalid asset")

// Decision is the split verdict for one asset.
type Decision struct {
	Split bool
}

// Policy decides whether an asset must be split before transcription. It is
// pure: the same inputs always produce the same decision.
type Policy struct {
	SplitThresholdBytes int64
	MaxAssetBytes       int64
	AllowedMimeTypes    []string
}

// Decide validates the asset and returns whether it needs splitting. The
// split threshold is tuned to the transcription service's per-request size
// limit.
func (p Policy) Decide(byteSize int64, mimeType string) (Decision, error) {
	if byteSize <= 0 {
		return Decision{}, fmt.Errorf("%w: empty file", ErrInvalidAsset)
	}
	if byteSize > p.MaxAssetBytes {
		return Decision{}, fmt.Errorf("%w: %d bytes exceeds maximum of %d", ErrInvalidAsset, byteSize, p.MaxAssetBytes)
	}
	if !p.mimeAllowed(mimeType) {
		return Decision{}, fmt.Errorf("%w: unsupported media type %q", ErrInvalidAsset, mimeType)
	}

	return Decision{Split: byteSize >= p.SplitThresholdBytes}, nil
}

func (p Policy) mimeAllowed(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, allowed := range p.AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
