package audio

import (
	"errors"
	"testing"
)

func testPolicy() Policy {
	return Policy{
		SplitThresholdBytes: 24_000_000,
		MaxAssetBytes:       512 * 1024 * 1024,
		AllowedMimeTypes:    []string{"audio/mpeg", "audio/wav", "audio/mp4"},
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		byteSize  int64
		mimeType  string
		wantSplit bool
		wantErr   bool
	}{
		{
			name:      "small asset no split",
			byteSize:  5_000_000,
			mimeType:  "audio/mpeg",
			wantSplit: false,
		},
		{
			name:      "asset at threshold splits",
			byteSize:  24_000_000,
			mimeType:  "audio/mpeg",
			wantSplit: true,
		},
		{
			name:      "large asset splits",
			byteSize:  100_000_000,
			mimeType:  "audio/wav",
			wantSplit: true,
		},
		{
			name:     "zero size rejected",
			byteSize: 0,
			mimeType: "audio/mpeg",
			wantErr:  true,
		},
		{
			name:     "negative size rejected",
			byteSize: -1,
			mimeType: "audio/mpeg",
			wantErr:  true,
		},
		{
			name:     "oversized rejected",
			byteSize: 513 * 1024 * 1024,
			mimeType: "audio/mpeg",
			wantErr:  true,
		},
		{
			name:     "unsupported mime rejected",
			byteSize: 5_000_000,
			mimeType: "video/mp4",
			wantErr:  true,
		},
		{
			name:     "empty mime rejected",
			byteSize: 5_000_000,
			mimeType: "",
			wantErr:  true,
		},
		{
			name:      "mime matching is case insensitive",
			byteSize:  5_000_000,
			mimeType:  "Audio/MPEG",
			wantSplit: false,
		},
	}

	policy := testPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := policy.Decide(tt.byteSize, tt.mimeType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decide() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAsset) {
					t.Errorf("error = %v, want ErrInvalidAsset", err)
				}
				return
			}
			if decision.Split != tt.wantSplit {
				t.Errorf("Split = %v, want %v", decision.Split, tt.wantSplit)
			}
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	policy := testPolicy()
	first, err1 := policy.Decide(30_000_000, "audio/mpeg")
	second, err2 := policy.Decide(30_000_000, "audio/mpeg")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Decide() not deterministic: %v vs %v", first, second)
	}
}
