package transcriber

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brendansudol/hearsay/internal/domain"
	"github.com/brendansudol/hearsay/internal/logger"
)

// fakeTranscriber returns "text-<index>" for each segment after a per-index
// delay, tracking how many requests are in flight at once.
type fakeTranscriber struct {
	delayFor  func(index int) time.Duration
	failIndex int

	inflight    atomic.Int32
	maxInflight atomic.Int32
	calls       atomic.Int32
}

func newFakeTranscriber() *fakeTranscriber {
	return &fakeTranscriber{failIndex: -1}
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filePath, mimeType string) (Result, error) {
	f.calls.Add(1)

	cur := f.inflight.Add(1)
	for {
		max := f.maxInflight.Load()
		if cur <= max || f.maxInflight.CompareAndSwap(max, cur) {
			break
		}
	}
	defer f.inflight.Add(-1)

	index := segmentIndexFromPath(filePath)
	if f.delayFor != nil {
		time.Sleep(f.delayFor(index))
	}
	if index == f.failIndex {
		return Result{}, fmt.Errorf("service rejected segment")
	}

	return Result{Text: "text-" + strconv.Itoa(index), Raw: "{}"}, nil
}

func segmentIndexFromPath(path string) int {
	base := filepath.Base(path)
	n, _ := strconv.Atoi(strings.TrimPrefix(base, "seg-"))
	return n
}

func makeSegments(n int) []domain.Segment {
	segments := make([]domain.Segment, n)
	for i := range segments {
		segments[i] = domain.Segment{
			Index:    i,
			FilePath: "/tmp/seg-" + strconv.Itoa(i),
			MimeType: "audio/mpeg",
		}
	}
	return segments
}

func TestTranscribeAllRestoresOrder(t *testing.T) {
	fake := newFakeTranscriber()
	// Later segments finish first to force reassembly by index.
	fake.delayFor = func(index int) time.Duration {
		return time.Duration(40-index*10) * time.Millisecond
	}

	fanout := NewFanout(fake, logger.NewNop(), 8)
	chunks, err := fanout.TranscribeAll(context.Background(), makeSegments(4))
	if err != nil {
		t.Fatalf("TranscribeAll() error = %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("len(chunks) = %d, want 4", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.SegmentIndex != i {
			t.Errorf("chunks[%d].SegmentIndex = %d, want %d", i, chunk.SegmentIndex, i)
		}
		if want := "text-" + strconv.Itoa(i); chunk.Text != want {
			t.Errorf("chunks[%d].Text = %q, want %q", i, chunk.Text, want)
		}
	}
}

func TestTranscribeAllCapsConcurrency(t *testing.T) {
	fake := newFakeTranscriber()
	fake.delayFor = func(int) time.Duration { return 20 * time.Millisecond }

	fanout := NewFanout(fake, logger.NewNop(), 2)
	if _, err := fanout.TranscribeAll(context.Background(), makeSegments(8)); err != nil {
		t.Fatalf("TranscribeAll() error = %v", err)
	}

	if got := fake.maxInflight.Load(); got > 2 {
		t.Errorf("max in-flight requests = %d, want <= 2", got)
	}
	if got := fake.calls.Load(); got != 8 {
		t.Errorf("calls = %d, want 8", got)
	}
}

func TestTranscribeAllSegmentFailure(t *testing.T) {
	fake := newFakeTranscriber()
	fake.failIndex = 2

	fanout := NewFanout(fake, logger.NewNop(), 4)
	chunks, err := fanout.TranscribeAll(context.Background(), makeSegments(4))
	if err == nil {
		t.Fatal("TranscribeAll() should fail when one segment fails")
	}
	if chunks != nil {
		t.Errorf("chunks = %v, want nil on failure", chunks)
	}

	var segErr *SegmentError
	if !errors.As(err, &segErr) {
		t.Fatalf("error = %T, want *SegmentError", err)
	}
	if segErr.Index != 2 {
		t.Errorf("SegmentError.Index = %d, want 2", segErr.Index)
	}
	if !strings.Contains(err.Error(), "segment 2") {
		t.Errorf("error message %q should reference the failing segment", err.Error())
	}
}

func TestTranscribeAllSingleSegment(t *testing.T) {
	fake := newFakeTranscriber()

	fanout := NewFanout(fake, logger.NewNop(), 4)
	chunks, err := fanout.TranscribeAll(context.Background(), makeSegments(1))
	if err != nil {
		t.Fatalf("TranscribeAll() error = %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "text-0" {
		t.Errorf("chunks = %v, want single text-0 chunk", chunks)
	}
	if got := fake.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestTranscribeAllCancelledContext(t *testing.T) {
	fake := newFakeTranscriber()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fanout := NewFanout(fake, logger.NewNop(), 2)
	if _, err := fanout.TranscribeAll(ctx, makeSegments(4)); err == nil {
		t.Error("TranscribeAll() should fail on cancelled context")
	}
}
