package domain

// AudioAsset describes a fetched remote audio file. Immutable after creation
// and owned by a single pipeline invocation.
type AudioAsset struct {
	SourceURL string
	LocalPath string
	ByteSize  int64
	MimeType  string
}

// Segment is one time-bounded slice of the original audio. Index is 0-based
// and defines the canonical temporal order; every downstream stage must
// preserve it.
type Segment struct {
	Index    int
	FilePath string
	MimeType string
}

// TranscriptChunk is the transcription result for one segment.
type TranscriptChunk struct {
	SegmentIndex int
	Text         string
	RawResult    string
}

// SummaryResult carries the optional title and paragraph summary. Absence is
// a valid terminal state, not an error.
type SummaryResult struct {
	Title     string
	Paragraph string
}

// JobStatus is the lifecycle state of one pipeline job.
type JobStatus string

const (
	StatusRunning JobStatus = "RUNNING"
	StatusSuccess JobStatus = "SUCCESS"
	StatusFailed  JobStatus = "FAILED"
)

// JobRecord is the persisted view of a job. Created RUNNING at job start,
// updated exactly once more to SUCCESS or FAILED.
type JobRecord struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"sourceUrl"`
	Status     JobStatus `json:"status"`
	Transcript string    `json:"transcript,omitempty"`
	Title      string    `json:"title,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	UpdatedAt  int64     `json:"updatedAt"`
}
