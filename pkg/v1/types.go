package v1

import "time"

// CaptureResult describes where a capture ended up.
type CaptureResult struct {
	SourceID        string  `json:"source_id"`
	FiledTo         string  `json:"filed_to"`
	DestinationName string  `json:"destination_name"`
	DestinationFile string  `json:"destination_file"`
	Confidence      float64 `json:"confidence"`
	Status          string  `json:"status"`
}

// Entry is a stored vault entry.
type Entry struct {
	Category    string            `json:"category"`
	Name        string            `json:"name"`
	SourceID    string            `json:"source_id"`
	Confidence  float64           `json:"confidence"`
	Tags        []string          `json:"tags,omitempty"`
	LastTouched string            `json:"last_touched"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Body        string            `json:"body"`
}

// Digest is a generated summary of recent vault activity.
type Digest struct {
	Period     string `json:"period"`
	Date       string `json:"date"`
	Text       string `json:"text"`
	EntryCount int    `json:"entry_count"`
	Path       string `json:"path,omitempty"`
}

// Commit is one recorded vault change.
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
