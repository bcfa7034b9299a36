// Package audit records one entry per tool run: which tool, how much input,
// how long it took and who called it.
//
// Entries never hold the processed text. Tool inputs are CPFs, names and
// phone numbers, and the log must stay free of personal data.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is a single tool run.
type Entry struct {
	ID          uuid.UUID     `json:"id"`
	Tool        string        `json:"tool"`
	InputLines  int           `json:"inputLines"`
	OutputLines int           `json:"outputLines"`
	Duration    time.Duration `json:"durationNs"`
	IPAddress   string        `json:"ipAddress,omitempty"`
	UserAgent   string        `json:"userAgent,omitempty"`
	Error       string        `json:"error,omitempty"` // error code, never the raw message
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewEntry returns an entry with a fresh ID and timestamp.
func NewEntry(tool string) Entry {
	return Entry{
		ID:        uuid.New(),
		Tool:      tool,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder stores entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store is a Recorder that can also list and expire entries.
type Store interface {
	Recorder
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
	Close()
}

// DefaultRecentLimit caps Recent when limit is not positive.
const DefaultRecentLimit = 50
