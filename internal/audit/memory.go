package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/logging"
)

// LogRecorder writes entries to the structured log and keeps the most recent
// ones in memory. It is used when no database is configured.
type LogRecorder struct {
	mu      sync.Mutex
	entries []Entry // ring buffer, oldest first once full
	next    int
	full    bool
}

// NewLogRecorder keeps up to capacity entries in memory.
func NewLogRecorder(capacity int) *LogRecorder {
	if capacity <= 0 {
		capacity = DefaultRecentLimit
	}
	return &LogRecorder{entries: make([]Entry, capacity)}
}

// Record implements Recorder.
func (r *LogRecorder) Record(ctx context.Context, e Entry) error {
	logging.FromContext(ctx).Info("tool run",
		slog.String("run_id", e.ID.String()),
		slog.String("tool", e.Tool),
		slog.Int("input_lines", e.InputLines),
		slog.Int("output_lines", e.OutputLines),
		slog.Int64("duration_ms", e.Duration.Milliseconds()),
		slog.String("error_code", e.Error),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *LogRecorder) Recent(_ context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.full {
		n = len(r.entries)
	}
	if limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (r.next - 1 - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out, nil
}

// Purge drops entries created before olderThan.
func (r *LogRecorder) Purge(_ context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.full {
		n = len(r.entries)
	}

	kept := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		idx := i
		if r.full {
			idx = (r.next + i) % len(r.entries)
		}
		if !r.entries[idx].CreatedAt.Before(olderThan) {
			kept = append(kept, r.entries[idx])
		}
	}

	purged := int64(n - len(kept))
	r.entries = make([]Entry, len(r.entries))
	copy(r.entries, kept)
	r.next = len(kept) % len(r.entries)
	r.full = len(kept) == len(r.entries)
	return purged, nil
}

// Close is a no-op.
func (r *LogRecorder) Close() {}
