package audit

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS tool_runs (
	id           UUID PRIMARY KEY,
	tool         TEXT        NOT NULL,
	input_lines  INTEGER     NOT NULL DEFAULT 0,
	output_lines INTEGER     NOT NULL DEFAULT 0,
	duration_ms  BIGINT      NOT NULL DEFAULT 0,
	ip_address   INET,
	user_agent   TEXT,
	error_code   TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS tool_runs_created_at_idx ON tool_runs (created_at DESC);
`

// PostgresRecorder stores entries in the tool_runs table.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder creates the table if needed and returns a recorder on
// pool. The recorder owns pool and closes it in Close.
func NewPostgresRecorder(ctx context.Context, pool *pgxpool.Pool) (*PostgresRecorder, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create tool_runs: %w", err)
	}
	return &PostgresRecorder{pool: pool}, nil
}

// Record implements Recorder.
func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tool_runs
			(id, tool, input_lines, output_lines, duration_ms, ip_address, user_agent, error_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Tool, e.InputLines, e.OutputLines, e.Duration.Milliseconds(),
		parseIP(e.IPAddress), toPgText(e.UserAgent), toPgText(e.Error), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tool run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *PostgresRecorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, tool, input_lines, output_lines, duration_ms, ip_address, user_agent, error_code, created_at
		FROM tool_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge deletes entries created before olderThan.
func (r *PostgresRecorder) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tool_runs WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close closes the pool.
func (r *PostgresRecorder) Close() {
	r.pool.Close()
}

func scanEntry(rows pgx.Rows) (Entry, error) {
	var (
		e          Entry
		durationMS int64
		ip         *netip.Addr
		userAgent  pgtype.Text
		errorCode  pgtype.Text
		id         uuid.UUID
	)

	err := rows.Scan(&id, &e.Tool, &e.InputLines, &e.OutputLines, &durationMS,
		&ip, &userAgent, &errorCode, &e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}

	e.ID = id
	e.Duration = time.Duration(durationMS) * time.Millisecond
	if ip != nil {
		e.IPAddress = ip.String()
	}
	e.UserAgent = userAgent.String
	e.Error = errorCode.String
	return e, nil
}

// parseIP strips a port if present. Unparseable addresses are stored as NULL.
func parseIP(s string) *netip.Addr {
	if s == "" {
		return nil
	}
	host := s
	if h, _, err := net.SplitHostPort(s); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return nil
	}
	return &addr
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
