package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorder_RecentNewestFirst(t *testing.T) {
	r := NewLogRecorder(3)
	ctx := context.Background()

	for _, tool := range []string{"a", "b", "c", "d"} {
		require.NoError(t, r.Record(ctx, NewEntry(tool)))
	}

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "d", got[0].Tool)
	assert.Equal(t, "c", got[1].Tool)
	assert.Equal(t, "b", got[2].Tool)

	got, err = r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].Tool)
}

func TestLogRecorder_Purge(t *testing.T) {
	r := NewLogRecorder(4)
	ctx := context.Background()
	now := time.Now()

	for i, age := range []time.Duration{72 * time.Hour, time.Hour, 48 * time.Hour, time.Minute} {
		e := NewEntry(string(rune('a' + i)))
		e.CreatedAt = now.Add(-age)
		require.NoError(t, r.Record(ctx, e))
	}

	n, err := r.Purge(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].Tool)
	assert.Equal(t, "b", got[1].Tool)

	require.NoError(t, r.Record(ctx, NewEntry("e")))
	got, _ = r.Recent(ctx, 0)
	assert.Equal(t, "e", got[0].Tool)
}

func TestNewEntry(t *testing.T) {
	a, b := NewEntry("x"), NewEntry("x")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestParseIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", parseIP("10.0.0.1:5555").String())
	assert.Equal(t, "::1", parseIP("[::1]:80").String())
	assert.Nil(t, parseIP("not-an-ip"))
	assert.Nil(t, parseIP(""))
}

// TestPostgresRecorder runs against a real database when TEST_DATABASE_URL
// is set.
func TestPostgresRecorder(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	rec, err := NewPostgresRecorder(ctx, pool)
	require.NoError(t, err)
	defer rec.Close()

	e := NewEntry("validate-cpf")
	e.InputLines, e.OutputLines = 3, 3
	e.Duration = 12 * time.Millisecond
	e.IPAddress = "192.0.2.7:4000"
	require.NoError(t, rec.Record(ctx, e))

	got, err := rec.Recent(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	var found bool
	for _, g := range got {
		if g.ID == e.ID {
			found = true
			assert.Equal(t, "192.0.2.7", g.IPAddress)
			assert.Equal(t, 12*time.Millisecond, g.Duration)
		}
	}
	assert.True(t, found)

	_, err = rec.Purge(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
}

func TestStartRetention_PurgesOnStart(t *testing.T) {
	r := NewLogRecorder(4)
	ctx, cancel := context.WithCancel(context.Background())

	old := NewEntry("old")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, r.Record(ctx, old))
	require.NoError(t, r.Record(ctx, NewEntry("fresh")))

	done := make(chan struct{})
	go func() {
		StartRetention(ctx, r, RetentionConfig{MaxAge: 24 * time.Hour, CheckInterval: time.Hour})
		close(done)
	}()

	require.Eventually(t, func() bool {
		got, _ := r.Recent(ctx, 10)
		return len(got) == 1 && got[0].Tool == "fresh"
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StartRetention did not stop after cancel")
	}
}

func TestStartRetention_DisabledWithoutMaxAge(t *testing.T) {
	r := NewLogRecorder(2)
	// Returns immediately; a blocking call would hang the test.
	StartRetention(context.Background(), r, RetentionConfig{})
}
