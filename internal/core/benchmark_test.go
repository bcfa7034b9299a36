package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/dupes"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
)

func benchService() *Service {
	return NewService(ServiceConfig{
		Recorder:                audit.NewLogRecorder(8),
		DefaultDuplicateColumns: []string{"Email"},
	})
}

// generateCSV builds a people sheet where every tenth row repeats an
// earlier one.
func generateCSV(rows int) []byte {
	var sb strings.Builder
	sb.WriteString("First Name,Last Name,Id Number,Birth Date,Email\n")
	for i := 0; i < rows; i++ {
		n := i
		if i%10 == 9 {
			n = i - 5
		}
		fmt.Fprintf(&sb, "Nome%d,Sobrenome%d,%09d,1990-01-%02d,p%d@cop30.br\n", n, n, n, n%28+1, n)
	}
	return []byte(sb.String())
}

func generateLines(n int, prefix string) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s%d", prefix, i%(n/2+1))
	}
	return strings.Join(lines, "\n")
}

// ============================================================================
// Duplicate Detection Benchmarks
// ============================================================================

// BenchmarkFindDuplicateRows_FullRow covers parsing plus grouping of a
// mid-size CSV upload.
func BenchmarkFindDuplicateRows_FullRow(b *testing.B) {
	svc := benchService()
	data := generateCSV(5000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.FindDuplicateRows(ctx, DuplicateRequest{
			Filename: "people.csv",
			Data:     data,
			Mode:     ModeFullRow,
		}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindDuplicateRows_Columns compares on a column subset.
func BenchmarkFindDuplicateRows_Columns(b *testing.B) {
	svc := benchService()
	data := generateCSV(5000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.FindDuplicateRows(ctx, DuplicateRequest{
			Filename: "people.csv",
			Data:     data,
			Mode:     ModeColumns,
			Columns:  []string{"Id Number", "Email"},
		}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDupesFind isolates grouping from parsing.
func BenchmarkDupesFind(b *testing.B) {
	rows, err := sheet.Codec{}.Read(bytes.NewReader(generateCSV(20000)), "people.csv")
	if err != nil {
		b.Fatal(err)
	}
	table := dupes.Table{Rows: rows}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dupes.Find(table, dupes.Options{Header: dupes.HeaderIncluded})
	}
}

// ============================================================================
// List Benchmarks
// ============================================================================

// BenchmarkCompareLists diffs two lists of 10k lines.
func BenchmarkCompareLists(b *testing.B) {
	svc := benchService()
	l1 := generateLines(10000, "a")
	l2 := generateLines(10000, "a")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.CompareLists(ctx, l1, l2)
	}
}

// ============================================================================
// Archive Benchmarks
// ============================================================================

// BenchmarkBuildPhotoZip writes 500 silhouette copies.
func BenchmarkBuildPhotoZip(b *testing.B) {
	svc := benchService()
	names := generateLines(500, "Pessoa ")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.BuildPhotoZip(ctx, io.Discard, PhotoZipRequest{Names: names, Silhouette: "male"}); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Concurrency Benchmarks
// ============================================================================

// BenchmarkJobLimiter_Parallel measures slot acquisition under contention.
func BenchmarkJobLimiter_Parallel(b *testing.B) {
	limiter := NewJobLimiter(4, DefaultMaxWaitTime)
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Do(ctx, func(context.Context) error { return nil })
		}
	})
}

// BenchmarkMapError measures the error mapping done on every failed request.
func BenchmarkMapError(b *testing.B) {
	errs := []error{
		ErrNoFile,
		fmt.Errorf("wrap: %w", ErrTooManyJobs),
		&dupes.MissingColumnsError{Columns: []string{"Email"}},
		fmt.Errorf("http: request body too large"),
		fmt.Errorf("something else"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, err := range errs {
			MapError(err)
		}
	}
}
