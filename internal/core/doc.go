// Package core runs the data tools independent of any transport. Web
// handlers, tests and future CLIs call the same Service.
//
// # Tool Registry
//
// Tools register at init time using [Register]; package tools holds the
// built-in set. A [ToolDefinition] carries display metadata and, for text
// tools, a [TransformFunc]:
//
//	core.Register(core.ToolDefinition{
//	    Info: core.ToolInfo{Key: "to-upper", Group: "Texto", Label: "TO UPPER", Kind: core.KindText},
//	    Transform: func(ctx context.Context, in string) (core.TextOutput, error) {
//	        return core.TextOutput{Lines: lines.Split(lines.Upper(in))}, nil
//	    },
//	})
//
// Tools of the other kinds (compare, table, gender, archive) have dedicated
// Service methods because their input is not a single block of text.
//
// # Jobs
//
// Spreadsheet scans, gender batches and photo archives run under a
// [JobLimiter] and an optional per-job timeout. A full limiter rejects with
// [ErrTooManyJobs] after waiting at most its MaxWait.
//
// # Error Handling
//
// Technical errors are mapped to Portuguese messages using [MapError]. Each
// category has a code users can quote:
//
//   - FILE001-FILE007: uploads (size, type, encoding, empty)
//   - VAL001-VAL007: input validation
//   - GEN001-GEN002: gender service
//   - JOB001-JOB003: busy, cancelled, timed out
//   - TOOL001, RATE001, ERR000
//
// # Run Log
//
// Every call records an audit.Entry with tool, line counts, duration and
// client address. The processed text is never stored.
package core
