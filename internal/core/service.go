package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/gender"
	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
)

var (
	// ErrUnknownTool is returned for a key with no registered tool, or a key
	// whose tool is not of the kind the caller expected.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNoFile is returned when an upload carries no file.
	ErrNoFile = errors.New("no file provided")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyInput is returned when a tool gets only blank text.
	ErrEmptyInput = errors.New("empty input")

	// ErrTooManyLines is returned when input exceeds a per-tool line cap.
	ErrTooManyLines = errors.New("too many lines")

	// ErrGenderDisabled is returned when no gender resolver is configured.
	ErrGenderDisabled = errors.New("gender detection disabled")
)

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Limiter  *JobLimiter
	Recorder audit.Recorder
	Codec    sheet.Codec

	// Detector is nil when gender detection is disabled.
	Detector *gender.Detector

	// DefaultDuplicateColumns is the column set used by the "columns" mode
	// when the caller names none.
	DefaultDuplicateColumns []string

	JobTimeout     time.Duration // per heavy job, 0 means no extra limit
	MaxGenderLines int           // 0 means unlimited
	MaxZipNames    int           // 0 means unlimited
}

// Service runs tools. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	limiter  *JobLimiter
	recorder audit.Recorder
	codec    sheet.Codec
	detector *gender.Detector

	defaultColumns []string
	jobTimeout     time.Duration
	maxGenderLines int
	maxZipNames    int
}

// NewService creates a Service. A nil Limiter gets the defaults; a nil
// Recorder keeps the last runs in memory only.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Limiter == nil {
		cfg.Limiter = NewJobLimiter(DefaultMaxConcurrentJobs, DefaultMaxWaitTime)
	}
	if cfg.Recorder == nil {
		cfg.Recorder = audit.NewLogRecorder(audit.DefaultRecentLimit)
	}
	return &Service{
		limiter:        cfg.Limiter,
		recorder:       cfg.Recorder,
		codec:          cfg.Codec,
		detector:       cfg.Detector,
		defaultColumns: cfg.DefaultDuplicateColumns,
		jobTimeout:     cfg.JobTimeout,
		maxGenderLines: cfg.MaxGenderLines,
		maxZipNames:    cfg.MaxZipNames,
	}
}

// ListTools returns the metadata of every registered tool.
func (s *Service) ListTools() []ToolInfo {
	defs := All()
	infos := make([]ToolInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListToolsByGroup returns tools keyed by dashboard group.
func (s *Service) ListToolsByGroup() map[string][]ToolInfo {
	result := make(map[string][]ToolInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Tool returns the metadata of one tool.
func (s *Service) Tool(key string) (ToolInfo, error) {
	def, ok := Get(key)
	if !ok {
		return ToolInfo{}, fmt.Errorf("%w: %s", ErrUnknownTool, key)
	}
	return def.Info, nil
}

// GenderEnabled reports whether DetectGender can run.
func (s *Service) GenderEnabled() bool {
	return s.detector != nil
}

// DefaultDuplicateColumns returns the configured column set for column mode.
func (s *Service) DefaultDuplicateColumns() []string {
	return append([]string(nil), s.defaultColumns...)
}

// RunText runs a text tool on input.
func (s *Service) RunText(ctx context.Context, key, input string) (result TextResult, err error) {
	start := time.Now()
	inputLines := countLines(input)
	defer func() {
		s.record(ctx, key, start, inputLines, result.LineCount(), err)
	}()

	def, ok := Get(key)
	if !ok || def.Info.Kind != KindText {
		return TextResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, key)
	}
	if strings.TrimSpace(input) == "" {
		return TextResult{}, ErrEmptyInput
	}

	out, err := def.Transform(ctx, input)
	if err != nil {
		return TextResult{}, fmt.Errorf("%s: %w", key, err)
	}

	return TextResult{Tool: key, TextOutput: out, InputLines: inputLines}, nil
}

// CompareResult is the outcome of CompareLists.
type CompareResult struct {
	lines.Comparison
	Notice string `json:"notice,omitempty"`
}

// CompareLists diffs two pasted lists by their trimmed non-empty lines.
func (s *Service) CompareLists(ctx context.Context, list1, list2 string) (result CompareResult, err error) {
	start := time.Now()
	l1, l2 := lines.NonEmpty(list1), lines.NonEmpty(list2)
	defer func() {
		out := len(result.NotIn1) + len(result.NotIn2) + len(result.Common)
		s.record(ctx, "compare-lists", start, len(l1)+len(l2), out, err)
	}()

	if len(l1) == 0 || len(l2) == 0 {
		return CompareResult{}, ErrEmptyInput
	}

	result.Comparison = lines.Compare(l1, l2)
	if len(result.NotIn1) == 0 {
		result.Notice = lines.AllPresentNotice
	}
	return result, nil
}

// Status is the service state shown by the status endpoint.
type Status struct {
	Jobs          JobLimiterStatus `json:"jobs"`
	Tools         int              `json:"tools"`
	GenderEnabled bool             `json:"gender_enabled"`
}

// Status returns a snapshot for monitoring.
func (s *Service) Status() Status {
	return Status{
		Jobs:          s.limiter.Status(),
		Tools:         ToolCount(),
		GenderEnabled: s.detector != nil,
	}
}

// JobStatus returns the limiter state.
func (s *Service) JobStatus() JobLimiterStatus {
	return s.limiter.Status()
}

// WaitForJobs blocks until running jobs finish or ctx ends. Used on shutdown.
func (s *Service) WaitForJobs(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// RecentRuns lists the latest audit entries when the recorder supports it.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]audit.Entry, error) {
	store, ok := s.recorder.(audit.Store)
	if !ok {
		return nil, nil
	}
	return store.Recent(ctx, limit)
}

// runJob runs fn under the job limiter and the configured job timeout.
func (s *Service) runJob(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}
	return s.limiter.Do(ctx, fn)
}

// record stores an audit entry. Failures are logged and never returned.
func (s *Service) record(ctx context.Context, tool string, start time.Time, in, out int, err error) {
	e := audit.NewEntry(tool)
	e.InputLines = in
	e.OutputLines = out
	e.Duration = time.Since(start)
	e.IPAddress = IPAddressFromContext(ctx)
	e.UserAgent = UserAgentFromContext(ctx)
	if err != nil {
		e.Error = MapError(err).Code
	}

	// The request context may already be cancelled; the entry is still wanted.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if rerr := s.recorder.Record(recCtx, e); rerr != nil {
		logging.FromContext(ctx).Warn("audit record failed", "tool", tool, "error", rerr)
	}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return len(lines.Split(text))
}

func joinLines(l []string) string {
	return strings.Join(l, "\n")
}
