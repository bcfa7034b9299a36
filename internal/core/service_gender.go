package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/gender"
	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/logging"
)

// GenderResult is the outcome of DetectGender.
type GenderResult struct {
	Lines   []string        `json:"lines"`
	Results []gender.Result `json:"results"`
	Partial bool            `json:"partial"` // stopped before the last line
}

// DetectGender resolves a salutation for every line of input. Lookups run
// one at a time with a pause between remote calls. When ctx ends mid-batch
// the lines resolved so far are returned together with the error.
func (s *Service) DetectGender(ctx context.Context, input string, showProbability bool) (result GenderResult, err error) {
	start := time.Now()
	inputLines := len(lines.NonEmpty(input))
	defer func() {
		s.record(ctx, "gender-detection", start, inputLines, len(result.Lines), err)
	}()

	if s.detector == nil {
		return GenderResult{}, ErrGenderDisabled
	}
	if inputLines == 0 {
		return GenderResult{}, ErrEmptyInput
	}
	if s.maxGenderLines > 0 && inputLines > s.maxGenderLines {
		return GenderResult{}, ErrTooManyLines
	}

	err = s.runJob(ctx, func(ctx context.Context) error {
		results, err := s.detector.Detect(ctx, input)
		result = GenderResult{
			Lines:   gender.RenderAll(results, showProbability),
			Results: results,
			Partial: err != nil,
		}
		return err
	})

	unknown := 0
	for _, r := range result.Results {
		if r.Line != "" && !r.Guess.Known() {
			unknown++
		}
	}
	logging.FromContext(ctx).Info("gender batch completed",
		"names", inputLines,
		"unknown", unknown,
		"partial", result.Partial,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, err
}
