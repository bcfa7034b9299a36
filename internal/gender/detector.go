package gender

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/logging"
)

// DefaultDelay is the pause between two remote lookups.
const DefaultDelay = 100 * time.Millisecond

// Detector resolves a pasted list of names one line at a time.
type Detector struct {
	resolver Resolver
	delay    time.Duration
}

// NewDetector returns a Detector pausing delay between remote lookups.
func NewDetector(r Resolver, delay time.Duration) *Detector {
	if delay < 0 {
		delay = 0
	}
	return &Detector{resolver: r, delay: delay}
}

// Result is the outcome for one input line.
type Result struct {
	Line  string `json:"line"`
	Guess Guess  `json:"guess"`
	Err   error  `json:"-"`
}

// Render formats the result as shown to the user:
//
//	"Mr." / "Ms."                     gender known
//	"Ms. (97% confidence)"            gender known, showProbability
//	"<line> - Unknown gender"         unknown or lookup failed
//	""                                blank input line
func (r Result) Render(showProbability bool) string {
	if r.Line == "" {
		return ""
	}
	if r.Err != nil || !r.Guess.Known() {
		return r.Line + " - Unknown gender"
	}
	if showProbability {
		return fmt.Sprintf("%s (%d%% confidence)", r.Guess.Salutation(), int(math.Round(r.Guess.Probability*100)))
	}
	return r.Guess.Salutation()
}

// Detect resolves every line of text in order. Blank lines produce a blank
// result. A failed lookup does not stop the batch; it yields an unknown
// result for that line. Cancelling ctx stops the batch and returns the
// results gathered so far together with ctx.Err().
func (d *Detector) Detect(ctx context.Context, text string) ([]Result, error) {
	log := logging.FromContext(ctx)
	in := lines.Split(text)
	out := make([]Result, 0, len(in))

	pause := false
	for _, line := range in {
		line = strings.TrimSpace(line)
		if line == "" {
			out = append(out, Result{})
			continue
		}

		if pause {
			if err := sleep(ctx, d.delay); err != nil {
				return out, err
			}
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		g, err := d.resolver.Resolve(ctx, FirstName(line))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return out, ctxErr
			}
			log.Warn("gender lookup failed", "error", err)
		}
		pause = !g.Cached
		out = append(out, Result{Line: line, Guess: g, Err: err})
	}

	return out, nil
}

// RenderAll formats results one per line.
func RenderAll(results []Result, showProbability bool) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Render(showProbability)
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
