// Package gender guesses a salutation (Mr./Ms.) from a person's first name
// using an external name-to-gender service.
//
// The service is reached through the Resolver interface. GenderizeClient
// talks to genderize.io, CachedResolver keeps definite answers in a local
// bbolt file, and Detector runs a whole pasted list sequentially with a fixed
// pause between lookups.
package gender

import (
	"context"
	"errors"
	"strings"
)

// ErrService is wrapped by every failure talking to the remote service.
var ErrService = errors.New("gender service unavailable")

// Gender is the service's answer for a name.
type Gender string

const (
	Male    Gender = "male"
	Female  Gender = "female"
	Unknown Gender = ""
)

// Guess is a resolved name.
type Guess struct {
	Gender      Gender  `json:"gender"`
	Probability float64 `json:"probability"`
	Count       int     `json:"count"`

	// Cached is set when the answer came from a local cache and no remote
	// call was made.
	Cached bool `json:"-"`
}

// Known reports whether the guess names a gender.
func (g Guess) Known() bool {
	return g.Gender == Male || g.Gender == Female
}

// Salutation returns "Mr." or "Ms.", or "" when the gender is unknown.
func (g Guess) Salutation() string {
	switch g.Gender {
	case Male:
		return "Mr."
	case Female:
		return "Ms."
	default:
		return ""
	}
}

// Resolver maps a first name to a gender guess.
type Resolver interface {
	Resolve(ctx context.Context, firstName string) (Guess, error)
}

// FirstName returns the first space-separated token of a trimmed line.
func FirstName(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
