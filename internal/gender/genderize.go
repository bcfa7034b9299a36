package gender

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultGenderizeURL is the public genderize.io endpoint.
const DefaultGenderizeURL = "https://api.genderize.io"

// GenderizeClient resolves names against a genderize.io compatible API.
type GenderizeClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGenderizeClient returns a client for baseURL. apiKey may be empty for
// the free tier.
func NewGenderizeClient(baseURL, apiKey string, timeout time.Duration) *GenderizeClient {
	if baseURL == "" {
		baseURL = DefaultGenderizeURL
	}
	return &GenderizeClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type genderizeResponse struct {
	Name        string  `json:"name"`
	Gender      *string `json:"gender"`
	Probability float64 `json:"probability"`
	Count       int     `json:"count"`
}

// Resolve implements Resolver.
func (c *GenderizeClient) Resolve(ctx context.Context, firstName string) (Guess, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Guess{}, fmt.Errorf("%w: bad base url: %v", ErrService, err)
	}
	q := u.Query()
	q.Set("name", firstName)
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Guess{}, fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Guess{}, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return Guess{}, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}

	var body genderizeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return Guess{}, fmt.Errorf("%w: decode response: %v", ErrService, err)
	}

	g := Guess{Probability: body.Probability, Count: body.Count}
	if body.Gender != nil {
		switch Gender(*body.Gender) {
		case Male, Female:
			g.Gender = Gender(*body.Gender)
		}
	}
	return g, nil
}
