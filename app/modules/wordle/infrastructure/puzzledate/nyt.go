package puzzledate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// DefaultBaseURL serves one JSON document per puzzle date.
const DefaultBaseURL = "https://www.nytimes.com/svc/wordle/v2"

// Lookup returns the puzzle id published for a calendar date.
// Implementations return ErrNoData when the date has no puzzle.
type Lookup interface {
	PuzzleID(ctx context.Context, date time.Time) (int, error)
}

// ClientConfig configures NYTClient.
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// NYTClient looks puzzle ids up from the daily puzzle endpoint.
type NYTClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Lookup = (*NYTClient)(nil)

type dayResponse struct {
	ID              int     `json:"id"`
	PrintDate       string  `json:"print_date"`
	DaysSinceLaunch *int    `json:"days_since_launch"`
	Solution        *string `json:"solution,omitempty"`
}

// NewNYTClient creates a client. Zero values fall back to DefaultBaseURL, a 10s
// timeout and an unlimited request rate.
func NewNYTClient(cfg ClientConfig) *NYTClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &NYTClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// PuzzleID fetches the puzzle id for date.
func (c *NYTClient) PuzzleID(ctx context.Context, date time.Time) (int, error) {
	day := date.Format(wordledomain.DateLayout)

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: %w", day, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+day+".json", nil)
	if err != nil {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: %w", day, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: %w", day, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s", ErrNoData, day)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: unexpected status %d", day, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: read body: %w", day, err)
	}

	var payload dayResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("puzzledate.PuzzleID %s: decode: %w", day, err)
	}
	if payload.DaysSinceLaunch == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoData, day)
	}
	return *payload.DaysSinceLaunch, nil
}
