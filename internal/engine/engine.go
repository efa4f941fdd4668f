package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"bna/internal/domain"
)

const requestTimeout = 10 * time.Second

// Engine talks to the Battle.net mobile service and derives one-time codes
// locally. The zero value is not usable; construct with New.
type Engine struct {
	http    *resty.Client
	log     zerolog.Logger
	now     func() time.Time
	baseURL string // overrides region routing when set (tests)
}

// Option adjusts an Engine during construction.
type Option func(*Engine)

// WithBaseURL routes every request to base instead of the region's mobile
// service.
func WithBaseURL(base string) Option {
	return func(e *Engine) { e.baseURL = base }
}

// WithHTTPClient replaces the default resty client.
func WithHTTPClient(c *resty.Client) Option {
	return func(e *Engine) { e.http = c }
}

// WithClock replaces the time source used for code generation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns a ready-to-use Engine.
func New(log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		http: resty.New().SetTimeout(requestTimeout),
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// post sends an octet-stream body and returns the raw response payload.
func (e *Engine) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	e.log.Debug().Str("url", url).Int("bytes", len(body)).Msg("mobile service request")

	resp, err := e.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &statusError{url: url, status: resp.Status()}
	}
	return resp.Body(), nil
}

type statusError struct {
	url    string
	status string
}

func (e *statusError) Error() string {
	return e.url + " answered " + e.status
}

func xorBytes(a, pad []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ pad[i]
	}
	return out
}

// Compile-time assertion that Engine implements domain.TokenEngine.
var _ domain.TokenEngine = (*Engine)(nil)
