package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"line-knowledge-bot/internal/domain"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Default model settings
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
	defaultMaxAttempts = 3
)

// Options struct - Gemini client settings, zero values use defaults
type Options struct {
	APIKey string
	Model  string
	// Temperature nil applies DefaultTemperature, an explicit 0 is kept
	Temperature *float32
	// MaxAttempts bounds retries of transient failures (429, 5xx) on idempotent calls
	MaxAttempts uint
}

// Client struct - shared Gemini API client used by the document store and conversation adapters
type Client struct {
	genai       *genai.Client
	model       string
	temperature float32
	maxAttempts uint
}

// NewClient func - Creates new Gemini API client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	c := &Client{
		genai:       gc,
		model:       opts.Model,
		temperature: resolveTemperature(opts.Temperature),
		maxAttempts: opts.MaxAttempts,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.maxAttempts == 0 {
		c.maxAttempts = defaultMaxAttempts
	}

	logrus.Infof("Gemini client initialized with model: %s", c.model)
	return c, nil
}

func resolveTemperature(t *float32) float32 {
	if t == nil {
		return DefaultTemperature
	}
	return *t
}

// Model returns the generation model name
func (c *Client) Model() string {
	return c.model
}

// retry runs an idempotent remote call, retrying transient failures with exponential backoff
func retry[T any](ctx context.Context, c *Client, name string, operation func() (T, error)) (T, error) {
	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		res, err := operation()
		if err == nil {
			return res, nil
		}
		if !isTransient(err) {
			return res, backoff.Permanent(err)
		}
		logrus.Warnf("Gemini %s attempt %d/%d failed: %v", name, attempt, c.maxAttempts, err)
		return res, err
	},
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(c.maxAttempts),
	)
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

// apiStatus extracts the HTTP status of a Gemini API error, 0 when err is not one
func apiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

func isTransient(err error) bool {
	code := apiStatus(err)
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// remoteFault converts a remote failure into the domain taxonomy
func remoteFault(op string, err error) error {
	if apiStatus(err) == http.StatusNotFound {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreNotFound, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrRemoteFault, err)
}
