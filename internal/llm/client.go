package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama-3.3-70b-versatile"
	// DefaultTemperature keeps verdicts close to deterministic.
	DefaultTemperature = 0.1
	// DefaultTimeout bounds one completion request.
	DefaultTimeout = 60 * time.Second
)

var (
	// ErrUnavailable indicates the LLM service is not configured or unreachable.
	ErrUnavailable = errors.New("llm service unavailable")

	// ErrEmptyResponse indicates the service returned no choices.
	ErrEmptyResponse = errors.New("llm returned no choices")
)

// Client calls the chat completions endpoint.
type Client struct {
	http        *resty.Client
	apiKey      string
	model       string
	temperature float64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.http.SetBaseURL(strings.TrimRight(u, "/"))
		}
	}
}

// WithModel overrides the model name.
func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRetries sets the retry count for transport errors and 429/5xx answers.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(n)
	}
}

// New creates a Client. An empty apiKey yields a client that is not Available.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json").
			SetRetryWaitTime(time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				return r.StatusCode() == 429 || r.StatusCode() >= 500
			}),
		apiKey:      apiKey,
		model:       DefaultModel,
		temperature: DefaultTemperature,
	}
	if apiKey != "" {
		c.http.SetAuthToken(apiKey)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the client has credentials.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// WithTemperature returns a copy of the client using temperature t.
func (c *Client) WithTemperature(t float64) *Client {
	cp := *c
	cp.temperature = t
	return &cp
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a system and user message and returns the trimmed reply.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
	}

	var out chatResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode(), msg)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
