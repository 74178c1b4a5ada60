package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/config"
)

// ErrNotConfigured is returned by Send when no API key is set
var ErrNotConfigured = errors.New("email: RESEND_API_KEY is not configured")

// Sender delivers a single email
type Sender interface {
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// Message is one outgoing plain-text email
type Message struct {
	To             string
	Subject        string
	Text           string
	Headers        map[string]string
	Tags           []Tag
	IdempotencyKey string
}

// Tag is a Resend message tag
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SendResult carries the provider message id
type SendResult struct {
	ID string
}

// HTTPError is a non-2xx answer from the Resend API
type HTTPError struct {
	StatusCode int
	Name       string
	Message    string
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 500 {
		msg = msg[:500] + "..."
	}
	return fmt.Sprintf("resend http %d: %s", e.StatusCode, msg)
}

// Retryable reports whether the request may succeed if repeated
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == fasthttp.StatusTooManyRequests || e.StatusCode >= fasthttp.StatusInternalServerError
}

type sendRequest struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	Subject string            `json:"subject"`
	Text    string            `json:"text"`
	Headers map[string]string `json:"headers,omitempty"`
	Tags    []Tag             `json:"tags,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Client talks to the Resend HTTP API and retries transient failures with exponential backoff
type Client struct {
	cfg       config.EmailConfig
	http      *fasthttp.Client
	logger    zerolog.Logger
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewClient creates a Resend client
func NewClient(cfg *config.EmailConfig, logger zerolog.Logger) *Client {
	c := &Client{
		cfg: *cfg,
		http: &fasthttp.Client{
			Name:                "brewquest-journey",
			MaxConnsPerHost:     cfg.Concurrency * 2,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger:    logger,
		baseDelay: 500 * time.Millisecond,
		maxDelay:  10 * time.Second,
	}
	c.cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if c.cfg.MaxRetries < 0 {
		c.cfg.MaxRetries = 0
	}

	if !c.Configured() {
		logger.Warn().Msg("RESEND_API_KEY not set, newsletter emails will fail")
	}
	return c
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// Send delivers msg, retrying 429 and 5xx answers
func (c *Client) Send(ctx context.Context, msg Message) (*SendResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return nil, fmt.Errorf("email: recipient required")
	}
	if strings.TrimSpace(msg.Subject) == "" || strings.TrimSpace(msg.Text) == "" {
		return nil, fmt.Errorf("email: subject and text required")
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from(),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Headers: msg.Headers,
		Tags:    msg.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("email: encode request: %w", err)
	}

	delay := c.baseDelay
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.doOnce(ctx, body, msg.IdempotencyKey)
		if err == nil {
			return result, nil
		}

		var httpErr *HTTPError
		retryable := !errors.As(err, &httpErr) || httpErr.Retryable()
		if !retryable || attempt >= c.cfg.MaxRetries {
			return nil, err
		}

		wait := delay
		if httpErr != nil && httpErr.RetryAfter > 0 {
			wait = httpErr.RetryAfter
		}
		if wait > c.maxDelay {
			wait = c.maxDelay
		}

		c.logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", c.cfg.MaxRetries).
			Dur("sleep", wait).
			Msg("resend request retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}

func (c *Client) from() string {
	if c.cfg.FromName == "" {
		return c.cfg.FromEmail
	}
	return fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.FromEmail)
}

func (c *Client) doOnce(ctx context.Context, body []byte, idempotencyKey string) (*SendResult, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.BaseURL + "/emails")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	req.SetBody(body)

	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("resend request: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		httpErr := &HTTPError{StatusCode: status, Message: string(resp.Body())}
		var er errorResponse
		if json.Unmarshal(resp.Body(), &er) == nil && er.Message != "" {
			httpErr.Name = er.Name
			httpErr.Message = er.Message
		}
		if secs, err := strconv.Atoi(string(resp.Header.Peek(fasthttp.HeaderRetryAfter))); err == nil && secs > 0 {
			httpErr.RetryAfter = time.Duration(secs) * time.Second
		}
		return nil, httpErr
	}

	var out sendResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("resend: decode response: %w", err)
	}
	return &SendResult{ID: out.ID}, nil
}
