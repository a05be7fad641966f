// Package provider gives the harness a uniform client over
// OpenAI-compatible chat-completion backends, hosted or locally served.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gridprobe/faceoff/internal/config"
)

const systemPrompt = "You are a precise analytical assistant. Give exact answers."

// Response is a successful provider answer with its measured latency.
type Response struct {
	Answer  string
	Latency time.Duration
}

// Client is the single seam the harness depends on: one outbound call per
// invocation, no retries, no synthesized answers on failure.
type Client interface {
	Call(ctx context.Context, prompt string) (Response, error)
	Describe() (provider, model string)
	Ping(ctx context.Context) error
}

// FailureKind tags why a provider call failed.
type FailureKind string

const (
	Unreachable  FailureKind = "unreachable"
	AuthRejected FailureKind = "auth_rejected"
	Timeout      FailureKind = "timeout"
	RateLimited  FailureKind = "rate_limited"
)

// CallError wraps a failed provider call with its upstream detail. It is
// scoped to a single test case side and never aborts a whole run.
type CallError struct {
	Kind FailureKind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("provider call failed (%s): %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

type client struct {
	api      *openai.Client
	provider string
	model    string
	timeout  time.Duration
}

// New builds a client for a provider config. It fails fast with
// config.ErrConfigIncomplete instead of attempting a network call with a
// config that can never succeed.
func New(cfg config.ProviderConfig, timeout time.Duration) (Client, error) {
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &client{
		api:      openai.NewClientWithConfig(clientConfig),
		provider: cfg.Type,
		model:    cfg.Model,
		timeout:  timeout,
	}, nil
}

func (c *client) Describe() (string, string) {
	return c.provider, c.model
}

// Call issues one chat completion and measures wall-clock latency. The
// answer is returned verbatim; judging happens elsewhere.
func (c *client) Call(ctx context.Context, prompt string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	latency := time.Since(start)
	if err != nil {
		// Latency still carries the time spent waiting on the failure.
		return Response{Latency: latency}, classify(err)
	}
	if len(resp.Choices) == 0 {
		return Response{Latency: latency}, &CallError{Kind: Unreachable, Err: errors.New("empty completion response")}
	}
	return Response{Answer: resp.Choices[0].Message.Content, Latency: latency}, nil
}

// Ping sends a trivial prompt to verify the backend is reachable and the
// credential is accepted.
func (c *client) Ping(ctx context.Context) error {
	_, err := c.Call(ctx, "Reply with the single word OK.")
	return err
}

func classify(err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{Kind: Timeout, Err: err}
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &CallError{Kind: kindForStatus(apiErr.HTTPStatusCode), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &CallError{Kind: kindForStatus(reqErr.HTTPStatusCode), Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CallError{Kind: Timeout, Err: err}
	}
	return &CallError{Kind: Unreachable, Err: err}
}

func kindForStatus(status int) FailureKind {
	switch status {
	case 401, 403:
		return AuthRejected
	case 429:
		return RateLimited
	case 408:
		return Timeout
	default:
		return Unreachable
	}
}
