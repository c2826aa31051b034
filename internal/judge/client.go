package judge

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// Client is the interface both judgment implementations satisfy.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Options selects the client implementation.
type Options struct {
	Mock  bool
	Model string
}

// NewClient builds the configured LLM client. The API key comes from the
// environment; construction succeeds without one so local setups can run
// with the mock.
func NewClient(opts Options) (Client, string) {
	if opts.Mock {
		return NewMockClient("100"), "mock"
	}
	return NewAPIClient(opts.Model), opts.Model
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

// Complete makes a single attempt with temperature pinned to 0. No internal
// retry; the caller's deadline bounds latency, and retry policy belongs to
// the caller.
func (c *APIClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   16,
		Temperature: param.NewOpt(0.0),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

// ── MockClient — Local Development & Tests ─────────────────

// MockClient returns a canned reply and counts calls so tests can assert the
// exact-match short-circuit never reaches the provider.
type MockClient struct {
	Reply string
	Err   error

	calls atomic.Int64
}

func NewMockClient(reply string) *MockClient {
	return &MockClient{Reply: reply}
}

func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}

func (m *MockClient) Complete(_ context.Context, _ string, _ string) (string, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
