package embedding

import (
	"context"
	"fmt"
)

// Provider turns a text into a fixed-length dense vector. Implementations
// must be safe for concurrent use; the server constructs one at startup and
// shares it across all requests.
//
// An empty or entirely out-of-vocabulary text embeds to a zero-norm vector,
// not an error — the scorer treats "no semantic signal" as a policy case.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Options selects and configures the provider implementation.
type Options struct {
	Provider     string // "wordvec", "gemini" or "mock"
	VectorsPath  string
	GeminiAPIKey string
	GeminiModel  string
}

// NewProvider builds the configured provider. Failure here (unreadable
// vector file, missing API key) is a startup failure — the caller must not
// serve without a working provider.
func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Provider {
	case "mock":
		return NewMockProvider(), nil
	case "gemini":
		return NewGeminiProvider(ctx, opts.GeminiAPIKey, opts.GeminiModel)
	case "wordvec":
		return LoadWordVectors(opts.VectorsPath)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}
