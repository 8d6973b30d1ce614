package provider

import (
	"context"
	"fmt"

	"github.com/viant/bedrockchat/genai/llm"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
)

type Factory struct {
	converseOptions []converse.ClientOption
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithConverseOptions appends options applied to every converse client, after the ones
// derived from Options.
func WithConverseOptions(options ...converse.ClientOption) FactoryOption {
	return func(f *Factory) {
		f.converseOptions = append(f.converseOptions, options...)
	}
}

// CreateModel creates a new language model instance
func (f *Factory) CreateModel(ctx context.Context, options *Options) (llm.Model, error) {
	if options.Provider == "" {
		return nil, fmt.Errorf("provider was empty")
	}
	switch options.Provider {
	case ProviderBedrockConverse:
		clientOptions := []converse.ClientOption{
			converse.WithRegion(options.Region),
			converse.WithCredentials(options.Credentials),
			converse.WithCredentialsURL(options.CredentialsURL),
			converse.WithEnvKeys(options.EnvKeys),
			converse.WithUsageListener(options.UsageListener),
		}
		clientOptions = append(clientOptions, f.converseOptions...)
		client, err := converse.NewClient(ctx, options.Model, clientOptions...)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %v", options.Provider)
	}
}

func New(options ...FactoryOption) *Factory {
	f := &Factory{}
	for _, option := range options {
		option(f)
	}
	return f
}
