package provider

import (
	"fmt"
	"math"

	"github.com/viant/bedrockchat/genai/llm"
	basecfg "github.com/viant/bedrockchat/genai/llm/provider/base"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
)

type Options struct {
	Model          string                `yaml:"model,omitempty" json:"model,omitempty" toml:"model,omitempty"`
	Provider       string                `yaml:"provider,omitempty" json:"provider,omitempty" toml:"provider,omitempty"`
	Region         string                `yaml:"region,omitempty" json:"region,omitempty" toml:"region,omitempty"`
	Credentials    converse.Strategy     `yaml:"credentials,omitempty" json:"credentials,omitempty" toml:"credentials,omitempty"`
	CredentialsURL string                `yaml:"credentialsURL,omitempty" json:"credentialsURL,omitempty" toml:"credentialsURL,omitempty"`
	EnvKeys        converse.EnvKeys      `yaml:"envKeys,omitempty" json:"envKeys,omitempty" toml:"envKeys,omitempty"`
	Temperature    float64               `yaml:"temperature,omitempty" json:"temperature,omitempty" toml:"temperature,omitempty"`
	MaxTokens      int                   `yaml:"maxTokens,omitempty" json:"maxTokens,omitempty" toml:"maxTokens,omitempty"`
	TopP           float64               `yaml:"topP,omitempty" json:"topP,omitempty" toml:"topP,omitempty"`
	UsageListener  basecfg.UsageListener `yaml:"-" json:"-" toml:"-"`
}

// Inference returns the per-request inference options.
func (o *Options) Inference() *llm.Options {
	return &llm.Options{
		Model:       o.Model,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
		TopP:        o.TopP,
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.Model == "" {
		return fmt.Errorf("model was empty")
	}
	if o.Provider != "" && o.Provider != ProviderBedrockConverse {
		return fmt.Errorf("unsupported provider: %v", o.Provider)
	}
	if o.Temperature < 0 || o.Temperature > 1 {
		return fmt.Errorf("temperature %v out of range [0,1]", o.Temperature)
	}
	if o.TopP < 0 || o.TopP > 1 {
		return fmt.Errorf("topP %v out of range [0,1]", o.TopP)
	}
	if o.MaxTokens <= 0 {
		return fmt.Errorf("maxTokens must be positive, got %v", o.MaxTokens)
	}
	if o.MaxTokens > math.MaxInt32 {
		return fmt.Errorf("maxTokens %v exceeds %v", o.MaxTokens, math.MaxInt32)
	}
	if o.Credentials != "" && !o.Credentials.Valid() {
		return fmt.Errorf("unsupported credentials strategy: %q", o.Credentials)
	}
	if o.Credentials == converse.StrategySecret && o.CredentialsURL == "" {
		return fmt.Errorf("credentialsURL is required for %q credentials", converse.StrategySecret)
	}
	return nil
}
